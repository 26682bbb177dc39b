package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/conduit-lang/tdexplorer/internal/explorer/report"
	"github.com/conduit-lang/tdexplorer/internal/web/middleware"
	"github.com/conduit-lang/tdexplorer/internal/web/response"
)

// Reports builds the explorer reports served by the router.
type Reports interface {
	Types(ctx context.Context) (*report.Report, error)
	Type(ctx context.Context, key string) (*report.Report, error)
	Entity(ctx context.Context, entityType, id string) (*report.Report, error)
	Field(ctx context.Context, entityType, id, name string) (*report.Report, error)
	Constraints(ctx context.Context) (*report.Report, error)
}

// EntityTypes lists the entity types offered by the entry form.
type EntityTypes interface {
	EntityTypeIDs() []string
	EntityTypeLabel(entityType string) string
}

// Config holds the collaborators of the explorer routes.
type Config struct {
	Reports     Reports
	EntityTypes EntityTypes
	Renderer    *response.Renderer
	Linker      PathLinker
	Logger      *zap.Logger
}

type handlers struct {
	Config
}

// New builds the explorer router with request id, access logging and panic
// recovery middleware.
func New(cfg Config) (*Router, error) {
	if cfg.Reports == nil || cfg.EntityTypes == nil {
		return nil, errors.New("router: reports and entity types are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Renderer == nil {
		renderer, err := response.NewRenderer(cfg.Logger)
		if err != nil {
			return nil, fmt.Errorf("router: %w", err)
		}
		cfg.Renderer = renderer
	}
	h := &handlers{Config: cfg}

	r := NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(cfg.Logger, "/healthz"),
		middleware.Recovery(cfg.Logger, func(w http.ResponseWriter, req *http.Request, err error) {
			cfg.Renderer.ErrorStatus(w, req, http.StatusInternalServerError, err)
		}),
	)

	r.Get("/", h.home)
	r.Get("/healthz", h.health)
	r.Get("/types", h.types)
	r.Get("/types/{key}", h.typeDefinition)
	r.Get("/entity/{entityType}/{id}", h.entity)
	r.Get("/entity/{entityType}/{id}/{field}", h.field)
	r.Get("/constraints", h.constraints)
	r.Get("/explore", h.exploreForm)
	r.Post("/explore", h.exploreSubmit)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		cfg.Renderer.ErrorStatus(w, req, http.StatusNotFound, fmt.Errorf("no page at %s", req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		cfg.Renderer.ErrorStatus(w, req, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", req.Method))
	})
	return r, nil
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.Linker.path("types"), http.StatusFound)
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (h *handlers) types(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.Reports.Types(r.Context()))
}

func (h *handlers) typeDefinition(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.Reports.Type(r.Context(), param(r, "key")))
}

func (h *handlers) entity(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.Reports.Entity(r.Context(), param(r, "entityType"), param(r, "id")))
}

func (h *handlers) field(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.Reports.Field(r.Context(), param(r, "entityType"), param(r, "id"), param(r, "field")))
}

func (h *handlers) constraints(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)(h.Reports.Constraints(r.Context()))
}

func (h *handlers) exploreForm(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Form(w, h.form(r.URL.Query().Get("entity_type"), r.URL.Query().Get("id")))
}

func (h *handlers) exploreSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Renderer.ErrorStatus(w, r, http.StatusBadRequest, err)
		return
	}
	form := h.form(strings.TrimSpace(r.PostForm.Get("entity_type")), strings.TrimSpace(r.PostForm.Get("id")))
	if form.EntityType == "" {
		form.Errors = append(form.Errors, "Entity type field is required.")
	}
	if form.ID == "" {
		form.Errors = append(form.Errors, "Id field is required.")
	}
	if len(form.Errors) > 0 {
		h.Renderer.Form(w, form)
		return
	}
	http.Redirect(w, r, h.Linker.EntityURL(form.EntityType, form.ID), http.StatusSeeOther)
}

func (h *handlers) form(entityType, id string) response.Form {
	form := response.Form{EntityType: entityType, ID: id}
	for _, et := range h.EntityTypes.EntityTypeIDs() {
		label := h.EntityTypes.EntityTypeLabel(et)
		if label == "" {
			label = et
		}
		form.EntityTypes = append(form.EntityTypes, response.Option{Value: et, Label: label})
	}
	return form
}

// respond writes the result of a report operation.
func (h *handlers) respond(w http.ResponseWriter, r *http.Request) func(*report.Report, error) {
	return func(rep *report.Report, err error) {
		if err != nil {
			h.Logger.Debug("report failed",
				zap.String("request_id", middleware.GetRequestID(r.Context())),
				zap.Error(err))
			h.Renderer.Error(w, r, err)
			return
		}
		h.Renderer.Report(w, r, rep)
	}
}

// param returns an unescaped path parameter. chi matches against RawPath
// when it is set and against the already decoded Path otherwise.
func param(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}
