// Package response renders explorer reports, the entry form and error pages
// as HTML or JSON.
package response

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/conduit-lang/tdexplorer/internal/explorer/report"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer writes responses. It is safe for concurrent use.
type Renderer struct {
	pages  map[string]*template.Template
	logger *zap.Logger
}

// Page names.
const (
	pageReport = "report.html"
	pageForm   = "form.html"
	pageError  = "error.html"
)

var funcs = template.FuncMap{
	"isLink": func(c report.Cell) bool { return c.Kind == report.Link },
	"isDump": func(c report.Cell) bool { return c.Kind == report.Dump },
	// Class links use file:// and other schemes html/template would reject.
	"safeURL": func(s string) template.URL { return template.URL(s) },
}

// NewRenderer parses the embedded templates. A nil logger discards output.
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Renderer{pages: make(map[string]*template.Template), logger: logger}
	for _, page := range []string{pageReport, pageForm, pageError} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, err
		}
		r.pages[page] = t
	}
	return r, nil
}

// WantsJSON reports whether the client asked for JSON, either with
// ?format=json or an Accept header preferring application/json.
func WantsJSON(req *http.Request) bool {
	if f := req.URL.Query().Get("format"); f != "" {
		return f == "json"
	}
	accept := req.Header.Get("Accept")
	return strings.HasPrefix(accept, "application/json")
}

// Report writes rep with status 200. The response carries an ETag and a
// matching If-None-Match yields 304 without a body.
func (r *Renderer) Report(w http.ResponseWriter, req *http.Request, rep *report.Report) {
	var body []byte
	var contentType string
	var err error
	if WantsJSON(req) {
		body, err = r.encodeJSON(rep)
		contentType = contentTypeJSON
	} else {
		body, err = r.execute(pageReport, rep)
		contentType = contentTypeHTML
	}
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	etag := weakETag(body)
	w.Header().Set("ETag", etag)
	w.Header().Set("Vary", "Accept")
	if matchesIfNoneMatch(req.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	write(w, http.StatusOK, contentType, body)
}

// Form is the entry form state.
type Form struct {
	EntityTypes []Option
	EntityType  string
	ID          string
	Errors      []string
}

// Option is one choice of a select element.
type Option struct {
	Value string
	Label string
}

// Form writes the entry form. Validation errors yield status 400.
func (r *Renderer) Form(w http.ResponseWriter, form Form) {
	status := http.StatusOK
	if len(form.Errors) > 0 {
		status = http.StatusBadRequest
	}
	r.html(w, status, pageForm, form)
}

type errorPage struct {
	Status  int
	Title   string
	Message string
}

// Error writes err with the status StatusOf assigns to it.
func (r *Renderer) Error(w http.ResponseWriter, req *http.Request, err error) {
	r.ErrorStatus(w, req, StatusOf(err), err)
}

// ErrorStatus writes err with an explicit status code.
func (r *Renderer) ErrorStatus(w http.ResponseWriter, req *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		r.logger.Error("request failed", zap.String("path", req.URL.Path), zap.Error(err))
	}
	message := publicMessage(status, err)
	if WantsJSON(req) {
		r.json(w, status, ErrorResponse{
			Error:   "error",
			Message: message,
			Code:    errorCodeFromStatus(status),
		})
		return
	}
	r.html(w, status, pageError, errorPage{Status: status, Title: http.StatusText(status), Message: message})
}

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

func (r *Renderer) html(w http.ResponseWriter, status int, page string, data any) {
	body, err := r.execute(page, data)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	write(w, status, contentTypeHTML, body)
}

func (r *Renderer) json(w http.ResponseWriter, status int, v any) {
	body, err := r.encodeJSON(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	write(w, status, contentTypeJSON, body)
}

func (r *Renderer) execute(page string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logger.Error("failed to render template", zap.String("page", page), zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		r.logger.Error("failed to encode response", zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

func write(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write(body)
}
