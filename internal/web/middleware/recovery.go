package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// PanicHandler writes the response for a recovered panic.
type PanicHandler func(w http.ResponseWriter, r *http.Request, err error)

// Recovery turns a panic in a handler into a logged error and a 500
// response written by onPanic (plain text when nil).
func Recovery(logger *zap.Logger, onPanic PanicHandler) Middleware {
	if onPanic == nil {
		onPanic = func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				err, ok := v.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", v)
				}
				logger.Error("panic recovered",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("path", r.URL.Path),
					zap.Error(err),
					zap.ByteString("stack", debug.Stack()),
				)
				onPanic(w, r, err)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
