package views

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// WithRequestID returns a copy of ctx carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// Page writes data through the layout with the given status.
func Page(w http.ResponseWriter, renderer Renderer, logger *slog.Logger, status int, data Data) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := renderer.Render(w, Layout, data); err != nil {
		logger.Error("render page", "view", data.View(), "error", err)
	}
}

// NotFound renders the error view with a 404 status.
func NotFound(w http.ResponseWriter, renderer Renderer, logger *slog.Logger, message string) {
	Page(w, renderer, logger, http.StatusNotFound, NewData("Not found", "error").
		With("message", message).
		With("status", http.StatusNotFound))
}

// ServerError logs err and renders the generic error view with a 500 status.
func ServerError(w http.ResponseWriter, r *http.Request, renderer Renderer, logger *slog.Logger, err error) {
	logger.ErrorContext(r.Context(), "request failed",
		"request_id", RequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	Page(w, renderer, logger, http.StatusInternalServerError, NewData("Error", "error").
		With("message", "Something went wrong. Please try again later.").
		With("status", http.StatusInternalServerError))
}

// Redirect sends the client to url after a successful form submission.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// PathID parses the {id} path value. ok is false when it is not a positive integer.
func PathID(r *http.Request) (id uint, ok bool) {
	n, err := strconv.ParseUint(r.PathValue("id"), 10, 0)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
