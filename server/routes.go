package server

import (
	"crypto/subtle"
	_ "embed"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"caret/content/text"
	"caret/state"
	"caret/store"
)

//go:embed index.html
var indexHTML []byte

type handler struct {
	env *state.LocalEnv
	st  *store.Store
	spl *text.Splitter
	log *zap.Logger
}

func newRouter(h *handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.log))

	r.Route("/api", func(r chi.Router) {
		if token := string(h.env.Cfg.Server.AuthToken); len(token) > 0 {
			r.Use(requireToken(token))
		}

		r.Get("/documents", h.listDocuments)
		r.Post("/documents", h.createDocument)
		r.Get("/documents/{id}", h.getDocument)
		r.Delete("/documents/{id}", h.deleteDocument)
		r.Get("/documents/{id}/html", h.documentHTML)
		r.Get("/documents/{id}/ws", h.handleWS)
		r.Get("/icons/{name}", h.getIcon)
	})

	// single embedded demo page, no static tree to serve
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(indexHTML)
	})

	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func(start time.Time) {
				log.Debug("Request served",
					zap.String("id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("elapsed", time.Since(start)))
			}(time.Now())
			next.ServeHTTP(ww, r)
		})
	}
}

// requireToken guards the API when an auth token is configured. The token
// comes in the Authorization header, or in a query parameter for websocket
// clients that cannot set headers.
func requireToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if len(got) == 0 {
				got = r.URL.Query().Get("token")
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
