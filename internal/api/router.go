package api

import (
	"net/http"

	"github.com/erazemk/inventory/internal/metrics"
	"github.com/erazemk/inventory/internal/photos"
	"github.com/erazemk/inventory/internal/store"
	"github.com/erazemk/inventory/web"
)

// NewRouter creates the HTTP router with all endpoints registered.
// Every path or method without a route answers 405.
func NewRouter(items *store.Repository, photoStore *photos.Store, m *metrics.Metrics, maxUpload int64) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{
		Items:     items,
		Photos:    photoStore,
		Metrics:   m,
		MaxUpload: maxUpload,
	}

	mux.HandleFunc("POST /register", itemsHandler.Register)
	mux.HandleFunc("GET /inventory", itemsHandler.List)
	mux.HandleFunc("GET /inventory/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /inventory/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /inventory/{id}", itemsHandler.Delete)
	mux.HandleFunc("GET /inventory/{id}/photo", itemsHandler.GetPhoto)
	mux.HandleFunc("PUT /inventory/{id}/photo", itemsHandler.ReplacePhoto)
	mux.HandleFunc("POST /search", itemsHandler.Search)

	// Static forms.
	mux.HandleFunc("GET /RegisterForm.html", serveForm("RegisterForm.html"))
	mux.HandleFunc("GET /SearchForm.html", serveForm("SearchForm.html"))

	mux.Handle("GET /metrics", m.Handler())

	mux.HandleFunc("/", methodNotAllowed)

	return Instrument(m, mux)
}

func serveForm(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, web.FormsFS(), name)
	}
}
