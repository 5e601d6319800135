package api

import (
	"net/http"
	"net/url"

	"github.com/erazemk/inventory/internal/model"
)

// photoURL builds the absolute photo URL from the request's own scheme and host.
func photoURL(r *http.Request, id string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/inventory/" + url.PathEscape(id) + "/photo"
}

// view converts a stored item to its response form.
func view(r *http.Request, item model.Item) model.ItemView {
	v := model.ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
	}
	if item.HasPhoto() {
		u := photoURL(r, item.ID)
		v.Photo = &u
	}
	return v
}
