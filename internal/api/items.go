package api

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/inventory/internal/metrics"
	"github.com/erazemk/inventory/internal/model"
	"github.com/erazemk/inventory/internal/photos"
	"github.com/erazemk/inventory/internal/store"
)

// ItemsHandler handles the inventory endpoints.
type ItemsHandler struct {
	Items     *store.Repository
	Photos    *photos.Store
	Metrics   *metrics.Metrics
	MaxUpload int64
}

type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Register handles POST /register.
func (h *ItemsHandler) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)
	if err := parseForm(r, h.MaxUpload); err != nil {
		writeFormError(w, r, err)
		return
	}

	name := strings.TrimSpace(r.FormValue("inventory_name"))
	if name == "" {
		jsonError(w, http.StatusBadRequest, "Inventory name is required")
		return
	}

	photo, err := h.savePhoto(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item := model.Item{
		ID:          uuid.New().String(),
		Name:        name,
		Description: r.FormValue("description"),
		PhotoPath:   photo,
	}
	if err := h.Items.Insert(r.Context(), item); err != nil {
		h.discardPhoto(photo)
		writeError(w, r, err)
		return
	}

	h.Metrics.ItemsRegistered.Inc()
	slog.Info("item registered", "id", item.ID, "name", item.Name, "photo", item.HasPhoto())
	jsonResponse(w, http.StatusCreated, view(r, item))
}

// List handles GET /inventory.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Items.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	views := make([]model.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, view(r, item))
	}
	jsonResponse(w, http.StatusOK, views)
}

// Get handles GET /inventory/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Items.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, view(r, item))
}

// Update handles PUT /inventory/{id}. Only the fields present in the body change.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.Items.FindByID(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)
	patch, err := decodePatch(r)
	if err != nil {
		writeFormError(w, r, err)
		return
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			jsonError(w, http.StatusBadRequest, "name must not be empty")
			return
		}
		patch.Name = &trimmed
	}

	item, err := h.Items.UpdateFields(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if !patch.Empty() {
		slog.Info("item updated", "id", id, "name", item.Name)
	}
	jsonResponse(w, http.StatusOK, view(r, item))
}

// Delete handles DELETE /inventory/{id}. The item's photo file goes with it.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.Items.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.discardPhoto(removed.PhotoPath)

	h.Metrics.ItemsDeleted.Inc()
	slog.Info("item deleted", "id", removed.ID, "name", removed.Name)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}

// decodePatch reads name and description from a JSON or form body.
// Absent fields stay nil.
func decodePatch(r *http.Request) (model.ItemPatch, error) {
	if isJSON(r) || r.Header.Get("Content-Type") == "" {
		var req updateItemRequest
		if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			return model.ItemPatch{}, err
		}
		return model.ItemPatch{Name: req.Name, Description: req.Description}, nil
	}

	if err := parseForm(r, defaultFormMemory); err != nil {
		return model.ItemPatch{}, err
	}
	var patch model.ItemPatch
	if vs, ok := r.PostForm["name"]; ok && len(vs) > 0 {
		patch.Name = &vs[0]
	}
	if vs, ok := r.PostForm["description"]; ok && len(vs) > 0 {
		patch.Description = &vs[0]
	}
	return patch, nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}
