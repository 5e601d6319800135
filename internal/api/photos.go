package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/erazemk/inventory/internal/imaging"
	"github.com/erazemk/inventory/internal/photos"
)

// defaultFormMemory bounds in-memory form parsing for bodies without uploads.
const defaultFormMemory = 1 << 20

// GetPhoto handles GET /inventory/{id}/photo.
func (h *ItemsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	item, err := h.Items.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !item.HasPhoto() {
		jsonError(w, http.StatusNotFound, "Not found")
		return
	}

	f, err := h.Photos.Open(*item.PhotoPath)
	if errors.Is(err, photos.ErrNotFound) || errors.Is(err, photos.ErrInvalidName) {
		slog.Warn("photo file missing", "id", item.ID, "photo", *item.PhotoPath)
		jsonError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", imaging.MIME)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, "", info.ModTime(), f)
}

// ReplacePhoto handles PUT /inventory/{id}/photo. The previous photo file is
// removed once the item no longer references it. A request without a photo
// part clears the item's photo.
func (h *ItemsHandler) ReplacePhoto(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.Items.FindByID(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)
	if err := parseForm(r, h.MaxUpload); err != nil {
		writeFormError(w, r, err)
		return
	}

	photo, err := h.savePhoto(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, previous, err := h.Items.SetPhoto(r.Context(), id, photo)
	if err != nil {
		h.discardPhoto(photo)
		writeError(w, r, err)
		return
	}
	if previous != nil && (photo == nil || *previous != *photo) {
		h.discardPhoto(previous)
	}

	slog.Info("item photo replaced", "id", id, "photo", item.HasPhoto())
	jsonResponse(w, http.StatusOK, view(r, item))
}

// savePhoto normalises the request's "photo" part and writes it to the photo
// store. It returns nil when the request carries no photo.
func (h *ItemsHandler) savePhoto(r *http.Request) (*string, error) {
	data, err := readUpload(r)
	if err != nil || len(data) == 0 {
		return nil, err
	}

	normalized, err := imaging.Normalize(data)
	if err != nil {
		return nil, err
	}
	name, err := h.Photos.Put(normalized, imaging.Ext)
	if err != nil {
		return nil, err
	}
	h.Metrics.PhotosStored.Inc()
	return &name, nil
}

// discardPhoto removes an unreferenced photo file. Failures only leave an
// orphaned file behind, so they are logged rather than returned.
func (h *ItemsHandler) discardPhoto(name *string) {
	if name == nil || *name == "" {
		return
	}
	if err := h.Photos.Delete(*name); err != nil {
		slog.Error("failed to delete photo", "photo", *name, "error", err)
		return
	}
	h.Metrics.PhotosDeleted.Inc()
}

// readUpload returns the bytes of the "photo" part, or nil when there is none.
func readUpload(r *http.Request) ([]byte, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, _, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// parseForm parses url-encoded and multipart bodies. Other content types
// leave the form empty.
func parseForm(r *http.Request, maxMemory int64) error {
	// ParseMultipartForm reports ErrNotMultipart ahead of a failed urlencoded read.
	if err := r.ParseForm(); err != nil {
		return err
	}
	err := r.ParseMultipartForm(maxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}

func writeFormError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		jsonError(w, http.StatusBadRequest, "upload too large")
		return
	}
	slog.Warn("invalid form body", "path", r.URL.Path, "error", err)
	jsonError(w, http.StatusBadRequest, "invalid request body")
}
