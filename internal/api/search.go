package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/erazemk/inventory/internal/model"
)

// flexBool accepts JSON booleans as well as the string and number forms
// HTML checkboxes and hand-written clients send.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*b = flexBool(t)
	case float64:
		*b = t != 0
	case string:
		*b = flexBool(parseFlag(t))
	case nil:
		*b = false
	default:
		return errors.New("has_photo must be a boolean")
	}
	return nil
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes":
		return true
	}
	v, _ := strconv.ParseBool(s)
	return v
}

type searchRequest struct {
	ID       string   `json:"id"`
	HasPhoto flexBool `json:"has_photo"`
}

// Search handles POST /search. With has_photo set, the description is
// annotated with the photo URL or a "none" marker.
func (h *ItemsHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			jsonError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		if err := parseForm(r, defaultFormMemory); err != nil {
			writeFormError(w, r, err)
			return
		}
		req.ID = r.PostFormValue("id")
		req.HasPhoto = flexBool(parseFlag(r.PostFormValue("has_photo")))
	}

	item, err := h.Items.FindByID(r.Context(), strings.TrimSpace(req.ID))
	if err != nil {
		writeError(w, r, err)
		return
	}

	description := item.Description
	if req.HasPhoto {
		description += photoNote(r, item)
	}

	jsonResponse(w, http.StatusOK, model.SearchResult{
		ID:          item.ID,
		Name:        item.Name,
		Description: description,
	})
}

func photoNote(r *http.Request, item model.Item) string {
	if !item.HasPhoto() {
		return " (Photo: none)"
	}
	return " (Photo: " + photoURL(r, item.ID) + ")"
}
