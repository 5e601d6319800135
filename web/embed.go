package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed forms
var content embed.FS

// FormsFS returns the file system holding the HTML forms.
func FormsFS() fs.FS {
	sub, err := fs.Sub(content, "forms")
	if err != nil {
		log.Fatalf("failed to create forms sub-filesystem: %v", err)
	}
	return sub
}
