package capture

import (
	"github.com/mj1618/desktop-vision/internal/model"
	"github.com/mj1618/desktop-vision/internal/platform"
)

// findByID returns the first item whose ID equals id exactly.
func findByID[T any](items []T, id string, idOf func(T) string) (T, bool) {
	for _, item := range items {
		if idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func rawWindowID(w platform.RawWindow) string { return w.ID }

// windowRef resolves title and app for a captured window from a metadata
// snapshot. The window may have changed since capture, so missing fields
// fall back to a placeholder.
func windowRef(meta []platform.RawWindow, id string) model.WindowRef {
	ref := model.WindowRef{ID: id, Title: unknownPlaceholder, App: unknownPlaceholder}
	w, ok := findByID(meta, id, rawWindowID)
	if !ok {
		return ref
	}
	if w.Title != "" {
		ref.Title = w.Title
	}
	if w.Owner != "" {
		ref.App = w.Owner
	}
	return ref
}

func notFoundMessage(id string) string {
	return "Window " + id + " not found. It may have been closed."
}
