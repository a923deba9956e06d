package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/bookmarker/internal/bookmark"
)

// emptyStoreMessage is printed when there is nothing to show or choose from.
const emptyStoreMessage = "No bookmarks available. Try help, add."

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if jsonOutput {
		outputJSON(ErrorResponse{Error: msg})
	} else {
		fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the response for commands that change one bookmark.
type StatusResponse struct {
	Status   string             `json:"status"`
	Bookmark *bookmark.Bookmark `json:"bookmark,omitempty"`
	Key      string             `json:"key,omitempty"`
	Count    int                `json:"count,omitempty"`
}

// ListResponse is the response for listing commands.
type ListResponse struct {
	Bookmarks []bookmark.Bookmark `json:"bookmarks"`
	Count     int                 `json:"count"`
}

// newListResponse never serializes a null bookmark list.
func newListResponse(bookmarks []bookmark.Bookmark) ListResponse {
	if bookmarks == nil {
		bookmarks = []bookmark.Bookmark{}
	}
	return ListResponse{Bookmarks: bookmarks, Count: len(bookmarks)}
}
