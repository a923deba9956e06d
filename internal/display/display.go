// Package display renders bookmark listings for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matsen/bookmarker/internal/bookmark"
	"golang.org/x/term"
)

// FallbackWidth is used when the terminal width cannot be determined.
const FallbackWidth = 80

// entrySeparator follows every label when packing short listings.
const entrySeparator = "  "

var (
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	usesStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Width returns the column count of the terminal on fd.
// A positive override wins; otherwise FallbackWidth is used when fd is not a
// terminal or its size is unavailable.
func Width(fd int, override int) int {
	if override > 0 {
		return override
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return FallbackWidth
	}
	return w
}

// Wrap packs labels into lines no wider than width.
// Each label is followed by two spaces; a new line starts when the next
// entry would overflow. Lines are right-trimmed and a label wider than
// width gets a line of its own.
func Wrap(labels []string, width int) []string {
	var lines []string
	var line strings.Builder
	lineWidth := 0

	for _, label := range labels {
		entry := label + entrySeparator
		entryWidth := lipgloss.Width(entry)
		if lineWidth > 0 && lineWidth+entryWidth > width {
			lines = append(lines, strings.TrimRight(line.String(), " "))
			line.Reset()
			lineWidth = 0
		}
		line.WriteString(entry)
		lineWidth += entryWidth
	}

	if lineWidth > 0 {
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return lines
}

// Label renders "[key]name" with the key highlighted.
func Label(b bookmark.Bookmark) string {
	return keyStyle.Render(b.Tag()) + b.Name
}

// LongLabel renders "[key] name (N uses) - path".
func LongLabel(b bookmark.Bookmark) string {
	return fmt.Sprintf("%s %s %s - %s",
		keyStyle.Render(b.Tag()),
		b.Name,
		usesStyle.Render(fmt.Sprintf("(%d uses)", b.Uses)),
		pathStyle.Render(b.Path))
}

// ShortList writes the compact listing wrapped to width. Writes nothing
// for an empty collection.
func ShortList(w io.Writer, bookmarks []bookmark.Bookmark, width int) {
	labels := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		labels[i] = Label(b)
	}
	for _, line := range Wrap(labels, width) {
		fmt.Fprintln(w, line)
	}
}

// LongList writes one line per bookmark with every field.
func LongList(w io.Writer, bookmarks []bookmark.Bookmark) {
	for _, b := range bookmarks {
		fmt.Fprintln(w, LongLabel(b))
	}
}

// TopList writes the "Most used" header followed by the labels on one line.
func TopList(w io.Writer, bookmarks []bookmark.Bookmark, n int) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Most used %d bookmarks:", n)))

	labels := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		labels[i] = Label(b)
	}
	if len(labels) > 0 {
		fmt.Fprintln(w, strings.Join(labels, entrySeparator))
	}
}
