// Package prompt asks the user to pick a bookmark key.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/matsen/bookmarker/internal/bookmark"
	"golang.org/x/term"
)

// DefaultPrompt is shown before the key is typed.
const DefaultPrompt = "Choose key: "

// ErrAborted is returned when the user cancels the prompt.
var ErrAborted = errors.New("selection aborted")

// ReadKey writes prompt to w and reads one line from r.
// The line is returned trimmed; end of input counts as an empty answer.
func ReadKey(r io.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Choose asks for a key among candidates. When both in and out are
// terminals it runs an inline text input with key completion on out;
// otherwise it falls back to ReadKey.
func Choose(in, out *os.File, candidates []bookmark.Bookmark, prompt string) (string, error) {
	if !term.IsTerminal(int(in.Fd())) || !term.IsTerminal(int(out.Fd())) {
		return ReadKey(in, out, prompt)
	}

	p := tea.NewProgram(newModel(candidates, prompt), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}

	m := final.(model)
	if m.aborted {
		return "", ErrAborted
	}
	return m.choice, nil
}

type model struct {
	input   textinput.Model
	choice  string
	done    bool
	aborted bool
}

func newModel(candidates []bookmark.Bookmark, prompt string) model {
	keys := make([]string, len(candidates))
	for i, b := range candidates {
		keys[i] = b.Key
	}

	ti := textinput.New()
	ti.Prompt = prompt
	ti.ShowSuggestions = true
	ti.SetSuggestions(keys)
	if len(keys) > 0 {
		ti.Placeholder = keys[0]
	}
	ti.Focus()

	return model{input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			m.choice = strings.TrimSpace(m.input.Value())
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.aborted = true
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done {
		return ""
	}
	return m.input.View() + "\n"
}
