// Package present renders ranked search results for the terminal.
// Three modes: styled (default, colorized with lipgloss), plain text,
// and JSON for piping into other tools.
package present

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/codeGROOVE-dev/namehunt/pkg/result"
)

// snippetLimit is the maximum snippet length before truncation.
const snippetLimit = 150

var (
	rankStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Underline(true)

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22C55E"))

	platformStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(lipgloss.Color("#45475A")).
			Padding(0, 1)

	snippetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	emptyStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6C7086"))
)

// Mode selects the output format.
type Mode int

const (
	ModeStyled Mode = iota
	ModePlain
	ModeJSON
)

// Presenter writes search results to an output stream.
type Presenter struct {
	out  io.Writer
	mode Mode
}

// New creates a Presenter writing to out in the given mode.
func New(out io.Writer, mode Mode) *Presenter {
	return &Presenter{out: out, mode: mode}
}

// Render writes the results. In JSON mode an empty slice renders as [].
func (p *Presenter) Render(results []result.Result) error {
	switch p.mode {
	case ModeJSON:
		return p.renderJSON(results)
	case ModePlain:
		return p.renderPlain(results)
	default:
		return p.renderStyled(results)
	}
}

func (p *Presenter) renderJSON(results []result.Result) error {
	if results == nil {
		results = []result.Result{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	_, err = fmt.Fprintln(p.out, string(data))
	return err
}

func (p *Presenter) renderPlain(results []result.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(p.out, "No results found.")
		return err
	}
	for i, r := range results {
		fmt.Fprintf(p.out, "%d. [%.2f] %s\n", i+1, r.Score, r.Title)
		fmt.Fprintf(p.out, "   %s\n", r.Link)
		if r.Username != "" {
			fmt.Fprintf(p.out, "   %s: %s\n", r.Platform, r.Username)
		}
		if snippet := Truncate(r.Snippet, snippetLimit); snippet != "" {
			fmt.Fprintf(p.out, "   %s\n", snippet)
		}
		fmt.Fprintln(p.out)
	}
	return nil
}

func (p *Presenter) renderStyled(results []result.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(p.out, emptyStyle.Render("No results found."))
		return err
	}
	for i, r := range results {
		header := fmt.Sprintf("%s %s %s",
			rankStyle.Render(fmt.Sprintf("%d.", i+1)),
			scoreStyle.Render(fmt.Sprintf("[%.2f]", r.Score)),
			titleStyle.Render(r.Title),
		)
		fmt.Fprintln(p.out, header)
		fmt.Fprintf(p.out, "   %s\n", linkStyle.Render(r.Link))
		if r.Username != "" {
			fmt.Fprintf(p.out, "   %s %s\n",
				platformStyle.Render(string(r.Platform)),
				r.Username,
			)
		}
		if snippet := Truncate(r.Snippet, snippetLimit); snippet != "" {
			fmt.Fprintf(p.out, "   %s\n", snippetStyle.Render(snippet))
		}
		fmt.Fprintln(p.out)
	}
	return nil
}

// Truncate shortens s to at most limit runes, appending an ellipsis when
// anything was cut. Interior whitespace is collapsed first.
func Truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if limit <= 0 || len([]rune(s)) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:limit]), " ") + "..."
}
