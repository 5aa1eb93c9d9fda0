// Package tui provides the interactive entry browser: a word list over the
// row store with a live preview of the rendered dictionary document.
package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/quillon/mdxgen/internal/clipboard"
	"github.com/quillon/mdxgen/internal/render"
	"github.com/quillon/mdxgen/internal/store"
)

const listLimit = 500

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	borderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Browser is the bubbletea model for browsing rendered entries.
type Browser struct {
	store    *store.Store
	renderer *render.Renderer

	search   textinput.Model
	preview  viewport.Model
	words    []string
	cursor   int
	width    int
	height   int
	status   string
	lastHTML string
	err      error
}

// NewBrowser creates a browser over an open row store.
func NewBrowser(s *store.Store, r *render.Renderer) *Browser {
	search := textinput.New()
	search.Placeholder = "type to filter words"
	search.Prompt = "/ "
	search.Focus()

	b := &Browser{
		store:    s,
		renderer: r,
		search:   search,
		preview:  viewport.New(0, 0),
	}
	b.reload("")
	return b
}

// Init implements tea.Model.
func (b *Browser) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.preview.Width = b.previewWidth()
		b.preview.Height = b.height - 4
		b.renderPreview()
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return b, tea.Quit
		case "up", "ctrl+k":
			if b.cursor > 0 {
				b.cursor--
				b.renderPreview()
			}
			return b, nil
		case "down", "ctrl+j":
			if b.cursor < len(b.words)-1 {
				b.cursor++
				b.renderPreview()
			}
			return b, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			b.preview, cmd = b.preview.Update(msg)
			return b, cmd
		case "ctrl+y":
			b.copyHTML()
			return b, nil
		}
		// Remaining keys edit the filter.
		var cmd tea.Cmd
		before := b.search.Value()
		b.search, cmd = b.search.Update(msg)
		if b.search.Value() != before {
			b.reload(b.search.Value())
		}
		return b, cmd
	}

	var cmd tea.Cmd
	b.preview, cmd = b.preview.Update(msg)
	return b, cmd
}

// View implements tea.Model.
func (b *Browser) View() string {
	if b.width == 0 {
		return "loading..."
	}

	header := titleStyle.Render("mdxgen entry browser")
	footer := dimStyle.Render("↑/↓ select · ctrl+y copy html · esc quit")
	if b.status != "" {
		footer = statusStyle.Render(b.status) + "  " + footer
	}

	listWidth := b.listWidth()
	var list strings.Builder
	visible := b.height - 4
	start := 0
	if b.cursor >= visible {
		start = b.cursor - visible + 1
	}
	for i := start; i < len(b.words) && i-start < visible; i++ {
		line := runewidth.Truncate(b.words[i], listWidth-4, "…")
		if i == b.cursor {
			list.WriteString(selectedStyle.Render("> " + line))
		} else {
			list.WriteString("  " + line)
		}
		list.WriteString("\n")
	}
	if len(b.words) == 0 {
		list.WriteString(dimStyle.Render("no matches"))
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Width(listWidth).Height(b.height-4).Render(list.String()),
		borderStyle.Width(b.previewWidth()).Height(b.height-4).Render(b.preview.View()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, b.search.View(), body, footer)
}

func (b *Browser) listWidth() int {
	w := b.width / 3
	if w < 20 {
		w = 20
	}
	return w
}

func (b *Browser) previewWidth() int {
	w := b.width - b.listWidth() - 6
	if w < 20 {
		w = 20
	}
	return w
}

// reload refreshes the word list for a filter and resets the cursor.
func (b *Browser) reload(filter string) {
	words, err := b.store.Words(filter, listLimit)
	if err != nil {
		b.err = err
		b.status = err.Error()
		return
	}
	b.words = words
	b.cursor = 0
	b.renderPreview()
}

// renderPreview renders the selected row's documents as plain text.
func (b *Browser) renderPreview() {
	b.status = ""
	b.lastHTML = ""
	if b.cursor >= len(b.words) {
		b.preview.SetContent("")
		return
	}
	row, ok, err := b.store.Get(b.words[b.cursor])
	if err != nil || !ok {
		b.preview.SetContent(dimStyle.Render("entry not found"))
		return
	}
	docs, err := b.renderer.RenderAll(row)
	if err != nil {
		b.preview.SetContent(dimStyle.Render(err.Error()))
		return
	}
	b.lastHTML = docs[0].Markup

	var out strings.Builder
	out.WriteString(htmlToText(docs[0].Markup))
	if len(docs) > 1 {
		out.WriteString("\n")
		out.WriteString(dimStyle.Render(fmt.Sprintf("+ %d reverse entries:", len(docs)-1)))
		out.WriteString("\n")
		for _, doc := range docs[1:] {
			out.WriteString("  ")
			out.WriteString(doc.Key)
			out.WriteString("\n")
		}
	}
	b.preview.SetContent(out.String())
	b.preview.GotoTop()
}

// copyHTML puts the selected entry's raw markup on the clipboard.
func (b *Browser) copyHTML() {
	if b.lastHTML == "" {
		return
	}
	if !clipboard.Available() {
		b.status = "clipboard not available"
		return
	}
	if err := clipboard.Write(b.lastHTML); err != nil {
		b.status = "copy failed: " + err.Error()
		return
	}
	b.status = "copied entry html"
}

var (
	breakPattern = regexp.MustCompile(`<br\s*/?>`)
	rulePattern  = regexp.MustCompile(`<hr[^>]*/?>`)
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
)

// htmlToText flattens an entry document to readable terminal text. It only
// has to cope with the markup our own renderer emits.
func htmlToText(markup string) string {
	s := breakPattern.ReplaceAllString(markup, "\n")
	s = rulePattern.ReplaceAllString(s, "\n──────\n")
	s = strings.ReplaceAll(s, "</div>", "\n")
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&amp;", "&")
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
