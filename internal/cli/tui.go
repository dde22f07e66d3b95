package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/orcalab/speed/pkg/describe"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// descriptionEntry is one saved description shown in the browser.
type descriptionEntry struct {
	Path     string
	Name     string
	NTotal   int
	STotal   int
	Modified time.Time
	Err      error // set when the file could not be parsed
}

// listDescriptions scans dir for description files, newest first.
func listDescriptions(dir string) ([]descriptionEntry, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+describe.DefaultExtension))
	if err != nil {
		return nil, err
	}

	entries := make([]descriptionEntry, 0, len(matches))
	for _, path := range matches {
		entry := descriptionEntry{
			Path: path,
			Name: strings.TrimSuffix(filepath.Base(path), describe.DefaultExtension),
		}
		if info, err := os.Stat(path); err == nil {
			entry.Modified = info.ModTime()
		}
		if desc, err := describe.Load(path); err != nil {
			entry.Err = err
		} else {
			entry.NTotal = desc.NTotal
			entry.STotal = desc.STotal
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Modified.After(entries[j].Modified)
	})
	return entries, nil
}

// =============================================================================
// browserModel - Interactive description selection
// =============================================================================

// browserModel is the bubbletea model for browsing saved descriptions.
type browserModel struct {
	Entries  []descriptionEntry
	Cursor   int
	Selected *descriptionEntry
	Height   int
	Offset   int
}

// newBrowserModel creates a browser over the given entries.
func newBrowserModel(entries []descriptionEntry) browserModel {
	return browserModel{
		Entries: entries,
		Height:  15,
	}
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			entry := m.Entries[m.Cursor]
			if entry.Err != nil {
				return m, nil
			}
			m.Selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m browserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Saved Descriptions"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	for i := m.Offset; i < end; i++ {
		entry := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		detail := fmt.Sprintf("%d neurons, %d synapses", entry.NTotal, entry.STotal)
		if entry.Err != nil {
			detail = "unreadable"
		}

		line := fmt.Sprintf("%s%-25s  %s  %s", cursor, entry.Name,
			listDimStyle.Render(detail),
			listDimStyle.Render(formatRelativeTime(entry.Modified)))

		switch {
		case i == m.Cursor && entry.Err == nil:
			b.WriteString(listSelectedStyle.Render(line))
		case entry.Err != nil:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
