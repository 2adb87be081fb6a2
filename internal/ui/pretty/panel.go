package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AbsentText is shown for fields whose value is unavailable.
const AbsentText = "n/a"

const (
	labelGap    = 2
	indentWidth = 2
	ellipsis    = "..."
)

// Row is one label/value line of a panel. A nil Value renders as absent.
type Row struct {
	Label string
	Value *string
}

// Section is a titled group of rows.
type Section struct {
	Title string
	Rows  []Row
}

// PanelFormatter renders sections as aligned label/value columns.
type PanelFormatter struct {
	styles    *Styles
	termWidth int
}

// NewPanelFormatter creates a formatter. Widths of zero or less use the
// default terminal width.
func NewPanelFormatter(styles *Styles, termWidth int) *PanelFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &PanelFormatter{styles: styles, termWidth: termWidth}
}

// Format renders a title line followed by every non-empty section.
func (p *PanelFormatter) Format(title string, sections []Section) string {
	labelWidth := 0
	for _, sec := range sections {
		for _, row := range sec.Rows {
			labelWidth = max(labelWidth, lipgloss.Width(row.Label))
		}
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(p.styles.Title.Render(title))
		b.WriteString("\n")
	}

	valueWidth := p.termWidth - indentWidth - labelWidth - labelGap
	for _, sec := range sections {
		if len(sec.Rows) == 0 {
			continue
		}
		b.WriteString(p.styles.Section.Render(sec.Title))
		b.WriteString("\n")
		for _, row := range sec.Rows {
			b.WriteString(strings.Repeat(" ", indentWidth))
			b.WriteString(p.styles.Label.Render(padRight(row.Label, labelWidth)))
			b.WriteString(strings.Repeat(" ", labelGap))
			if row.Value == nil {
				b.WriteString(p.styles.Absent.Render(AbsentText))
			} else {
				b.WriteString(p.styles.Value.Render(truncate(*row.Value, valueWidth)))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// truncate shortens s to width cells, ending in an ellipsis.
func truncate(s string, width int) string {
	if width <= len(ellipsis) || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+len(ellipsis) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ellipsis
}
