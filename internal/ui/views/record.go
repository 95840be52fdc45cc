package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pantrycrm/internal/domain"
)

// RecordRenderer handles rendering of record rows
type RecordRenderer struct {
	styles      *Styles
	showSegment bool
}

// NewRecordRenderer creates a new record renderer
func NewRecordRenderer(styles *Styles, showSegment bool) *RecordRenderer {
	return &RecordRenderer{
		styles:      styles,
		showSegment: showSegment,
	}
}

// RenderRecord renders a single record row
func (r *RecordRenderer) RenderRecord(record domain.Record, isCursor bool,
	isChecked bool, isRunning bool, searchQuery string) string {
	if record == nil {
		return ""
	}

	// Background color for the cursor row
	bgColor := ""
	if isCursor {
		bgColor = "238"
	}

	var parts []string

	// Selection checkbox
	checkbox := "[ ]"
	if isChecked {
		checkbox = "[x]"
	}
	checkStyle := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))
	if isChecked {
		checkStyle = checkStyle.Foreground(lipgloss.Color("78"))
	}
	parts = append(parts, checkStyle.Render(checkbox))
	parts = append(parts, " ")

	// Spinner while a bulk action touches this row
	if isRunning {
		parts = append(parts, r.styles.Running.Render("⟳"))
		parts = append(parts, " ")
	}

	// Title with search highlighting
	title := record.Title()
	nameStyle := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))
	if searchQuery != "" && strings.Contains(strings.ToLower(title), strings.ToLower(searchQuery)) {
		title = r.highlightMatch(title, searchQuery,
			nameStyle.Foreground(lipgloss.Color("226")), nameStyle)
	} else {
		title = nameStyle.Render(title)
	}
	parts = append(parts, title)

	// Kind-specific details
	detail := r.renderDetail(record, bgColor)
	if detail != "" {
		parts = append(parts, nameStyle.Render(" "))
		parts = append(parts, detail)
	}

	return strings.Join(parts, "")
}

// renderDetail renders the trailing columns for a record
func (r *RecordRenderer) renderDetail(record domain.Record, bgColor string) string {
	parenStyle := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))

	switch rec := record.(type) {
	case domain.Organization:
		var b strings.Builder
		if r.showSegment && rec.Segment != "" {
			b.WriteString(parenStyle.Render(fmt.Sprintf("(%s)", rec.Segment)))
			b.WriteString(parenStyle.Render(" "))
		}
		if rec.Priority != "" {
			prioStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(GetPriorityColor(rec.Priority))).
				Background(lipgloss.Color(bgColor)).
				Bold(true)
			b.WriteString(prioStyle.Render(fmt.Sprintf("[%s]", rec.Priority)))
		}
		return b.String()

	case domain.Contact:
		var b strings.Builder
		if rec.Role != "" {
			b.WriteString(parenStyle.Render(fmt.Sprintf("(%s)", rec.Role)))
		}
		if rec.Email != "" {
			if b.Len() > 0 {
				b.WriteString(parenStyle.Render(" "))
			}
			b.WriteString(r.styles.Dim.Background(lipgloss.Color(bgColor)).Render(rec.Email))
		}
		return b.String()

	case domain.Product:
		var b strings.Builder
		if rec.Category != "" {
			b.WriteString(parenStyle.Render(fmt.Sprintf("(%s)", rec.Category)))
		}
		if rec.Principal != "" {
			if b.Len() > 0 {
				b.WriteString(parenStyle.Render(" "))
			}
			b.WriteString(r.styles.Dim.Background(lipgloss.Color(bgColor)).Render(rec.Principal))
		}
		return b.String()

	case domain.Opportunity:
		stageStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(GetStageColor(rec.Stage))).
			Background(lipgloss.Color(bgColor))
		var b strings.Builder
		b.WriteString(parenStyle.Render("("))
		b.WriteString(stageStyle.Render(domain.StageLabel(rec.Stage)))
		b.WriteString(parenStyle.Render(")"))
		if rec.Probability > 0 {
			b.WriteString(parenStyle.Render(fmt.Sprintf(" %d%%", rec.Probability)))
		}
		return b.String()

	case domain.Interaction:
		if !rec.OccurredAt.IsZero() {
			return r.styles.Dim.Background(lipgloss.Color(bgColor)).Render(rec.OccurredAt.Format("2006-01-02"))
		}
		return ""
	}

	return ""
}

// RenderSelectAllHeader renders the tri-state header checkbox line
func (r *RecordRenderer) RenderSelectAllHeader(allSelected, partiallySelected bool, selectedCount, total int, kindLabel string) string {
	checkbox := "[ ]"
	if allSelected {
		checkbox = "[x]"
	} else if partiallySelected {
		checkbox = "[-]"
	}

	label := fmt.Sprintf("%s %s (%d)", checkbox, kindLabel, total)
	if selectedCount > 0 {
		label += r.styles.Dim.Render(fmt.Sprintf("  %d selected", selectedCount))
	}
	return lipgloss.NewStyle().Bold(true).Render(label)
}

// highlightMatch highlights matching text within a string
func (r *RecordRenderer) highlightMatch(text, query string, highlightStyle, normalStyle lipgloss.Style) string {
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}
