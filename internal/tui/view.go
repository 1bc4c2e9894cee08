package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adanyl0v/taskboard/internal/models"
	"github.com/adanyl0v/taskboard/internal/tasklist"
)

// DisplayDateLayout is how due dates are shown in the list.
const DisplayDateLayout = "Jan 2, 2006"

const timestampLayout = "Jan 2, 2006 15:04"

const (
	numberWidth      = 4
	titleWidth       = 28
	descriptionWidth = 34
	statusWidth      = 13
	dueWidth         = 14
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)

	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		models.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Board"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeHelp:
		writeHelp(&b)
		return b.String()
	case modeForm:
		writeForm(&b, m.form)
		return b.String()
	case modeDetail:
		writeDetail(&b, m.detail)
		return b.String()
	}

	s := m.engine.State()
	page := tasklist.View(s)

	writeFilters(&b, s, m.mode == modeSearch)
	writeTable(&b, s, page, m.cursor, m.compact)

	if m.mode == modeConfirmDelete && m.pendingDelete != nil {
		fmt.Fprintf(&b, "\n%s %q (y/n)\n", tasklist.DeletePrompt, m.pendingDelete.Title)
	}
	if s.Notice != "" {
		b.WriteString("\n" + noticeStyle.Render(s.Notice) + mutedStyle.Render("  esc to dismiss") + "\n")
	}

	b.WriteString("\n" + mutedStyle.Render("a add | v view | e edit | d delete | / search | f filter | x reset | s sort | h/l page | c compact | r reload | ? help | q quit") + "\n")
	return b.String()
}

func writeFilters(b *strings.Builder, s tasklist.State, searching bool) {
	search := s.Search
	if searching {
		search = focusStyle.Render(search + "_")
	} else if search == "" {
		search = mutedStyle.Render("(none)")
	}

	filter := "All"
	if s.StatusFilter != "" {
		filter = statusStyle(s.StatusFilter).Render(s.StatusFilter.String())
	}

	order := "ascending"
	if !s.SortAsc {
		order = "descending"
	}

	fmt.Fprintf(b, "Search: %s   Status: %s   Due date: %s\n\n", search, filter, order)
}

// writeTable renders the page. The compact table leaves out descriptions.
func writeTable(b *strings.Builder, s tasklist.State, page tasklist.Page, cursor int, compact bool) {
	if len(page.Items) == 0 {
		switch {
		case s.Phase == tasklist.PhaseLoading || s.Phase == tasklist.PhaseNotLoaded:
			b.WriteString("Loading tasks...\n")
		case s.Phase == tasklist.PhaseError && len(s.Snapshot) == 0:
			b.WriteString(errorStyle.Render("Could not load tasks. Press r to try again.") + "\n")
		default:
			b.WriteString(mutedStyle.Render("No tasks found") + "\n")
		}
		return
	}

	header := cell("#", numberWidth) + cell("Title", titleWidth)
	if !compact {
		header += cell("Description", descriptionWidth)
	}
	header += cell("Status", statusWidth) + cell("Due date", dueWidth)
	b.WriteString(headerStyle.Render(header) + "\n")

	for i, t := range page.Items {
		row := cell(fmt.Sprint(page.Offset+i+1), numberWidth) + cell(t.Title, titleWidth)
		if !compact {
			row += cell(t.Description, descriptionWidth)
		}
		status := statusStyle(t.Status).Render(cell(t.Status.String(), statusWidth))
		due := cell(formatDueDate(t), dueWidth)

		if i == cursor {
			b.WriteString(selectedStyle.Render(row) + status + selectedStyle.Render(due) + "\n")
			continue
		}
		b.WriteString(row + status + due + "\n")
	}

	fmt.Fprintf(b, "\nPage %d of %d (%d tasks)\n", page.Number, max(page.PageCount, 1), page.Total)
}

func writeForm(b *strings.Builder, f *formModel) {
	if f == nil {
		return
	}
	if f.values.IsEdit() {
		b.WriteString("Edit task\n\n")
	} else {
		b.WriteString("New task\n\n")
	}

	for field := formField(0); field < fieldCount; field++ {
		var value string
		if field == fieldStatus {
			value = statusStyle(f.values.Status).Render("< " + f.values.Status.OrDefault().String() + " >")
		} else {
			value = *f.text(field)
			if field == f.focus {
				value += "_"
			}
		}

		label := fmt.Sprintf("%-12s", fieldLabels[field])
		if field == f.focus {
			label = focusStyle.Render(label)
		}
		fmt.Fprintf(b, "%s %s\n", label, value)
		if msg := f.fieldError(field); msg != "" {
			b.WriteString("             " + errorStyle.Render(msg) + "\n")
		}
	}

	if f.err != nil {
		b.WriteString("\n" + errorStyle.Render(f.err.Error()) + "\n")
	}
	if f.submitting {
		b.WriteString("\nSaving...\n")
	}
	b.WriteString("\n" + mutedStyle.Render("tab next field | left/right status | enter save | esc cancel") + "\n")
}

func writeDetail(b *strings.Builder, t *models.Task) {
	if t == nil {
		return
	}
	b.WriteString(headerStyle.Render(t.Title) + "\n\n")

	description := t.Description
	if description == "" {
		description = mutedStyle.Render("(no description)")
	}
	fmt.Fprintf(b, "%-12s %s\n", "Description", description)
	fmt.Fprintf(b, "%-12s %s\n", "Status", statusStyle(t.Status).Render(t.Status.String()))
	fmt.Fprintf(b, "%-12s %s\n", "Due date", formatDueDate(*t))
	if !t.CreatedAt.IsZero() {
		fmt.Fprintf(b, "%-12s %s\n", "Created", t.CreatedAt.Local().Format(timestampLayout))
	}
	if !t.UpdatedAt.IsZero() {
		fmt.Fprintf(b, "%-12s %s\n", "Updated", t.UpdatedAt.Local().Format(timestampLayout))
	}

	b.WriteString("\n" + mutedStyle.Render("e edit | d delete | esc back") + "\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c       Quit\n")
	b.WriteString("  j/k, up/down    Select task\n")
	b.WriteString("  h/l, left/right Previous/next page\n")
	b.WriteString("  /               Search titles\n")
	b.WriteString("  f               Cycle status filter\n")
	b.WriteString("  x               Reset search and filter\n")
	b.WriteString("  s               Toggle due date order\n")
	b.WriteString("  a               Add task\n")
	b.WriteString("  v, enter        View selected task\n")
	b.WriteString("  e               Edit selected task\n")
	b.WriteString("  d               Delete selected task\n")
	b.WriteString("  c               Toggle compact list\n")
	b.WriteString("  r               Reload tasks\n")
	b.WriteString("  esc             Dismiss message\n\n")
	b.WriteString(mutedStyle.Render("Press any key to go back") + "\n")
}

func statusStyle(s models.Status) lipgloss.Style {
	if st, ok := statusStyles[s]; ok {
		return st
	}
	return mutedStyle
}

func formatDueDate(t models.Task) string {
	due := t.DueTime()
	if due.IsZero() {
		return t.DueDate
	}
	return due.Format(DisplayDateLayout)
}

// cell pads or truncates s to width runes plus a separating space.
func cell(s string, width int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) > width {
		r = append(r[:width-1], '…')
	}
	return fmt.Sprintf("%-*s ", width, string(r))
}
