package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/format"
	"github.com/krcglobal/gbms/internal/shell"
)

var projectColumns = []table.Column{
	{Title: "코드", Width: 12},
	{Title: "사업명", Width: 28},
	{Title: "유형", Width: 14},
	{Title: "상태", Width: 8},
	{Title: "예산", Width: 12},
}

func projectRows(projects []api.Project) []table.Row {
	rows := make([]table.Row, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, table.Row{
			p.Code,
			p.Title,
			format.ProjectTypeLabel(p.ProjectType),
			format.StatusBadge(p.Status).Label,
			format.LargeCurrency(p.BudgetTotal),
		})
	}
	return rows
}

// View renders the TUI (required by Bubble Tea)
func (m Model) View() string {
	if m.quitting {
		if m.unauthorized {
			return "로그인이 필요합니다. 'gbms login'을 실행하세요.\n"
		}
		return ""
	}

	if m.loading && m.shell.Dashboard().Overview == nil {
		return m.spinner.View() + " 대시보드를 불러오는 중...\n"
	}

	if m.modal.IsOpen() {
		return m.renderModal()
	}

	var b strings.Builder
	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString(toasts)
		b.WriteString("\n")
	}
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.renderMain()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderHeader renders the title and the signed-in user
func (m Model) renderHeader() string {
	h := m.shell.Header()
	title := m.styles.Title.Render("GBMS 해외사업관리시스템")
	if h.Name == "" {
		return title
	}
	user := m.styles.Muted.Render("  " + h.Name + " · " + h.Department)
	return title + user
}

// renderSidebar renders the navigation; a collapsed sidebar shows only the
// first letter of each entry
func (m Model) renderSidebar() string {
	collapsed := m.shell.SidebarCollapsed()

	lines := make([]string, 0, len(shell.DefaultNav))
	for i, item := range shell.DefaultNav {
		label := item.Label
		if collapsed {
			label = string([]rune(label)[:1])
		}
		style := m.styles.NavItem
		if i == m.navIndex {
			style = m.styles.NavActive
		}
		lines = append(lines, style.Render(label))
	}
	return m.styles.Sidebar.Render(strings.Join(lines, "\n"))
}

// renderMain renders the stat cards, recent projects and upcoming events
func (m Model) renderMain() string {
	data := m.shell.Dashboard()

	var b strings.Builder
	b.WriteString(m.renderStats(data.Stats))
	b.WriteString("\n")

	b.WriteString(m.styles.Section.Render("최근 사업"))
	b.WriteString("\n")
	if len(data.Recent) == 0 {
		b.WriteString(m.styles.Muted.Render("등록된 사업이 없습니다."))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	b.WriteString(m.styles.Section.Render("다가오는 일정"))
	b.WriteString("\n")
	if len(data.Upcoming) == 0 {
		b.WriteString(m.styles.Muted.Render("예정된 일정이 없습니다."))
		b.WriteString("\n")
	}
	for _, e := range data.Upcoming {
		b.WriteString(m.styles.Muted.Render(e.Date) + "  " + e.Title + "\n")
	}

	if m.loading {
		b.WriteString(m.spinner.View() + " 새로고침 중...\n")
	}
	return b.String()
}

func (m Model) renderStats(s shell.Stats) string {
	cards := []struct {
		label string
		value string
	}{
		{"전체 사업", s.TotalProjects},
		{"총 예산", s.TotalBudget},
		{"진출 국가", s.TotalCountries},
		{"해외 사무소", s.TotalOffices},
	}

	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		value := c.value
		if value == "" {
			value = "-"
		}
		rendered = append(rendered, m.styles.Card.Render(
			m.styles.Muted.Render(c.label)+"\n"+m.styles.CardValue.Render(value),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderToasts renders the toast container, right aligned; it is empty
// when no toast is active
func (m Model) renderToasts() string {
	toasts := m.shell.Toasts().Toasts()
	if len(toasts) == 0 {
		return ""
	}

	boxes := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style, ok := m.styles.Toasts[t.Kind]
		if !ok {
			style = m.styles.Toasts[format.KindInfo]
		}
		boxes = append(boxes, style.Render(t.Icon+" "+t.Message))
	}
	block := lipgloss.JoinVertical(lipgloss.Right, boxes...)
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, block)
	}
	return block
}

// renderModal renders the logout dialog over the whole screen
func (m Model) renderModal() string {
	buttons := []struct {
		id    string
		label string
	}{
		{focusCancel, "취소"},
		{focusConfirm, "로그아웃"},
	}

	rendered := make([]string, 0, len(buttons))
	for _, btn := range buttons {
		style := m.styles.Button
		if m.modal.Focused() == btn.id {
			style = m.styles.ButtonOn
		}
		rendered = append(rendered, style.Render(btn.label))
	}

	dialog := m.styles.Modal.Render(
		m.styles.Title.Render(m.modal.Title()) + "\n\n" +
			lipgloss.JoinHorizontal(lipgloss.Top, rendered...),
	)
	if m.width == 0 || m.height == 0 {
		return dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}
