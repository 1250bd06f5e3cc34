package app

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"optischolar/cmd/scholar/ui"
	"optischolar/internal/nav"
)

// View renders the whole screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.sess == nil {
		return m.login.view(&m)
	}

	content := m.renderView(m.currentView())
	if m.form != nil {
		content = m.form.view(m.styles)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(),
		m.styles.Content.Render(content),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTopBar(),
		body,
		m.renderFooter(),
	)
}

func (m *Model) renderTopBar() string {
	parts := []string{"Scholar"}
	parts = append(parts, nav.TitleFor(m.sess.Role, m.activeKey))
	for _, c := range m.stack {
		parts = append(parts, c.title)
	}
	bar := ui.Breadcrumb(m.styles, parts...)
	badge := m.styles.Badge.Render(m.sess.RoleTitle()) + " " + m.styles.Muted.Render(m.sess.DisplayName())
	return lipgloss.JoinHorizontal(lipgloss.Center, bar, "  ", badge)
}

func (m *Model) renderSidebar() string {
	s := m.styles
	var sb strings.Builder
	flat := 0
	for _, group := range nav.GroupsFor(m.sess.Role) {
		sb.WriteString(s.NavGroup.Render(group.Title) + "\n")
		for _, item := range group.Items {
			style := s.NavItem
			prefix := "  "
			if flat == m.cursor {
				style = s.NavSelected
				prefix = "> "
				if m.focus != FocusSidebar {
					style = s.NavItem
				}
			}
			if item.Key == m.activeKey {
				style = s.NavSelected
			}
			sb.WriteString(style.Render(prefix+item.Title) + "\n")
			flat++
		}
	}
	return s.Sidebar.Width(ui.SidebarWidth).Render(sb.String())
}

func (m *Model) renderFooter() string {
	s := m.styles
	hints := "↑/↓ move · enter open · tab focus · r reload · t theme · esc back · ctrl+d sign out · q quit"
	line := s.Footer.Render(hints)
	if m.status != "" {
		line = s.Footer.Render(hints) + "  " + s.Warning.Render(m.status)
	}
	return line
}

// renderMarkdown renders assistant replies and AI feedback. Falls back to the
// raw text if the renderer cannot be built.
func renderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}
