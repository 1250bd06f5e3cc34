package app

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"optischolar/cmd/scholar/ui"
	"optischolar/internal/logging"
	"optischolar/internal/nav"
	"optischolar/internal/session"
)

// Update is the main event loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout = ui.NewLayoutConfig(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginResultMsg:
		if msg.err != nil {
			var authErr *session.AuthError
			if errors.As(msg.err, &authErr) {
				m.login.fail(authErr.Message)
			} else {
				m.login.fail(msg.err.Error())
			}
			return m, nil
		}
		m.sess = msg.sess
		m.login = newLoginForm()
		m.activeKey = nav.DefaultKey(m.sess.Role)
		m.cursor = 0
		m.stack = nil
		m.status = ""
		return m, m.loadView(m.currentView())

	case dataMsg:
		m.applyData(msg)
		return m, nil

	case mutationMsg:
		return m.handleMutation(msg)

	case assistantMsg:
		if m.form != nil {
			m.form = nil
		}
		if msg.err != nil {
			m.status = "assistant: " + msg.err.Error()
			return m, nil
		}
		m.pages.assistantReply = msg.reply
		return m, nil

	case recognizeMsg:
		if msg.err != nil {
			m.status = "recognition: " + msg.err.Error()
			return m, nil
		}
		m.pages.faceResults = m.pages.faceResults[:0]
		for _, s := range msg.students {
			m.pages.faceResults = append(m.pages.faceResults, recognizedRow{
				Name: s.Name, Reg: s.Reg, Confidence: s.Confidence,
			})
		}
		m.status = ""
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			logging.StoreError("theme save failed: %v", msg.err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The form stays open with everything the user typed.
		if m.form != nil {
			m.form.setError(msg.err.Error())
		} else {
			m.status = msg.label + " failed: " + msg.err.Error()
		}
		return m, nil
	}
	if msg.result != nil && !msg.result.Success {
		if m.form != nil {
			m.form.setError(msg.result.Message)
		} else {
			m.status = msg.label + " failed: " + msg.result.Message
		}
		return m, nil
	}

	m.form = nil
	if msg.result != nil && msg.result.Message != "" {
		m.status = msg.result.Message
	}
	return m, m.loadView(msg.reload)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// Login screen
	if m.sess == nil {
		cmd := m.login.update(&m, msg)
		return m, cmd
	}

	// Modal form captures everything except escape.
	if m.form != nil {
		if msg.String() == "esc" {
			m.form = nil
			return m, nil
		}
		cmd, closed := m.form.update(&m, msg)
		if closed {
			m.form = nil
		}
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "ctrl+d":
		m.resetForLogout()
		return m, nil

	case "t":
		return m.toggleTheme()

	case "r":
		m.status = ""
		return m, m.loadView(m.currentView())

	case "esc":
		if len(m.stack) > 0 {
			m.stack = m.stack[:len(m.stack)-1]
		}
		return m, nil

	case "tab":
		if m.focus == FocusSidebar {
			m.focus = FocusContent
		} else {
			m.focus = FocusSidebar
		}
		return m, nil

	case "up", "k":
		m.moveCursor(-1)
		return m, nil

	case "down", "j":
		m.moveCursor(1)
		return m, nil

	case "enter":
		return m.activate()

	case "n":
		if m.currentView() == nav.ViewNotifications && m.sess.Role == session.RoleTeacher {
			m.form = newNotifyForm()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) toggleTheme() (tea.Model, tea.Cmd) {
	name := "dark"
	if m.styles.Theme.IsDark {
		name = "light"
	}
	m.styles = ui.NewStyles(ui.ThemeByName(name))
	m.spin.Style = m.styles.Spinner
	return *m, m.saveThemeCmd(name)
}

// moveCursor moves the sidebar or the active content list, depending on
// focus. Drill-down views always own the cursor.
func (m *Model) moveCursor(delta int) {
	if m.focus == FocusSidebar && len(m.stack) == 0 {
		items := m.sidebarItems()
		m.cursor = clamp(m.cursor+delta, 0, len(items)-1)
		return
	}
	view := m.currentView()
	cursor, length := m.contentCursor(view)
	if cursor != nil && length > 0 {
		*cursor = clamp(*cursor+delta, 0, length-1)
	}
}

// contentCursor returns the cursor of the current view's list and the list
// length, or nil for views without a selectable list.
func (m *Model) contentCursor(view nav.ViewID) (*int, int) {
	p := &m.pages
	switch view {
	case nav.ViewSchools:
		return &p.schoolCursor, len(p.schools.Value())
	case nav.ViewStudents:
		return &p.studentCursor, len(p.students.Value())
	case nav.ViewAttendance:
		return &p.courseCursor, len(p.attendance.Value())
	case nav.ViewCourseAttendance:
		return &p.attendanceCursor, len(p.courseAttendance.Value())
	case nav.ViewGrading:
		return &p.gradingCursor, len(p.grading.Value().Courses)
	case nav.ViewAssignments:
		return &p.assignmentCursor, len(p.assignments.Value())
	case nav.ViewSubmissions:
		return &p.submissionCursor, len(p.submissions.Value())
	case nav.ViewMyCourses:
		return &p.courseCursor, len(p.myCourses.Value())
	default:
		return nil, 0
	}
}

// activate handles enter: sidebar selection or a content action.
func (m Model) activate() (tea.Model, tea.Cmd) {
	if m.focus == FocusSidebar && len(m.stack) == 0 {
		items := m.sidebarItems()
		if m.cursor >= len(items) {
			return m, nil
		}
		item := items[m.cursor]
		m.activeKey = item.Key
		m.stack = nil
		m.status = ""
		m.focus = FocusContent
		return m, m.loadView(nav.Resolve(m.sess.Role, item.Key))
	}
	return m.activateContent()
}

func (m Model) activateContent() (tea.Model, tea.Cmd) {
	p := &m.pages
	switch m.currentView() {
	case nav.ViewSchools:
		schools := p.schools.Value()
		if p.schoolCursor < len(schools) {
			school := schools[p.schoolCursor]
			p.selectedSchool = school.Code
			m.stack = append(m.stack, crumb{view: nav.ViewSchoolDetail, title: school.Name})
			return m, m.loadView(nav.ViewSchoolDetail)
		}

	case nav.ViewStudents:
		students := p.students.Value()
		if p.studentCursor < len(students) {
			m.form = newStudentEditForm(students[p.studentCursor])
		}

	case nav.ViewAttendance:
		courses := p.attendance.Value()
		if p.courseCursor < len(courses) {
			course := courses[p.courseCursor]
			p.selectedCourse = course.CourseCode
			p.attendanceCursor = 0
			m.stack = append(m.stack, crumb{view: nav.ViewCourseAttendance, title: course.CourseCode})
			return m, m.loadView(nav.ViewCourseAttendance)
		}

	case nav.ViewCourseAttendance:
		records := p.courseAttendance.Value()
		if p.attendanceCursor < len(records) {
			m.form = newAttendanceForm(records[p.attendanceCursor])
		}

	case nav.ViewGrading:
		courses := p.grading.Value().Courses
		if p.gradingCursor < len(courses) {
			course := courses[p.gradingCursor]
			p.selectedCourse = course.CourseCode
			p.assignmentCursor = 0
			m.stack = append(m.stack, crumb{view: nav.ViewAssignments, title: course.CourseCode})
			return m, m.loadView(nav.ViewAssignments)
		}

	case nav.ViewAssignments:
		assignments := p.assignments.Value()
		if p.assignmentCursor < len(assignments) {
			assignment := assignments[p.assignmentCursor]
			if m.sess.Role == session.RoleStudent {
				m.form = newSubmitForm(assignment, p.selectedCourse)
				return m, nil
			}
			p.selectedAssignment = assignment
			p.submissionCursor = 0
			m.stack = append(m.stack, crumb{view: nav.ViewSubmissions, title: assignment.Title})
			return m, m.loadView(nav.ViewSubmissions)
		}

	case nav.ViewSubmissions:
		subs := p.submissions.Value()
		if p.submissionCursor < len(subs) {
			m.form = newVerifyForm(subs[p.submissionCursor], p.selectedAssignment.MaxScore)
		}

	case nav.ViewMyCourses:
		courses := p.myCourses.Value()
		if p.courseCursor < len(courses) {
			course := courses[p.courseCursor]
			p.selectedCourse = course.Code
			p.assignmentCursor = 0
			m.stack = append(m.stack, crumb{view: nav.ViewAssignments, title: course.Code})
			return m, m.loadView(nav.ViewAssignments)
		}

	case nav.ViewFaceAttendance:
		return m, m.recognizeCmd()

	case nav.ViewAIAssistant:
		m.form = newAssistantForm()
	}
	return m, nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
