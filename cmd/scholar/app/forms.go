package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"optischolar/cmd/scholar/ui"
	"optischolar/internal/api"
	"optischolar/internal/inference"
	"optischolar/internal/nav"
)

// form is a modal capturing input for one mutation. While a form is open it
// receives all key events. On a failed write the form stays open with the
// error inline and every entered value intact.
type form interface {
	update(m *Model, msg tea.KeyMsg) (tea.Cmd, bool)
	view(s ui.Styles) string
	title() string
	setError(msg string)
}

func renderFormFrame(s ui.Styles, title string, errMsg string, body ...string) string {
	sections := []string{s.Title.Render(title)}
	sections = append(sections, body...)
	if errMsg != "" {
		sections = append(sections, s.FormError.Render("✗ "+errMsg))
	}
	sections = append(sections, s.Muted.Render("esc to cancel"))
	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func cycleFocus(inputs []*textinput.Model, forward bool) {
	active := 0
	for i, in := range inputs {
		if in.Focused() {
			active = i
			in.Blur()
		}
	}
	if forward {
		active = (active + 1) % len(inputs)
	} else {
		active = (active - 1 + len(inputs)) % len(inputs)
	}
	inputs[active].Focus()
}

func newInput(placeholder, value string, focus bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.SetValue(value)
	in.CharLimit = 128
	if focus {
		in.Focus()
	}
	return in
}

// ---- Student edit ----

type studentEditForm struct {
	student  api.Student
	name     textinput.Model
	phone    textinput.Model
	dept     textinput.Model
	semester textinput.Model
	errMsg   string
}

func newStudentEditForm(student api.Student) *studentEditForm {
	return &studentEditForm{
		student:  student,
		name:     newInput("name", student.Name, true),
		phone:    newInput("phone", "", false),
		dept:     newInput("department", student.Department, false),
		semester: newInput("semester", fmt.Sprintf("%d", student.CurrentSemester), false),
	}
}

func (f *studentEditForm) title() string       { return "Edit Student: " + f.student.Name }
func (f *studentEditForm) setError(msg string) { f.errMsg = msg }

func (f *studentEditForm) update(m *Model, msg tea.KeyMsg) (tea.Cmd, bool) {
	inputs := []*textinput.Model{&f.name, &f.phone, &f.dept, &f.semester}
	switch msg.String() {
	case "tab", "down":
		cycleFocus(inputs, true)
		return nil, false
	case "shift+tab", "up":
		cycleFocus(inputs, false)
		return nil, false
	case "enter":
		semester, err := strconv.Atoi(strings.TrimSpace(f.semester.Value()))
		if err != nil || semester < 1 {
			f.errMsg = "semester must be a positive number"
			return nil, false
		}
		upd := api.StudentUpdate{
			Name:            strings.TrimSpace(f.name.Value()),
			Phone:           strings.TrimSpace(f.phone.Value()),
			Department:      strings.TrimSpace(f.dept.Value()),
			CurrentSemester: semester,
		}
		client := m.client
		id := f.student.ID
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			result, err := client.UpdateStudent(ctx, id, upd)
			return mutationMsg{label: "student update", result: result, err: err, reload: nav.ViewStudents}
		}, false
	}
	var cmds []tea.Cmd
	for _, in := range inputs {
		if in.Focused() {
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...), false
}

func (f *studentEditForm) view(s ui.Styles) string {
	return renderFormFrame(s, f.title(), f.errMsg,
		s.FormLabel.Render("Name"), f.name.View(),
		s.FormLabel.Render("Phone"), f.phone.View(),
		s.FormLabel.Render("Department"), f.dept.View(),
		s.FormLabel.Render("Semester"), f.semester.View(),
		s.Muted.Render("enter to save"))
}

// ---- Attendance edit ----

type attendanceForm struct {
	record   api.AttendanceRecord
	attended textinput.Model
	errMsg   string
}

func newAttendanceForm(record api.AttendanceRecord) *attendanceForm {
	return &attendanceForm{
		record:   record,
		attended: newInput("attended classes", fmt.Sprintf("%d", record.Attended), true),
	}
}

func (f *attendanceForm) title() string       { return "Edit Attendance: " + f.record.StudentName }
func (f *attendanceForm) setError(msg string) { f.errMsg = msg }

func (f *attendanceForm) update(m *Model, msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "enter" {
		attended, err := strconv.Atoi(strings.TrimSpace(f.attended.Value()))
		if err != nil || attended < 0 {
			f.errMsg = "attended must be a non-negative number"
			return nil, false
		}
		if attended > f.record.TotalClasses {
			f.errMsg = fmt.Sprintf("attended cannot exceed %d total classes", f.record.TotalClasses)
			return nil, false
		}
		client := m.client
		id := f.record.ID
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			result, err := client.UpdateAttendance(ctx, id, attended)
			return mutationMsg{label: "attendance update", result: result, err: err, reload: nav.ViewCourseAttendance}
		}, false
	}
	var cmd tea.Cmd
	f.attended, cmd = f.attended.Update(msg)
	return cmd, false
}

func (f *attendanceForm) view(s ui.Styles) string {
	return renderFormFrame(s, f.title(), f.errMsg,
		s.FormLabel.Render(fmt.Sprintf("Attended (of %d)", f.record.TotalClasses)),
		f.attended.View(),
		s.Muted.Render("enter to save"))
}

// ---- Submission verify ----

type verifyForm struct {
	submission api.Submission
	maxScore   int
	score      textinput.Model
	feedback   textinput.Model
	errMsg     string
}

func newVerifyForm(submission api.Submission, maxScore int) *verifyForm {
	score := submission.AIScore
	if submission.TeacherVerified {
		score = submission.TeacherScore
	}
	return &verifyForm{
		submission: submission,
		maxScore:   maxScore,
		score:      newInput("score", fmt.Sprintf("%d", score), true),
		feedback:   newInput("feedback", submission.AIFeedback, false),
	}
}

func (f *verifyForm) title() string       { return "Verify: " + f.submission.StudentName }
func (f *verifyForm) setError(msg string) { f.errMsg = msg }

func (f *verifyForm) submitCmd(m *Model, approved bool) (tea.Cmd, bool) {
	score, err := strconv.Atoi(strings.TrimSpace(f.score.Value()))
	if err != nil || score < 0 || score > f.maxScore {
		f.errMsg = fmt.Sprintf("score must be between 0 and %d", f.maxScore)
		return nil, false
	}
	client := m.client
	id := f.submission.ID
	feedback := strings.TrimSpace(f.feedback.Value())
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		result, err := client.VerifySubmission(ctx, id, score, feedback, approved)
		return mutationMsg{label: "verification", result: result, err: err, reload: nav.ViewSubmissions}
	}, false
}

func (f *verifyForm) update(m *Model, msg tea.KeyMsg) (tea.Cmd, bool) {
	inputs := []*textinput.Model{&f.score, &f.feedback}
	switch msg.String() {
	case "tab", "down":
		cycleFocus(inputs, true)
		return nil, false
	case "shift+tab", "up":
		cycleFocus(inputs, false)
		return nil, false
	case "enter":
		return f.submitCmd(m, true)
	case "ctrl+r":
		return f.submitCmd(m, false)
	}
	var cmds []tea.Cmd
	for _, in := range inputs {
		if in.Focused() {
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...), false
}

func (f *verifyForm) view(s ui.Styles) string {
	aiLine := fmt.Sprintf("AI score %d: %s", f.submission.AIScore, f.submission.AIFeedback)
	return renderFormFrame(s, f.title(), f.errMsg,
		s.Muted.Render(aiLine),
		s.FormLabel.Render(fmt.Sprintf("Score (max %d)", f.maxScore)), f.score.View(),
		s.FormLabel.Render("Feedback"), f.feedback.View(),
		s.Muted.Render("enter to approve, ctrl+r to send back for revision"))
}

// ---- Notification compose ----

type notifyForm struct {
	titleIn textinput.Model
	message textinput.Model
	course  textinput.Model
	errMsg  string
}

func newNotifyForm() *notifyForm {
	return &notifyForm{
		titleIn: newInput("title", "", true),
		message: newInput("message", "", false),
		course:  newInput("course code (optional)", "", false),
	}
}

func (f *notifyForm) title() string       { return "Send Announcement" }
func (f *notifyForm) setError(msg string) { f.errMsg = msg }

func (f *notifyForm) update(m *Model, msg tea.KeyMsg) (tea.Cmd, bool) {
	inputs := []*textinput.Model{&f.titleIn, &f.message, &f.course}
	switch msg.String() {
	case "tab", "down":
		cycleFocus(inputs, true)
		return nil, false
	case "shift+tab", "up":
		cycleFocus(inputs, false)
		return nil, false
	case "enter":
		title := strings.TrimSpace(f.titleIn.Value())
		body := strings.TrimSpace(f.message.Value())
		if title == "" || body == "" {
			f.errMsg = "title and message are required"
			return nil, false
		}
		note := api.Notification{
			Type:       "announcement",
			Title:      title,
			Message:    body,
			CourseCode: strings.TrimSpace(f.course.Value()),
		}
		client := m.client
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			result, err := client.SendNotification(ctx, note)
			return mutationMsg{label: "announcement", result: result, err: err, reload: nav.ViewNotifications}
		}, false
	}
	var cmds []tea.Cmd
	for _, in := range inputs {
		if in.Focused() {
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...), false
}

func (f *notifyForm) view(s ui.Styles) string {
	return renderFormFrame(s, f.title(), f.errMsg,
		s.FormLabel.Render("Title"), f.titleIn.View(),
		s.FormLabel.Render("Message"), f.message.View(),
		s.FormLabel.Render("Course"), f.course.View(),
		s.Muted.Render("enter to send"))
}

// ---- Assignment submit (student) ----

type submitForm struct {
	assignment api.Assignment
	courseCode string
	answer     textarea.Model
	errMsg     string
}

func newSubmitForm(assignment api.Assignment, courseCode string) *submitForm {
	ta := textarea.New()
	ta.Placeholder = "Write your answer..."
	ta.SetHeight(8)
	ta.Focus()
	return &submitForm{assignment: assignment, courseCode: courseCode, answer: ta}
}

func (f *submitForm) title() string       { return "Submit: " + f.assignment.Title }
func (f *submitForm) setError(msg string) { f.errMsg = msg }

func (f *submitForm) update(m *Model, msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+s" {
		text := strings.TrimSpace(f.answer.Value())
		check := inference.GradeRequest{
			AssignmentTitle: f.assignment.Title,
			Description:     f.assignment.Description,
			MaxScore:        f.assignment.MaxScore,
			SubmissionText:  text,
		}
		if err := check.Validate(); err != nil {
			f.errMsg = err.Error()
			return nil, false
		}
		sess := m.sess
		req := api.SubmitRequest{
			AssignmentID:   f.assignment.ID,
			StudentID:      sess.UserID,
			StudentName:    sess.FullName,
			StudentReg:     sess.RegistrationNumber,
			CourseCode:     f.courseCode,
			SubmissionText: text,
		}
		client := m.client
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			result, err := client.SubmitAssignment(ctx, req)
			var ack *api.MutationResult
			if result != nil {
				ack = &api.MutationResult{
					Success: true,
					Message: fmt.Sprintf("Submitted, AI score %d: %s", result.AIScore, result.AIFeedback),
				}
			}
			return mutationMsg{label: "submission", result: ack, err: err, reload: nav.ViewGrades}
		}, false
	}
	var cmd tea.Cmd
	f.answer, cmd = f.answer.Update(msg)
	return cmd, false
}

func (f *submitForm) view(s ui.Styles) string {
	return renderFormFrame(s, f.title(), f.errMsg,
		s.Muted.Render(f.assignment.Description),
		f.answer.View(),
		s.Muted.Render("ctrl+s to submit"))
}

// ---- Assistant question ----

type assistantForm struct {
	question textarea.Model
	errMsg   string
}

func newAssistantForm() *assistantForm {
	ta := textarea.New()
	ta.Placeholder = "Ask a study question..."
	ta.SetHeight(4)
	ta.Focus()
	return &assistantForm{question: ta}
}

func (f *assistantForm) title() string       { return "Ask the Assistant" }
func (f *assistantForm) setError(msg string) { f.errMsg = msg }

func (f *assistantForm) update(m *Model, msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+s" {
		question := strings.TrimSpace(f.question.Value())
		if question == "" {
			f.errMsg = "question is empty"
			return nil, false
		}
		return m.askAssistantCmd(question), true
	}
	var cmd tea.Cmd
	f.question, cmd = f.question.Update(msg)
	return cmd, false
}

func (f *assistantForm) view(s ui.Styles) string {
	return renderFormFrame(s, f.title(), f.errMsg,
		f.question.View(),
		s.Muted.Render("ctrl+s to ask"))
}
