package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"optischolar/cmd/scholar/ui"
	"optischolar/internal/api"
	"optischolar/internal/derive"
	"optischolar/internal/nav"
	"optischolar/internal/session"
	"optischolar/internal/viewstate"
)

// Composite payloads: each page loads all of its endpoints as one unit, so a
// view leaves the loading state only when every fetch has finished.

type adminDashboardData struct {
	Stats api.Stats
	Risk  api.RiskCounts
}

type analyticsData struct {
	Analytics  api.AdminAnalytics
	Attendance api.AttendanceStats
}

type riskData struct {
	Students []api.RiskStudent
	Counts   api.RiskCounts
}

type teacherDashboardData struct {
	Stats   api.TeacherStats
	Grading api.GradingStats
}

type gradingData struct {
	Courses []api.TeacherCourse
	Stats   api.GradingStats
}

type studentDashboardData struct {
	Dashboard api.StudentDashboard
	Courses   []api.Course
}

// pages holds the state of every screen. Parent list pages keep their loaded
// data while a drill-down view sits on top, so popping back never re-fetches.
type pages struct {
	adminDash    viewstate.Resource[adminDashboardData]
	schools      viewstate.Resource[[]api.School]
	schoolDetail viewstate.Resource[api.SchoolDetail]
	students     viewstate.Resource[[]api.Student]
	analytics    viewstate.Resource[analyticsData]
	risk         viewstate.Resource[riskData]

	teacherDash      viewstate.Resource[teacherDashboardData]
	teacherCourses   viewstate.Resource[[]api.TeacherCourse]
	attendance       viewstate.Resource[[]api.TeacherCourse]
	courseAttendance viewstate.Resource[[]api.AttendanceRecord]
	myStudents       viewstate.Resource[[]api.Student]
	grading          viewstate.Resource[gradingData]
	assignments      viewstate.Resource[[]api.Assignment]
	submissions      viewstate.Resource[[]api.Submission]
	alerts           viewstate.Resource[[]api.RiskStudent]

	studentDash viewstate.Resource[studentDashboardData]
	myCourses   viewstate.Resource[[]api.Course]
	grades      viewstate.Resource[[]api.Grade]

	resources     viewstate.Resource[[]api.Resource]
	notifications viewstate.Resource[[]api.Notification]

	// Cursors for drillable or editable lists.
	schoolCursor     int
	studentCursor    int
	courseCursor     int
	attendanceCursor int
	gradingCursor    int
	assignmentCursor int
	submissionCursor int

	// Drill context captured when descending.
	selectedSchool     string
	selectedCourse     string
	selectedAssignment api.Assignment

	// AI pages.
	assistantReply string
	faceResults    []recognizedRow
}

type recognizedRow struct {
	Name       string
	Reg        string
	Confidence float64
}

// renderView dispatches to the page renderer for the current view.
func (m *Model) renderView(view nav.ViewID) string {
	switch view {
	case nav.ViewAdminDashboard:
		return m.renderAdminDashboard()
	case nav.ViewSchools:
		return m.renderSchools()
	case nav.ViewSchoolDetail:
		return m.renderSchoolDetail()
	case nav.ViewStudents, nav.ViewMyStudents:
		return m.renderStudents(view)
	case nav.ViewAnalytics:
		return m.renderAnalytics()
	case nav.ViewRiskMonitor:
		return m.renderRisk()
	case nav.ViewTeacherDashboard:
		return m.renderTeacherDashboard()
	case nav.ViewTeacherCourses:
		return m.renderTeacherCourses()
	case nav.ViewAttendance:
		return m.renderAttendance()
	case nav.ViewCourseAttendance:
		return m.renderCourseAttendance()
	case nav.ViewFaceAttendance:
		return m.renderFaceAttendance()
	case nav.ViewGrading:
		return m.renderGrading()
	case nav.ViewAssignments:
		return m.renderAssignments()
	case nav.ViewSubmissions:
		return m.renderSubmissions()
	case nav.ViewAlerts:
		return m.renderAlerts()
	case nav.ViewStudentDashboard:
		return m.renderStudentDashboard()
	case nav.ViewMyCourses:
		return m.renderMyCourses()
	case nav.ViewGrades:
		return m.renderGrades()
	case nav.ViewStudentAttendance:
		return m.renderStudentAttendance()
	case nav.ViewResources:
		return m.renderResources()
	case nav.ViewAIAssistant:
		return m.renderAssistant()
	case nav.ViewNotifications:
		return m.renderNotifications()
	default:
		return ui.Placeholder(m.styles, nav.TitleFor(m.roleOrEmpty(), m.activeKey))
	}
}

func (m *Model) roleOrEmpty() string {
	if m.sess == nil {
		return ""
	}
	return m.sess.Role
}

// phaseChrome renders the loading or failed chrome shared by list pages.
// Dashboards never use it; they zero-fill instead.
func (m *Model) phaseChrome(phase viewstate.Phase, err error, caption string) (string, bool) {
	switch phase {
	case viewstate.Loading, viewstate.Idle:
		return ui.LoadingState(m.styles, m.spin.View(), caption), true
	case viewstate.Failed:
		return ui.ErrorState(m.styles, err.Error()), true
	default:
		return "", false
	}
}

// ---- Admin pages ----

func (m *Model) renderAdminDashboard() string {
	data := m.pages.adminDash.Value()
	s := m.styles
	cards := ui.StatCardRow(s, m.layout,
		ui.StatCard(s, "Total Students", fmt.Sprintf("%d", data.Stats.TotalStudents)),
		ui.StatCard(s, "Submissions", fmt.Sprintf("%d", data.Stats.TotalSubmissions)),
		ui.StatCard(s, "Auto-Approved", derive.FormatRate(data.Stats.AutoApprovedRate)),
		ui.StatCard(s, "Pending Review", fmt.Sprintf("%d", data.Stats.PendingReview)),
	)
	riskLine := fmt.Sprintf("At risk: %s critical, %s high, %d medium, %d low",
		s.Error.Render(fmt.Sprintf("%d", data.Risk.Critical)),
		s.Warning.Render(fmt.Sprintf("%d", data.Risk.High)),
		data.Risk.Medium, data.Risk.Low)

	sections := []string{s.Title.Render("Dashboard"), cards, "", riskLine}
	if m.pages.adminDash.Phase() == viewstate.Loading {
		sections = append(sections, "", ui.LoadingState(s, m.spin.View(), "refreshing"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderSchools() string {
	if out, done := m.phaseChrome(m.pages.schools.Phase(), m.pages.schools.Err(), "loading schools"); done {
		return out
	}
	schools := m.pages.schools.Value()
	if len(schools) == 0 {
		return ui.EmptyState(m.styles, "No schools found.")
	}

	table := ui.NewSimpleTable("Schools", []string{"Code", "Name", "Head", "Departments", "Courses"})
	table.Selected = m.pages.schoolCursor
	for _, s := range schools {
		table.AddRow(s.Code, s.Name, s.HeadOfSchool,
			fmt.Sprintf("%d", s.DepartmentCount), fmt.Sprintf("%d", s.CourseCount))
	}
	return table.View(m.styles) + m.styles.Muted.Render("enter to open a school")
}

func (m *Model) renderSchoolDetail() string {
	if out, done := m.phaseChrome(m.pages.schoolDetail.Phase(), m.pages.schoolDetail.Err(), "loading school"); done {
		return out
	}
	detail := m.pages.schoolDetail.Value()
	s := m.styles

	sections := []string{
		s.Title.Render(detail.Name),
		s.Subtitle.Render("Director: " + detail.Director),
	}
	groups := derive.GroupBySemester(detail.StudentsBySemester)
	if len(groups) == 0 {
		sections = append(sections, ui.EmptyState(s, "No students enrolled."))
	}
	for _, g := range groups {
		table := ui.NewSimpleTable(g.Label, []string{"Reg", "Name", "Course", "Email"})
		for _, st := range g.Students {
			table.AddRow(st.Reg, st.Name, st.Course, st.Email)
		}
		sections = append(sections, table.View(s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderStudents(view nav.ViewID) string {
	res := &m.pages.students
	title := "Students"
	if view == nav.ViewMyStudents {
		res = &m.pages.myStudents
		title = "My Students"
	}
	if out, done := m.phaseChrome(res.Phase(), res.Err(), "loading students"); done {
		return out
	}
	students := res.Value()
	if len(students) == 0 {
		return ui.EmptyState(m.styles, "No students found.")
	}

	table := ui.NewSimpleTable(title, []string{"Reg", "Name", "Department", "Semester", "Email"})
	table.Selected = m.pages.studentCursor
	for _, st := range students {
		table.AddRow(st.RegistrationNumber, st.Name, st.Department,
			fmt.Sprintf("%d", st.CurrentSemester), st.Email)
	}
	hint := ""
	if view == nav.ViewStudents {
		hint = m.styles.Muted.Render("enter to edit")
	}
	return table.View(m.styles) + hint
}

func (m *Model) renderAnalytics() string {
	data := m.pages.analytics.Value()
	s := m.styles

	var rates []float64
	for _, t := range data.Analytics.PassRateTrend {
		rates = append(rates, float64(t))
	}
	cards := ui.StatCardRow(s, m.layout,
		ui.StatCard(s, "Active Users", fmt.Sprintf("%d", data.Analytics.ActiveUsersNow)),
		ui.StatCard(s, "System Health", data.Analytics.SystemHealth),
		ui.StatCard(s, "Avg Pass Rate", derive.FormatRate(derive.Average(rates))),
		ui.StatCard(s, "Avg Attendance", derive.FormatRate(data.Attendance.AverageAttendance)),
	)

	var dept strings.Builder
	dept.WriteString(s.Bold.Render("Students by department") + "\n")
	for name, count := range data.Analytics.DepartmentDistribution {
		dept.WriteString(fmt.Sprintf("  %-30s %d\n", name, count))
	}

	sections := []string{s.Title.Render("Analytics"), cards, "", dept.String()}
	if m.pages.analytics.Phase() == viewstate.Loading {
		sections = append(sections, ui.LoadingState(s, m.spin.View(), "refreshing"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderRisk() string {
	if out, done := m.phaseChrome(m.pages.risk.Phase(), m.pages.risk.Err(), "loading risk feed"); done {
		return out
	}
	data := m.pages.risk.Value()
	s := m.styles

	header := fmt.Sprintf("%s  %s  %s  %s",
		s.Error.Render(fmt.Sprintf("critical %d", data.Counts.Critical)),
		s.Warning.Render(fmt.Sprintf("high %d", data.Counts.High)),
		s.Info.Render(fmt.Sprintf("medium %d", data.Counts.Medium)),
		s.Muted.Render(fmt.Sprintf("low %d", data.Counts.Low)))

	if len(data.Students) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Risk Monitor"), header,
			ui.EmptyState(s, "No students currently at risk."))
	}

	table := ui.NewSimpleTable("", []string{"Level", "Student", "Reg", "Attendance", "Grade Avg", "Factors"})
	for _, r := range data.Students {
		table.AddRow(
			s.RiskStyle(r.RiskLevel).Render(r.RiskLevel),
			r.StudentName, r.StudentReg,
			derive.FormatRate(r.AttendanceRate),
			fmt.Sprintf("%.1f", r.GradeAverage),
			strings.Join(r.Factors, ", "))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Risk Monitor"), header, table.View(s))
}

// ---- Teacher pages ----

func (m *Model) renderTeacherDashboard() string {
	data := m.pages.teacherDash.Value()
	s := m.styles
	cards := ui.StatCardRow(s, m.layout,
		ui.StatCard(s, "My Students", fmt.Sprintf("%d", data.Stats.TotalStudents)),
		ui.StatCard(s, "My Courses", fmt.Sprintf("%d", data.Stats.TotalCourses)),
		ui.StatCard(s, "Avg Attendance", derive.FormatRate(data.Stats.AvgAttendance)),
		ui.StatCard(s, "At Risk", fmt.Sprintf("%d", data.Stats.AtRiskStudents)),
	)
	grading := fmt.Sprintf("Grading queue: %d pending of %d submissions, AI accuracy %s",
		data.Grading.PendingReview, data.Grading.TotalSubmissions,
		derive.FormatRate(data.Grading.AIAccuracy))

	sections := []string{s.Title.Render("Dashboard"), cards, "", grading}
	if m.pages.teacherDash.Phase() == viewstate.Loading {
		sections = append(sections, "", ui.LoadingState(s, m.spin.View(), "refreshing"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTeacherCourses() string {
	if out, done := m.phaseChrome(m.pages.teacherCourses.Phase(), m.pages.teacherCourses.Err(), "loading courses"); done {
		return out
	}
	courses := m.pages.teacherCourses.Value()
	if len(courses) == 0 {
		return ui.EmptyState(m.styles, "No courses assigned.")
	}
	table := ui.NewSimpleTable("My Courses", []string{"Code", "Name", "Semester", "Students", "Credits"})
	for _, c := range courses {
		table.AddRow(c.CourseCode, c.CourseName, fmt.Sprintf("%d", c.Semester),
			fmt.Sprintf("%d", c.TotalStudents), fmt.Sprintf("%d", c.Credits))
	}
	return table.View(m.styles)
}

func (m *Model) renderAttendance() string {
	if out, done := m.phaseChrome(m.pages.attendance.Phase(), m.pages.attendance.Err(), "loading courses"); done {
		return out
	}
	courses := m.pages.attendance.Value()
	if len(courses) == 0 {
		return ui.EmptyState(m.styles, "No courses assigned.")
	}
	table := ui.NewSimpleTable("Attendance", []string{"Code", "Name", "Students"})
	table.Selected = m.pages.courseCursor
	for _, c := range courses {
		table.AddRow(c.CourseCode, c.CourseName, fmt.Sprintf("%d", c.TotalStudents))
	}
	return table.View(m.styles) + m.styles.Muted.Render("enter to open course attendance")
}

func (m *Model) renderCourseAttendance() string {
	if out, done := m.phaseChrome(m.pages.courseAttendance.Phase(), m.pages.courseAttendance.Err(), "loading attendance"); done {
		return out
	}
	records := m.pages.courseAttendance.Value()
	if len(records) == 0 {
		return ui.EmptyState(m.styles, "No attendance records for this course.")
	}
	table := ui.NewSimpleTable(m.pages.selectedCourse, []string{"Reg", "Student", "Attended", "Total", "Rate", "Band"})
	table.Selected = m.pages.attendanceCursor
	for _, r := range records {
		rate := derive.Rate(r.Attended, r.TotalClasses)
		table.AddRow(r.StudentReg, r.StudentName,
			fmt.Sprintf("%d", r.Attended), fmt.Sprintf("%d", r.TotalClasses),
			derive.FormatRate(rate), derive.AttendanceBand(rate))
	}
	return table.View(m.styles) + m.styles.Muted.Render("enter to edit attended count")
}

func (m *Model) renderFaceAttendance() string {
	s := m.styles
	sections := []string{
		s.Title.Render("AI Attendance"),
		s.Body.Render("Capture a classroom photo and let the recognizer mark attendance."),
		s.Muted.Render("press enter to run recognition on the latest capture"),
	}
	if len(m.pages.faceResults) > 0 {
		table := ui.NewSimpleTable("Recognized", []string{"Reg", "Student", "Confidence"})
		for _, r := range m.pages.faceResults {
			table.AddRow(r.Reg, r.Name, derive.FormatRate(r.Confidence*100))
		}
		sections = append(sections, table.View(s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderGrading() string {
	if out, done := m.phaseChrome(m.pages.grading.Phase(), m.pages.grading.Err(), "loading grading queue"); done {
		return out
	}
	data := m.pages.grading.Value()
	s := m.styles

	header := fmt.Sprintf("%d pending of %d submissions, AI accuracy %s",
		data.Stats.PendingReview, data.Stats.TotalSubmissions,
		derive.FormatRate(data.Stats.AIAccuracy))

	if len(data.Courses) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Grading"), header,
			ui.EmptyState(s, "No courses to grade."))
	}
	table := ui.NewSimpleTable("", []string{"Code", "Course", "Students"})
	table.Selected = m.pages.gradingCursor
	for _, c := range data.Courses {
		table.AddRow(c.CourseCode, c.CourseName, fmt.Sprintf("%d", c.TotalStudents))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Grading"), header, table.View(s),
		s.Muted.Render("enter to open assignments"))
}

func (m *Model) renderAssignments() string {
	if out, done := m.phaseChrome(m.pages.assignments.Phase(), m.pages.assignments.Err(), "loading assignments"); done {
		return out
	}
	assignments := m.pages.assignments.Value()
	if len(assignments) == 0 {
		return ui.EmptyState(m.styles, "No assignments in this course.")
	}
	table := ui.NewSimpleTable(m.pages.selectedCourse, []string{"Title", "Due", "Max", "Submissions", "Pending"})
	table.Selected = m.pages.assignmentCursor
	for _, a := range assignments {
		table.AddRow(a.Title, a.DueDate, fmt.Sprintf("%d", a.MaxScore),
			fmt.Sprintf("%d", a.SubmissionCount), fmt.Sprintf("%d", a.PendingReview))
	}
	hint := "enter to open submissions"
	if m.sess != nil && m.sess.Role == session.RoleStudent {
		hint = "enter to write and submit an answer"
	}
	return table.View(m.styles) + m.styles.Muted.Render(hint)
}

func (m *Model) renderSubmissions() string {
	if out, done := m.phaseChrome(m.pages.submissions.Phase(), m.pages.submissions.Err(), "loading submissions"); done {
		return out
	}
	subs := m.pages.submissions.Value()
	s := m.styles
	if len(subs) == 0 {
		return ui.EmptyState(s, "No submissions yet.")
	}

	pending := derive.PendingCount(subs)
	header := fmt.Sprintf("%d submissions, %d pending review, AI accuracy %s",
		len(subs), pending, derive.FormatRate(derive.AIAccuracy(subs)))

	table := ui.NewSimpleTable(m.pages.selectedAssignment.Title,
		[]string{"Student", "Reg", "AI Score", "Teacher", "Diff", "Status"})
	table.Selected = m.pages.submissionCursor
	for _, sub := range subs {
		teacher, diff := "-", "-"
		if sub.TeacherVerified {
			teacher = fmt.Sprintf("%d", sub.TeacherScore)
			diff = derive.ScoreDiff(sub.TeacherScore, sub.AIScore)
		}
		status := sub.Status
		switch sub.Status {
		case api.SubmissionApproved:
			status = s.Success.Render(status)
		case api.SubmissionNeedsRevision:
			status = s.Warning.Render(status)
		}
		table.AddRow(sub.StudentName, sub.StudentReg,
			fmt.Sprintf("%d", sub.AIScore), teacher, diff, status)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header, table.View(s), s.Muted.Render("enter to verify"))
}

func (m *Model) renderAlerts() string {
	if out, done := m.phaseChrome(m.pages.alerts.Phase(), m.pages.alerts.Err(), "loading alerts"); done {
		return out
	}
	alerts := m.pages.alerts.Value()
	s := m.styles
	if len(alerts) == 0 {
		return ui.EmptyState(s, "No active alerts.")
	}
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Alerts") + "\n")
	for _, a := range alerts {
		sb.WriteString(fmt.Sprintf("%s %s (%s)\n",
			s.RiskStyle(a.RiskLevel).Render("●"), a.StudentName, a.StudentReg))
		for _, action := range a.RecommendedActions {
			sb.WriteString(s.Muted.Render("    → "+action) + "\n")
		}
	}
	return sb.String()
}

// ---- Student pages ----

func (m *Model) renderStudentDashboard() string {
	data := m.pages.studentDash.Value()
	s := m.styles
	cards := ui.StatCardRow(s, m.layout,
		ui.StatCard(s, "Attendance", derive.FormatRate(derive.Rate(data.Dashboard.PresentCount, data.Dashboard.TotalRecords))),
		ui.StatCard(s, "Present", fmt.Sprintf("%d", data.Dashboard.PresentCount)),
		ui.StatCard(s, "Absent", fmt.Sprintf("%d", data.Dashboard.AbsentCount)),
		ui.StatCard(s, "Courses", fmt.Sprintf("%d", len(data.Courses))),
	)
	sections := []string{s.Title.Render("Dashboard"), cards}
	if m.pages.studentDash.Phase() == viewstate.Loading {
		sections = append(sections, "", ui.LoadingState(s, m.spin.View(), "refreshing"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderMyCourses() string {
	if out, done := m.phaseChrome(m.pages.myCourses.Phase(), m.pages.myCourses.Err(), "loading courses"); done {
		return out
	}
	courses := m.pages.myCourses.Value()
	if len(courses) == 0 {
		return ui.EmptyState(m.styles, "No enrolled courses.")
	}
	table := ui.NewSimpleTable("My Courses", []string{"Code", "Name", "Credits", "Semester"})
	for _, c := range courses {
		table.AddRow(c.Code, c.Name, fmt.Sprintf("%d", c.Credits), fmt.Sprintf("%d", c.Semester))
	}
	return table.View(m.styles) + m.styles.Muted.Render("enter to open course assignments")
}

func (m *Model) renderGrades() string {
	if out, done := m.phaseChrome(m.pages.grades.Phase(), m.pages.grades.Err(), "loading grades"); done {
		return out
	}
	grades := m.pages.grades.Value()
	if len(grades) == 0 {
		return ui.EmptyState(m.styles, "No grades recorded yet.")
	}
	table := ui.NewSimpleTable("Recent Grades", []string{"Exam", "Score", "Max", "Confidence", "Status"})
	for _, g := range grades {
		table.AddRow(g.ExamName, fmt.Sprintf("%.0f", g.Score), fmt.Sprintf("%.0f", g.MaxScore),
			derive.FormatRate(g.Confidence*100), g.Status)
	}
	return table.View(m.styles)
}

func (m *Model) renderStudentAttendance() string {
	data := m.pages.studentDash.Value()
	s := m.styles
	rate := derive.Rate(data.Dashboard.PresentCount, data.Dashboard.TotalRecords)
	cards := ui.StatCardRow(s, m.layout,
		ui.StatCard(s, "Attendance Rate", derive.FormatRate(rate)),
		ui.StatCard(s, "Classes Attended", fmt.Sprintf("%d", data.Dashboard.PresentCount)),
		ui.StatCard(s, "Classes Missed", fmt.Sprintf("%d", data.Dashboard.AbsentCount)),
	)
	band := derive.AttendanceBand(rate)
	sections := []string{s.Title.Render("Attendance"), cards, "",
		s.Body.Render("Standing: ") + s.RiskStyle(bandToRisk(band)).Render(band)}
	if m.pages.studentDash.Phase() == viewstate.Loading {
		sections = append(sections, "", ui.LoadingState(s, m.spin.View(), "refreshing"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func bandToRisk(band string) string {
	switch band {
	case "excellent":
		return "low"
	case "good":
		return "medium"
	default:
		return "critical"
	}
}

// ---- Shared pages ----

func (m *Model) renderResources() string {
	if out, done := m.phaseChrome(m.pages.resources.Phase(), m.pages.resources.Err(), "loading resources"); done {
		return out
	}
	resources := m.pages.resources.Value()
	if len(resources) == 0 {
		return ui.EmptyState(m.styles, "No study resources available.")
	}
	table := ui.NewSimpleTable("Resources", []string{"Title", "Type", "Difficulty", "Relevance"})
	for _, r := range resources {
		table.AddRow(r.Title, r.Type, r.Difficulty, derive.FormatRate(r.RelevanceScore*100))
	}
	return table.View(m.styles)
}

func (m *Model) renderAssistant() string {
	s := m.styles
	sections := []string{
		s.Title.Render("AI Assistant"),
		s.Muted.Render("press enter to ask a question"),
	}
	if m.pages.assistantReply != "" {
		sections = append(sections, "", m.pages.assistantReply)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderNotifications() string {
	if out, done := m.phaseChrome(m.pages.notifications.Phase(), m.pages.notifications.Err(), "loading notifications"); done {
		return out
	}
	notes := m.pages.notifications.Value()
	s := m.styles
	if len(notes) == 0 {
		return ui.EmptyState(s, "No notifications.")
	}
	var sb strings.Builder
	sb.WriteString(s.Title.Render("Notifications") + "\n")
	for _, n := range notes {
		sb.WriteString(s.Bold.Render(n.Title))
		if n.CourseCode != "" {
			sb.WriteString(" " + s.Badge.Render(n.CourseCode))
		}
		sb.WriteString("\n" + s.Body.Render(n.Message) + "\n")
		sb.WriteString(s.Muted.Render(n.CreatedAt) + "\n\n")
	}
	if m.sess != nil && m.sess.Role == session.RoleTeacher {
		sb.WriteString(s.Muted.Render("press n to send an announcement"))
	}
	return sb.String()
}
