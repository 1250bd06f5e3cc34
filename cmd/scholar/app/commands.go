package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"optischolar/internal/api"
	"optischolar/internal/inference"
	"optischolar/internal/logging"
	"optischolar/internal/nav"
	"optischolar/internal/session"
	"optischolar/internal/store"
)

// dataMsg delivers one page's combined fetch result. The epoch is the load
// generation of the page's resource; stale results are discarded in Update.
type dataMsg struct {
	view    nav.ViewID
	epoch   int
	payload interface{}
	err     error
}

// loginResultMsg delivers the outcome of a login attempt.
type loginResultMsg struct {
	sess *session.Session
	err  error
}

// mutationMsg delivers the outcome of a write call. On success the view named
// by reload is re-fetched so the list reflects the write.
type mutationMsg struct {
	label  string
	result *api.MutationResult
	err    error
	reload nav.ViewID
}

// assistantMsg carries the AI assistant's rendered reply.
type assistantMsg struct {
	reply string
	err   error
}

// recognizeMsg carries face recognition results for the AI attendance view.
type recognizeMsg struct {
	students []inference.RecognizedStudent
	err      error
}

// themeSavedMsg confirms the theme preference write.
type themeSavedMsg struct{ err error }

func fetchCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), api.DefaultTimeout)
}

// loadView starts the fetch for a view. Returns nil for views with nothing to
// fetch. The epoch is captured before the command runs so late results from a
// superseded load never overwrite fresher state.
func (m *Model) loadView(view nav.ViewID) tea.Cmd {
	client := m.client
	sess := m.sess
	if sess == nil {
		return nil
	}

	switch view {
	case nav.ViewAdminDashboard:
		epoch := m.pages.adminDash.StartLoad()
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			var data adminDashboardData
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				s, err := client.Stats(ctx)
				if err == nil {
					data.Stats = *s
				}
				return err
			})
			g.Go(func() error {
				c, err := client.RiskCounts(ctx)
				if err == nil {
					data.Risk = *c
				}
				return err
			})
			return dataMsg{view: view, epoch: epoch, payload: data, err: g.Wait()}
		}

	case nav.ViewSchools:
		epoch := m.pages.schools.StartLoad()
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			schools, err := client.Schools(ctx)
			return dataMsg{view: view, epoch: epoch, payload: schools, err: err}
		}

	case nav.ViewSchoolDetail:
		epoch := m.pages.schoolDetail.StartLoad()
		code := m.pages.selectedSchool
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			detail, err := client.SchoolDetail(ctx, code)
			var payload api.SchoolDetail
			if detail != nil {
				payload = *detail
			}
			return dataMsg{view: view, epoch: epoch, payload: payload, err: err}
		}

	case nav.ViewStudents:
		epoch := m.pages.students.StartLoad()
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			students, err := client.Students(ctx)
			return dataMsg{view: view, epoch: epoch, payload: students, err: err}
		}

	case nav.ViewMyStudents:
		epoch := m.pages.myStudents.StartLoad()
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			students, err := client.Students(ctx)
			return dataMsg{view: view, epoch: epoch, payload: students, err: err}
		}

	case nav.ViewAnalytics:
		epoch := m.pages.analytics.StartLoad()
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			var data analyticsData
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				a, err := client.AdminAnalytics(ctx)
				if err == nil {
					data.Analytics = *a
				}
				return err
			})
			g.Go(func() error {
				s, err := client.AttendanceStats(ctx)
				if err == nil {
					data.Attendance = *s
				}
				return err
			})
			return dataMsg{view: view, epoch: epoch, payload: data, err: g.Wait()}
		}

	case nav.ViewRiskMonitor:
		epoch := m.pages.risk.StartLoad()
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			var data riskData
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				students, err := client.RiskStudents(ctx)
				if err == nil {
					data.Students = students
				}
				return err
			})
			g.Go(func() error {
				counts, err := client.RiskCounts(ctx)
				if err == nil {
					data.Counts = *counts
				}
				return err
			})
			return dataMsg{view: view, epoch: epoch, payload: data, err: g.Wait()}
		}

	case nav.ViewTeacherDashboard:
		epoch := m.pages.teacherDash.StartLoad()
		email := sess.Email
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			var data teacherDashboardData
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				s, err := client.TeacherStats(ctx, email)
				if err == nil {
					data.Stats = *s
				}
				return err
			})
			g.Go(func() error {
				gs, err := client.TeacherGradingStats(ctx, email)
				if err == nil {
					data.Grading = *gs
				}
				return err
			})
			return dataMsg{view: view, epoch: epoch, payload: data, err: g.Wait()}
		}

	case nav.ViewTeacherCourses:
		epoch := m.pages.teacherCourses.StartLoad()
		email := sess.Email
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			courses, err := client.TeacherCourses(ctx, email)
			return dataMsg{view: view, epoch: epoch, payload: courses, err: err}
		}

	case nav.ViewAttendance:
		epoch := m.pages.attendance.StartLoad()
		email := sess.Email
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			courses, err := client.TeacherCourses(ctx, email)
			return dataMsg{view: view, epoch: epoch, payload: courses, err: err}
		}

	case nav.ViewCourseAttendance:
		epoch := m.pages.courseAttendance.StartLoad()
		code := m.pages.selectedCourse
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			records, err := client.CourseAttendance(ctx, code)
			return dataMsg{view: view, epoch: epoch, payload: records, err: err}
		}

	case nav.ViewGrading:
		epoch := m.pages.grading.StartLoad()
		email := sess.Email
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			var data gradingData
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				courses, err := client.TeacherCourses(ctx, email)
				if err == nil {
					data.Courses = courses
				}
				return err
			})
			g.Go(func() error {
				stats, err := client.TeacherGradingStats(ctx, email)
				if err == nil {
					data.Stats = *stats
				}
				return err
			})
			return dataMsg{view: view, epoch: epoch, payload: data, err: g.Wait()}
		}

	case nav.ViewAssignments:
		epoch := m.pages.assignments.StartLoad()
		code := m.pages.selectedCourse
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			assignments, err := client.CourseAssignments(ctx, code)
			return dataMsg{view: view, epoch: epoch, payload: assignments, err: err}
		}

	case nav.ViewSubmissions:
		epoch := m.pages.submissions.StartLoad()
		id := m.pages.selectedAssignment.ID
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			subs, err := client.AssignmentSubmissions(ctx, id)
			return dataMsg{view: view, epoch: epoch, payload: subs, err: err}
		}

	case nav.ViewAlerts:
		epoch := m.pages.alerts.StartLoad()
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			students, err := client.RiskStudents(ctx)
			return dataMsg{view: view, epoch: epoch, payload: students, err: err}
		}

	case nav.ViewStudentDashboard, nav.ViewStudentAttendance:
		epoch := m.pages.studentDash.StartLoad()
		studentID := sess.UserID
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			var data studentDashboardData
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				d, err := client.StudentDashboard(ctx)
				if err == nil {
					data.Dashboard = *d
				}
				return err
			})
			g.Go(func() error {
				courses, err := client.StudentCourses(ctx, studentID)
				if err == nil {
					data.Courses = courses
				}
				return err
			})
			return dataMsg{view: nav.ViewStudentDashboard, epoch: epoch, payload: data, err: g.Wait()}
		}

	case nav.ViewMyCourses:
		epoch := m.pages.myCourses.StartLoad()
		studentID := sess.UserID
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			courses, err := client.StudentCourses(ctx, studentID)
			return dataMsg{view: view, epoch: epoch, payload: courses, err: err}
		}

	case nav.ViewGrades:
		epoch := m.pages.grades.StartLoad()
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			grades, err := client.RecentGrades(ctx)
			return dataMsg{view: view, epoch: epoch, payload: grades, err: err}
		}

	case nav.ViewResources:
		epoch := m.pages.resources.StartLoad()
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			resources, err := client.Resources(ctx)
			return dataMsg{view: view, epoch: epoch, payload: resources, err: err}
		}

	case nav.ViewNotifications:
		epoch := m.pages.notifications.StartLoad()
		return func() tea.Msg {
			ctx, cancel := fetchCtx()
			defer cancel()
			notes, err := client.Notifications(ctx)
			return dataMsg{view: view, epoch: epoch, payload: notes, err: err}
		}
	}
	return nil
}

// applyData resolves a dataMsg into the matching page resource. Dashboards
// zero-fill on failure so the figures render as zeros rather than an error
// wall; list and detail pages keep the error for an explicit failed state.
func (m *Model) applyData(msg dataMsg) {
	if msg.err != nil {
		logging.Nav("load failed for view %d: %v", msg.view, msg.err)
	}

	switch msg.view {
	case nav.ViewAdminDashboard:
		m.pages.adminDash.Resolve(msg.epoch, zeroOnErr(msg, adminDashboardData{}), nil)
		m.noteLoadFailure(msg.err)
	case nav.ViewSchools:
		m.pages.schools.Resolve(msg.epoch, payloadOr(msg, []api.School(nil)), msg.err)
	case nav.ViewSchoolDetail:
		m.pages.schoolDetail.Resolve(msg.epoch, payloadOr(msg, api.SchoolDetail{}), msg.err)
	case nav.ViewStudents:
		m.pages.students.Resolve(msg.epoch, payloadOr(msg, []api.Student(nil)), msg.err)
	case nav.ViewMyStudents:
		m.pages.myStudents.Resolve(msg.epoch, payloadOr(msg, []api.Student(nil)), msg.err)
	case nav.ViewAnalytics:
		m.pages.analytics.Resolve(msg.epoch, zeroOnErr(msg, analyticsData{}), nil)
		m.noteLoadFailure(msg.err)
	case nav.ViewRiskMonitor:
		m.pages.risk.Resolve(msg.epoch, payloadOr(msg, riskData{}), msg.err)
	case nav.ViewTeacherDashboard:
		m.pages.teacherDash.Resolve(msg.epoch, zeroOnErr(msg, teacherDashboardData{}), nil)
		m.noteLoadFailure(msg.err)
	case nav.ViewTeacherCourses:
		m.pages.teacherCourses.Resolve(msg.epoch, payloadOr(msg, []api.TeacherCourse(nil)), msg.err)
	case nav.ViewAttendance:
		m.pages.attendance.Resolve(msg.epoch, payloadOr(msg, []api.TeacherCourse(nil)), msg.err)
	case nav.ViewCourseAttendance:
		m.pages.courseAttendance.Resolve(msg.epoch, payloadOr(msg, []api.AttendanceRecord(nil)), msg.err)
	case nav.ViewGrading:
		m.pages.grading.Resolve(msg.epoch, payloadOr(msg, gradingData{}), msg.err)
	case nav.ViewAssignments:
		m.pages.assignments.Resolve(msg.epoch, payloadOr(msg, []api.Assignment(nil)), msg.err)
	case nav.ViewSubmissions:
		m.pages.submissions.Resolve(msg.epoch, payloadOr(msg, []api.Submission(nil)), msg.err)
	case nav.ViewAlerts:
		m.pages.alerts.Resolve(msg.epoch, payloadOr(msg, []api.RiskStudent(nil)), msg.err)
	case nav.ViewStudentDashboard:
		m.pages.studentDash.Resolve(msg.epoch, zeroOnErr(msg, studentDashboardData{}), nil)
		m.noteLoadFailure(msg.err)
	case nav.ViewMyCourses:
		m.pages.myCourses.Resolve(msg.epoch, payloadOr(msg, []api.Course(nil)), msg.err)
	case nav.ViewGrades:
		m.pages.grades.Resolve(msg.epoch, payloadOr(msg, []api.Grade(nil)), msg.err)
	case nav.ViewResources:
		m.pages.resources.Resolve(msg.epoch, payloadOr(msg, []api.Resource(nil)), msg.err)
	case nav.ViewNotifications:
		m.pages.notifications.Resolve(msg.epoch, payloadOr(msg, []api.Notification(nil)), msg.err)
	}
}

// payloadOr type-asserts the payload, returning the fallback when the message
// carries an error (the payload may be partially filled or zero).
func payloadOr[T any](msg dataMsg, fallback T) T {
	if v, ok := msg.payload.(T); ok {
		return v
	}
	return fallback
}

// zeroOnErr returns the payload on success and the zero value on failure.
func zeroOnErr[T any](msg dataMsg, zero T) T {
	if msg.err != nil {
		return zero
	}
	return payloadOr(msg, zero)
}

func (m *Model) noteLoadFailure(err error) {
	if err != nil {
		m.status = "some figures could not be loaded: " + err.Error()
	}
}

// loginCmd runs the login call off the event loop.
func (m *Model) loginCmd(email, password string) tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		sess, err := sessions.Login(ctx, email, password)
		return loginResultMsg{sess: sess, err: err}
	}
}

// saveThemeCmd persists the theme preference.
func (m *Model) saveThemeCmd(name string) tea.Cmd {
	state := m.state
	return func() tea.Msg {
		if state == nil {
			return themeSavedMsg{}
		}
		return themeSavedMsg{err: state.Put(store.KeyTheme, name)}
	}
}

// askAssistantCmd sends a question to the assistant and renders the markdown
// reply.
func (m *Model) askAssistantCmd(question string) tea.Cmd {
	assistant := m.assistant
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		reply, err := assistant.Ask(ctx, question)
		if err != nil {
			return assistantMsg{err: err}
		}
		return assistantMsg{reply: renderMarkdown(reply)}
	}
}

// recognizeCmd runs the face recognizer for the AI attendance view.
func (m *Model) recognizeCmd() tea.Cmd {
	recognizer := m.recognizer
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		students, err := recognizer.Recognize(ctx, "classroom-latest.jpg")
		return recognizeMsg{students: students, err: err}
	}
}
