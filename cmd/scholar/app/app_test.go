package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"optischolar/cmd/scholar/config"
	"optischolar/internal/api"
	"optischolar/internal/inference"
	"optischolar/internal/nav"
	"optischolar/internal/session"
	"optischolar/internal/store"
)

func newTestModel(t *testing.T, handler http.Handler) Model {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	state, err := store.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("failed to open state store: %v", err)
	}
	t.Cleanup(func() { state.Close() })

	client := api.NewClient(srv.URL)
	return New(Deps{
		Config:     config.DefaultConfig(),
		Client:     client,
		Sessions:   session.NewStore(client, state),
		State:      state,
		Grader:     inference.DemoGrader{},
		Assistant:  inference.DemoAssistant{},
		Recognizer: inference.DemoRecognizer{},
	})
}

func asTeacher(m Model) Model {
	m.sess = &session.Session{
		UserID: "t1", Email: "priya@uohyd.ac.in", FullName: "Dr. Priya Sharma",
		Role: session.RoleTeacher,
	}
	m.activeKey = nav.DefaultKey(session.RoleTeacher)
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var keyEnter = tea.KeyMsg{Type: tea.KeyEnter}

func TestLoginSurfacesBackendDetail(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Invalid password"}`))
	}))

	m.login.email.SetValue("admin@uohyd.ac.in")
	m.login.password.SetValue("wrong")

	updated, cmd := m.Update(keyEnter)
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("enter should produce a login command")
	}

	updated, _ = m.Update(cmd())
	m = updated.(Model)

	if m.sess != nil {
		t.Fatal("rejected login must not create a session")
	}
	view := m.View()
	if !strings.Contains(view, "Invalid password") {
		t.Fatalf("login view missing backend detail:\n%s", view)
	}
	if !strings.Contains(view, "admin@uohyd.ac.in") {
		t.Fatal("entered email should survive a rejected login")
	}
}

func TestStaleLoadResultIsDiscarded(t *testing.T) {
	m := asTeacher(newTestModel(t, http.NotFoundHandler()))

	first := m.pages.grades.StartLoad()
	second := m.pages.grades.StartLoad()

	m.applyData(dataMsg{view: nav.ViewGrades, epoch: second, payload: []api.Grade{{ExamName: "fresh"}}})
	m.applyData(dataMsg{view: nav.ViewGrades, epoch: first, payload: []api.Grade{{ExamName: "stale"}}})

	grades := m.pages.grades.Value()
	if len(grades) != 1 || grades[0].ExamName != "fresh" {
		t.Fatalf("stale result overwrote fresh data: %+v", grades)
	}
}

func TestVerifyMovesSubmissionToApproved(t *testing.T) {
	verified := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/verify"):
			verified = true
			w.Write([]byte(`{"success": true, "message": "Submission verified successfully"}`))
		case strings.HasSuffix(r.URL.Path, "/submissions"):
			if verified {
				w.Write([]byte(`[{"id": "s1", "student_name": "Rahul Kumar", "student_reg": "21MCME02", "ai_score": 80, "teacher_verified": true, "teacher_score": 85, "status": "approved"}]`))
			} else {
				w.Write([]byte(`[{"id": "s1", "student_name": "Rahul Kumar", "student_reg": "21MCME02", "ai_score": 80, "status": "pending_review"}]`))
			}
		default:
			http.NotFound(w, r)
		}
	})

	m := asTeacher(newTestModel(t, handler))
	m.pages.selectedAssignment = api.Assignment{ID: "a1", Title: "Essay 1", MaxScore: 100}

	load := m.loadView(nav.ViewSubmissions)
	updated, _ := m.Update(load())
	m = updated.(Model)

	if !strings.Contains(m.renderSubmissions(), "pending_review") {
		t.Fatal("submission should start pending")
	}

	subs := m.pages.submissions.Value()
	form := newVerifyForm(subs[0], 100)
	m.form = form
	form.score.SetValue("85")

	cmd, _ := form.update(&m, keyEnter)
	if cmd == nil {
		t.Fatal("verify submit should produce a command")
	}
	updated, reload := m.Update(cmd())
	m = updated.(Model)
	if m.form != nil {
		t.Fatal("form should close after a successful verify")
	}
	if reload == nil {
		t.Fatal("successful verify should trigger a re-fetch")
	}
	updated, _ = m.Update(reload())
	m = updated.(Model)

	view := m.renderSubmissions()
	if !strings.Contains(view, "approved") {
		t.Fatalf("submission should be approved after verify:\n%s", view)
	}
	if !strings.Contains(view, "+5") {
		t.Fatalf("score correction should render as +5:\n%s", view)
	}
	if strings.Contains(view, "pending_review") {
		t.Fatal("verified submission must leave the pending state")
	}
}

func TestStudentEditFailureKeepsFormAndInput(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Semester out of range"}`))
	})
	m := newTestModel(t, handler)
	m.sess = &session.Session{UserID: "a1", Email: "admin@uohyd.ac.in", Role: session.RoleAdmin}
	m.activeKey = nav.DefaultKey(session.RoleAdmin)

	student := api.Student{ID: "st1", Name: "Ananya Reddy", Department: "CS", CurrentSemester: 5}
	form := newStudentEditForm(student)
	m.form = form
	form.semester.SetValue("11")

	cmd, _ := form.update(&m, keyEnter)
	if cmd == nil {
		t.Fatal("edit submit should produce a command")
	}
	updated, _ := m.Update(cmd())
	m = updated.(Model)

	if m.form == nil {
		t.Fatal("form must stay open after a failed write")
	}
	view := m.form.view(m.styles)
	if !strings.Contains(view, "Semester out of range") {
		t.Fatalf("form should show the backend error inline:\n%s", view)
	}
	if !strings.Contains(view, "Ananya Reddy") || !strings.Contains(view, "11") {
		t.Fatalf("entered values must survive the failure:\n%s", view)
	}
}

func TestLocalValidationBlocksSubmit(t *testing.T) {
	called := false
	m := asTeacher(newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	form := newVerifyForm(api.Submission{ID: "s1", AIScore: 80}, 100)
	m.form = form
	form.score.SetValue("120")

	cmd, _ := form.update(&m, keyEnter)
	if cmd != nil {
		t.Fatal("out-of-range score must not produce a command")
	}
	if called {
		t.Fatal("no request should reach the backend")
	}
	if !strings.Contains(form.view(m.styles), "between 0 and 100") {
		t.Fatal("form should explain the valid range")
	}
}

func TestLogoutDiscardsAllSessionState(t *testing.T) {
	m := asTeacher(newTestModel(t, http.NotFoundHandler()))
	epoch := m.pages.grades.StartLoad()
	m.applyData(dataMsg{view: nav.ViewGrades, epoch: epoch, payload: []api.Grade{{ExamName: "Midterm"}}})
	m.stack = append(m.stack, crumb{view: nav.ViewSubmissions, title: "Essay 1"})
	m.status = "leftover"

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = updated.(Model)

	if m.sess != nil {
		t.Fatal("logout must drop the session")
	}
	if len(m.stack) != 0 {
		t.Fatal("logout must clear the drill stack")
	}
	if len(m.pages.grades.Value()) != 0 {
		t.Fatal("logout must discard cached page data")
	}
	if m.status != "" {
		t.Fatal("logout must clear the status line")
	}
	if !strings.Contains(m.View(), "OptiScholar") {
		t.Fatal("logout should land on the login screen")
	}
}

func TestThemeTogglePersists(t *testing.T) {
	m := asTeacher(newTestModel(t, http.NotFoundHandler()))
	if !m.styles.Theme.IsDark {
		t.Fatal("default theme should be dark")
	}

	updated, cmd := m.Update(keyRune('t'))
	m = updated.(Model)
	if m.styles.Theme.IsDark {
		t.Fatal("toggle should switch to light")
	}
	if cmd == nil {
		t.Fatal("toggle should persist the preference")
	}
	m.Update(cmd())

	var saved string
	if err := m.state.Get(store.KeyTheme, &saved); err != nil {
		t.Fatalf("theme not persisted: %v", err)
	}
	if saved != "light" {
		t.Fatalf("persisted theme = %q, want light", saved)
	}
}

func TestUnboundSidebarKeyRendersPlaceholder(t *testing.T) {
	m := newTestModel(t, http.NotFoundHandler())
	m.sess = &session.Session{UserID: "a1", Email: "admin@uohyd.ac.in", Role: session.RoleAdmin}
	m.activeKey = "teachers"

	out := m.renderView(nav.Resolve(session.RoleAdmin, "teachers"))
	if !strings.Contains(out, "Teachers") {
		t.Fatalf("placeholder should carry the entry title:\n%s", out)
	}
}

func TestDashboardZeroFillsOnFailure(t *testing.T) {
	m := asTeacher(newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})))

	load := m.loadView(nav.ViewTeacherDashboard)
	updated, _ := m.Update(load())
	m = updated.(Model)

	view := m.renderTeacherDashboard()
	if !strings.Contains(view, "0.0%") {
		t.Fatalf("failed dashboard should render zeroed figures:\n%s", view)
	}
	if m.status == "" {
		t.Fatal("partial failure should surface on the status line")
	}
}

func TestDrillDownKeepsParentDataCached(t *testing.T) {
	calls := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/schools":
			calls++
			w.Write([]byte(`[{"id": "s1", "name": "School of CS", "code": "SCIS", "department_count": 3, "course_count": 12}]`))
		case "/data/schools/SCIS":
			w.Write([]byte(`{"name": "School of CS", "code": "SCIS", "director": "Prof. Rao", "students_by_semester": {}}`))
		default:
			http.NotFound(w, r)
		}
	})
	m := newTestModel(t, handler)
	m.sess = &session.Session{UserID: "a1", Email: "admin@uohyd.ac.in", Role: session.RoleAdmin}
	m.activeKey = "schools"
	m.focus = FocusContent

	load := m.loadView(nav.ViewSchools)
	updated, _ := m.Update(load())
	m = updated.(Model)

	updated, cmd := m.Update(keyEnter)
	m = updated.(Model)
	if len(m.stack) != 1 || m.currentView() != nav.ViewSchoolDetail {
		t.Fatal("enter on a school should drill into the detail view")
	}
	updated, _ = m.Update(cmd())
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.currentView() != nav.ViewSchools {
		t.Fatal("esc should pop back to the school list")
	}
	if calls != 1 {
		t.Fatalf("popping back must not re-fetch the parent list, got %d calls", calls)
	}
	if len(m.pages.schools.Value()) != 1 {
		t.Fatal("parent list data should still be cached")
	}
}
