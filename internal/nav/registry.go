// Package nav defines the role-scoped view registry. The sidebar asks for the
// groups of the active role; the shell asks Resolve to map a (role, key) pair
// to a view. Unbound keys resolve to a placeholder so menu changes can never
// strand the user on a blank screen.
package nav

import "optischolar/internal/session"

// ViewID identifies a renderable view in the shell.
type ViewID int

const (
	ViewPlaceholder ViewID = iota

	// Admin
	ViewAdminDashboard
	ViewSchools
	ViewTeachers
	ViewStudents
	ViewAnalytics
	ViewRiskMonitor

	// Teacher
	ViewTeacherDashboard
	ViewTeacherCourses
	ViewAttendance
	ViewFaceAttendance
	ViewMyStudents
	ViewGrading
	ViewAlerts

	// Student
	ViewStudentDashboard
	ViewMyCourses
	ViewGrades
	ViewStudentAttendance
	ViewResources
	ViewAIAssistant

	// Shared
	ViewNotifications

	// Drill-down views, reachable from their parent lists rather than the
	// sidebar.
	ViewSchoolDetail
	ViewCourseAttendance
	ViewAssignments
	ViewSubmissions
)

// Item is one sidebar entry.
type Item struct {
	Key   string
	Title string
	View  ViewID
}

// Group is a titled run of sidebar entries.
type Group struct {
	Title string
	Items []Item
}

var adminGroups = []Group{
	{Title: "Admin", Items: []Item{
		{Key: "dashboard", Title: "Dashboard", View: ViewAdminDashboard},
		{Key: "schools", Title: "Schools", View: ViewSchools},
		{Key: "teachers", Title: "Teachers", View: ViewTeachers},
		{Key: "students", Title: "Students", View: ViewStudents},
	}},
	{Title: "Analytics", Items: []Item{
		{Key: "analytics", Title: "Analytics", View: ViewAnalytics},
		{Key: "risk", Title: "Risk Monitor", View: ViewRiskMonitor},
	}},
}

var teacherGroups = []Group{
	{Title: "Teaching", Items: []Item{
		{Key: "dashboard", Title: "Dashboard", View: ViewTeacherDashboard},
		{Key: "courses", Title: "My Courses", View: ViewTeacherCourses},
		{Key: "attendance", Title: "Attendance", View: ViewAttendance},
		{Key: "face-attendance", Title: "AI Attendance", View: ViewFaceAttendance},
	}},
	{Title: "Students", Items: []Item{
		{Key: "my-students", Title: "My Students", View: ViewMyStudents},
		{Key: "grading", Title: "Grading", View: ViewGrading},
		{Key: "alerts", Title: "Alerts", View: ViewAlerts},
	}},
	{Title: "Communication", Items: []Item{
		{Key: "notifications", Title: "Notifications", View: ViewNotifications},
		{Key: "resources", Title: "Resources", View: ViewResources},
	}},
}

var studentGroups = []Group{
	{Title: "Learning", Items: []Item{
		{Key: "dashboard", Title: "Dashboard", View: ViewStudentDashboard},
		{Key: "my-courses", Title: "My Courses", View: ViewMyCourses},
		{Key: "grades", Title: "Grades", View: ViewGrades},
		{Key: "attendance", Title: "Attendance", View: ViewStudentAttendance},
	}},
	{Title: "Resources", Items: []Item{
		{Key: "resources", Title: "Resources", View: ViewResources},
		{Key: "ai-assistant", Title: "AI Assistant", View: ViewAIAssistant},
	}},
	{Title: "Updates", Items: []Item{
		{Key: "notifications", Title: "Notifications", View: ViewNotifications},
	}},
}

// GroupsFor returns the sidebar groups of a role, in display order. Unknown
// roles get an empty sidebar rather than another role's views.
func GroupsFor(role string) []Group {
	switch role {
	case session.RoleAdmin:
		return adminGroups
	case session.RoleTeacher:
		return teacherGroups
	case session.RoleStudent:
		return studentGroups
	default:
		return nil
	}
}

// Resolve maps a (role, key) pair to its view. Keys with no binding for the
// role resolve to ViewPlaceholder; Resolve never fails.
func Resolve(role, key string) ViewID {
	for _, g := range GroupsFor(role) {
		for _, item := range g.Items {
			if item.Key == key {
				return item.View
			}
		}
	}
	return ViewPlaceholder
}

// DefaultKey is the sidebar key each role lands on after login.
func DefaultKey(role string) string {
	groups := GroupsFor(role)
	if len(groups) == 0 || len(groups[0].Items) == 0 {
		return ""
	}
	return groups[0].Items[0].Key
}

// TitleFor returns the display title of a key for a role, falling back to the
// key itself for unbound entries.
func TitleFor(role, key string) string {
	for _, g := range GroupsFor(role) {
		for _, item := range g.Items {
			if item.Key == key {
				return item.Title
			}
		}
	}
	return key
}
