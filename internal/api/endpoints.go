package api

import (
	"context"
	"fmt"
	"net/url"
)

// Typed wrappers over Call for every backend endpoint the views use.

// Login authenticates against the demo login endpoint.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp LoginResponse
	if err := c.Post(ctx, "/auth/demo-login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats fetches the system-wide dashboard counters.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.Get(ctx, "/data/stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// StudentDashboard fetches a student's personal counters.
func (c *Client) StudentDashboard(ctx context.Context) (*StudentDashboard, error) {
	var s StudentDashboard
	if err := c.Get(ctx, "/data/student/dashboard", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Schools fetches the school directory.
func (c *Client) Schools(ctx context.Context) ([]School, error) {
	var out []School
	if err := c.Get(ctx, "/data/schools", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SchoolDetail fetches the drill-down payload for one school.
func (c *Client) SchoolDetail(ctx context.Context, code string) (*SchoolDetail, error) {
	var out SchoolDetail
	if err := c.Get(ctx, "/data/schools/"+url.PathEscape(code), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Students fetches the roster.
func (c *Client) Students(ctx context.Context) ([]Student, error) {
	var out []Student
	if err := c.Get(ctx, "/data/students", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStudent edits a student record.
func (c *Client) UpdateStudent(ctx context.Context, id string, upd StudentUpdate) (*MutationResult, error) {
	var out MutationResult
	if err := c.Put(ctx, "/data/students/"+url.PathEscape(id), upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Courses fetches the general course catalog.
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	var out []Course
	if err := c.Get(ctx, "/data/courses", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StudentCourses fetches a student's enrolled courses.
func (c *Client) StudentCourses(ctx context.Context, studentID string) ([]Course, error) {
	var out []Course
	if err := c.Get(ctx, "/data/student/"+url.PathEscape(studentID)+"/courses", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TeacherCourses fetches the courses taught by a teacher.
func (c *Client) TeacherCourses(ctx context.Context, teacherEmail string) ([]TeacherCourse, error) {
	var out []TeacherCourse
	endpoint := "/data/teacher/courses?teacher_email=" + url.QueryEscape(teacherEmail)
	if err := c.Get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TeacherStats fetches the teacher dashboard counters.
func (c *Client) TeacherStats(ctx context.Context, teacherEmail string) (*TeacherStats, error) {
	var out TeacherStats
	endpoint := "/data/teacher/stats?teacher_email=" + url.QueryEscape(teacherEmail)
	if err := c.Get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TeacherGradingStats fetches the grading queue counters.
func (c *Client) TeacherGradingStats(ctx context.Context, teacherEmail string) (*GradingStats, error) {
	var out GradingStats
	endpoint := "/data/teacher/grading-stats?teacher_email=" + url.QueryEscape(teacherEmail)
	if err := c.Get(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AttendanceStats fetches the aggregate attendance counters.
func (c *Client) AttendanceStats(ctx context.Context) (*AttendanceStats, error) {
	var out AttendanceStats
	if err := c.Get(ctx, "/data/attendance/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CourseAttendance fetches per-student attendance for one course.
func (c *Client) CourseAttendance(ctx context.Context, courseCode string) ([]AttendanceRecord, error) {
	var out []AttendanceRecord
	if err := c.Get(ctx, "/data/course/"+url.PathEscape(courseCode)+"/attendance", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateAttendance sets the attended count on one attendance record.
func (c *Client) UpdateAttendance(ctx context.Context, attendanceID string, attended int) (*MutationResult, error) {
	var out MutationResult
	endpoint := fmt.Sprintf("/data/attendance/%s?attended=%d", url.PathEscape(attendanceID), attended)
	if err := c.Put(ctx, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RiskStudents fetches the at-risk student feed.
func (c *Client) RiskStudents(ctx context.Context) ([]RiskStudent, error) {
	var out []RiskStudent
	if err := c.Get(ctx, "/data/risk-students", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RiskCounts fetches the per-severity bucket counts.
func (c *Client) RiskCounts(ctx context.Context) (*RiskCounts, error) {
	var out RiskCounts
	if err := c.Get(ctx, "/data/risk-counts", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CourseAssignments fetches the assignments of one course.
func (c *Client) CourseAssignments(ctx context.Context, courseCode string) ([]Assignment, error) {
	var out []Assignment
	if err := c.Get(ctx, "/data/course/"+url.PathEscape(courseCode)+"/assignments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssignmentSubmissions fetches the submissions of one assignment.
func (c *Client) AssignmentSubmissions(ctx context.Context, assignmentID string) ([]Submission, error) {
	var out []Submission
	if err := c.Get(ctx, "/data/assignment/"+url.PathEscape(assignmentID)+"/submissions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VerifySubmission records a teacher's verification of an AI-graded
// submission. approved=false sends it back for revision.
func (c *Client) VerifySubmission(ctx context.Context, submissionID string, teacherScore int, teacherFeedback string, approved bool) (*MutationResult, error) {
	body := map[string]interface{}{
		"teacher_score":    teacherScore,
		"teacher_feedback": teacherFeedback,
		"approved":         approved,
	}
	var out MutationResult
	if err := c.Put(ctx, "/data/submission/"+url.PathEscape(submissionID)+"/verify", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitAssignment submits a student's raw text answer for AI grading.
func (c *Client) SubmitAssignment(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	var out SubmitResult
	if err := c.Post(ctx, "/grading/submit", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentGrades fetches the most recent grade rows.
func (c *Client) RecentGrades(ctx context.Context) ([]Grade, error) {
	var out []Grade
	if err := c.Get(ctx, "/data/grades/recent", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Resources fetches the study material listing.
func (c *Client) Resources(ctx context.Context) ([]Resource, error) {
	var out []Resource
	if err := c.Get(ctx, "/data/resources", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Notifications fetches announcements for the current user.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := c.Get(ctx, "/data/notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendNotification publishes an announcement to enrolled students.
func (c *Client) SendNotification(ctx context.Context, n Notification) (*MutationResult, error) {
	var out MutationResult
	if err := c.Post(ctx, "/data/notifications", n, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminAnalytics fetches the admin analytics payload.
func (c *Client) AdminAnalytics(ctx context.Context) (*AdminAnalytics, error) {
	var out AdminAnalytics
	if err := c.Get(ctx, "/data/admin/analytics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
