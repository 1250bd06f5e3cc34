package api

// Data transfer types mirroring the backend's JSON payloads. The frontend
// never owns these records; they pass through the view layer untouched and
// all display aggregation happens in internal/derive.

// User is the identity record returned by the login endpoint. Role-specific
// profile fields are flattened into the same object by the backend.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`

	// Student profile
	RegistrationNumber string `json:"registration_number,omitempty"`
	Program            string `json:"program,omitempty"`
	Semester           int    `json:"semester,omitempty"`

	// Teacher profile
	EmployeeID  string `json:"employee_id,omitempty"`
	Designation string `json:"designation,omitempty"`

	// Shared
	SchoolID   string `json:"school_id,omitempty"`
	Department string `json:"department,omitempty"`
}

// LoginResponse is the envelope of POST /auth/demo-login.
type LoginResponse struct {
	Success bool   `json:"success"`
	User    User   `json:"user"`
	Message string `json:"message"`
}

// Stats are the system-wide dashboard counters (GET /data/stats).
type Stats struct {
	TotalStudents    int     `json:"total_students"`
	TotalSubmissions int     `json:"total_submissions"`
	AutoApprovedRate float64 `json:"auto_approved_rate"`
	PendingReview    int     `json:"pending_review"`
	AvgConfidence    float64 `json:"avg_confidence"`
}

// StudentDashboard are the per-student counters (GET /data/student/dashboard).
type StudentDashboard struct {
	TotalRecords   int     `json:"total_records"`
	PresentCount   int     `json:"present_count"`
	AbsentCount    int     `json:"absent_count"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// School is a directory entry (GET /data/schools).
type School struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Code            string `json:"code"`
	Description     string `json:"description,omitempty"`
	HeadOfSchool    string `json:"head_of_school,omitempty"`
	DepartmentCount int    `json:"department_count"`
	CourseCount     int    `json:"course_count"`
}

// SchoolStudent is a roster row inside a school detail payload.
type SchoolStudent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Reg    string `json:"reg"`
	Course string `json:"course"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
}

// SchoolDetail is the drill-down payload (GET /data/schools/{code}), with
// students grouped by semester label ("Semester 1", ...).
type SchoolDetail struct {
	Name               string                     `json:"name"`
	Code               string                     `json:"code"`
	Director           string                     `json:"director"`
	Description        string                     `json:"description,omitempty"`
	StudentsBySemester map[string][]SchoolStudent `json:"students_by_semester"`
}

// Student is a roster entry (GET /data/students).
type Student struct {
	ID                 string `json:"id"`
	RegistrationNumber string `json:"registration_number"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Department         string `json:"department"`
	CurrentSemester    int    `json:"current_semester"`
}

// StudentUpdate is the editable subset sent via PUT /data/students/{id}.
// Zero-valued fields are omitted so partial edits stay partial.
type StudentUpdate struct {
	Name            string `json:"name,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Department      string `json:"department,omitempty"`
	CurrentSemester int    `json:"current_semester,omitempty"`
}

// MutationResult is the generic write acknowledgement envelope.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Course is a catalog entry (GET /data/courses, /data/student/{id}/courses).
type Course struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Credits  int    `json:"credits"`
	Semester int    `json:"semester"`
}

// TeacherCourse is a row of GET /data/teacher/courses.
type TeacherCourse struct {
	CourseID      string `json:"course_id"`
	CourseCode    string `json:"course_code"`
	CourseName    string `json:"course_name"`
	SchoolCode    string `json:"school_code"`
	Semester      int    `json:"semester"`
	TotalStudents int    `json:"total_students"`
	Credits       int    `json:"credits"`
}

// TeacherStats are the teacher dashboard counters (GET /data/teacher/stats).
type TeacherStats struct {
	TotalStudents  int     `json:"total_students"`
	TotalCourses   int     `json:"total_courses"`
	AvgAttendance  float64 `json:"avg_attendance"`
	AtRiskStudents int     `json:"at_risk_students"`
}

// GradingStats summarize a teacher's grading queue
// (GET /data/teacher/grading-stats).
type GradingStats struct {
	TotalSubmissions int     `json:"total_submissions"`
	PendingReview    int     `json:"pending_review"`
	Approved         int     `json:"approved"`
	AIAccuracy       float64 `json:"ai_accuracy"`
}

// AttendanceStats are the aggregate attendance counters
// (GET /data/attendance/stats).
type AttendanceStats struct {
	AverageAttendance   float64                     `json:"average_attendance"`
	TotalStudents       int                         `json:"total_students"`
	ExcellentAttendance int                         `json:"excellent_attendance"`
	GoodAttendance      int                         `json:"good_attendance"`
	PoorAttendance      int                         `json:"poor_attendance"`
	BySchool            map[string]SchoolAttendance `json:"by_school,omitempty"`
}

// SchoolAttendance is the per-school slice of AttendanceStats.
type SchoolAttendance struct {
	Count   int     `json:"count"`
	AvgRate float64 `json:"avg_rate"`
}

// AttendanceRecord is one student's attendance in one course
// (GET /data/course/{code}/attendance).
type AttendanceRecord struct {
	ID             string  `json:"id"`
	StudentID      string  `json:"student_id"`
	StudentName    string  `json:"student_name"`
	StudentReg     string  `json:"student_reg"`
	TotalClasses   int     `json:"total_classes"`
	Attended       int     `json:"attended"`
	AttendanceRate float64 `json:"attendance_rate"`
	LastUpdated    string  `json:"last_updated"`
}

// RiskStudent is a row of the risk monitor feed (GET /data/risk-students).
type RiskStudent struct {
	ID                 string   `json:"id"`
	StudentID          string   `json:"student_id"`
	StudentName        string   `json:"student_name"`
	StudentReg         string   `json:"student_reg"`
	SchoolCode         string   `json:"school_code"`
	Department         string   `json:"department"`
	RiskLevel          string   `json:"risk_level"`
	Probability        float64  `json:"probability"`
	AttendanceRate     float64  `json:"attendance_rate"`
	GradeAverage       float64  `json:"grade_average"`
	Factors            []string `json:"factors"`
	RecommendedActions []string `json:"recommended_actions"`
	AssessedAt         string   `json:"assessed_at"`
}

// RiskCounts bucket students by severity (GET /data/risk-counts).
type RiskCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Assignment is a row of GET /data/course/{code}/assignments.
type Assignment struct {
	ID              string `json:"id"`
	Title           string `json:"assignment_title"`
	Description     string `json:"description"`
	MaxScore        int    `json:"max_score"`
	DueDate         string `json:"due_date"`
	SubmissionCount int    `json:"submission_count"`
	PendingReview   int    `json:"pending_review"`
}

// Submission statuses as the backend reports them.
const (
	SubmissionPending       = "pending_review"
	SubmissionApproved      = "approved"
	SubmissionNeedsRevision = "needs_revision"
)

// Submission is a row of GET /data/assignment/{id}/submissions.
type Submission struct {
	ID              string `json:"id"`
	StudentID       string `json:"student_id"`
	StudentName     string `json:"student_name"`
	StudentReg      string `json:"student_reg"`
	SubmissionText  string `json:"submission_text"`
	FileName        string `json:"file_name"`
	SubmittedAt     string `json:"submitted_at"`
	AIScore         int    `json:"ai_score"`
	AIFeedback      string `json:"ai_feedback"`
	AIReasoning     string `json:"ai_reasoning"`
	TeacherVerified bool   `json:"teacher_verified"`
	TeacherScore    int    `json:"teacher_score"`
	TeacherFeedback string `json:"teacher_feedback"`
	Status          string `json:"status"`
}

// SubmitRequest is the body of POST /grading/submit.
type SubmitRequest struct {
	AssignmentID   string `json:"assignment_id"`
	StudentID      string `json:"student_id"`
	StudentName    string `json:"student_name"`
	StudentReg     string `json:"student_reg"`
	CourseCode     string `json:"course_code"`
	SubmissionText string `json:"submission_text"`
	FileName       string `json:"file_name"`
}

// SubmitResult is the acknowledgement of POST /grading/submit, carrying the
// AI-assigned score and feedback.
type SubmitResult struct {
	SubmissionID string `json:"submission_id"`
	AIScore      int    `json:"ai_score"`
	AIFeedback   string `json:"ai_feedback"`
	Status       string `json:"status"`
}

// Grade is a recent grade row (GET /data/grades/recent).
type Grade struct {
	ID          string  `json:"id"`
	StudentName string  `json:"student_name"`
	StudentReg  string  `json:"student_reg"`
	ExamName    string  `json:"exam_name"`
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"max_score"`
	Confidence  float64 `json:"confidence"`
	Status      string  `json:"status"`
}

// Resource is a study material entry (GET /data/resources).
type Resource struct {
	Title           string  `json:"title"`
	Type            string  `json:"type"`
	URL             string  `json:"url"`
	Difficulty      string  `json:"difficulty"`
	RelevanceScore  float64 `json:"relevance_score"`
	DurationMinutes int     `json:"duration_minutes,omitempty"`
	QuestionCount   int     `json:"question_count,omitempty"`
}

// Notification is an announcement row (GET /data/notifications and the body
// of POST /data/notifications).
type Notification struct {
	ID         string `json:"id,omitempty"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	CourseCode string `json:"course_code,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// AdminAnalytics is the admin analytics payload (GET /data/admin/analytics).
type AdminAnalytics struct {
	EnrollmentTrend        []int          `json:"enrollment_trend"`
	PassRateTrend          []int          `json:"pass_rate_trend"`
	DepartmentDistribution map[string]int `json:"department_distribution"`
	SystemHealth           string         `json:"system_health"`
	ActiveUsersNow         int            `json:"active_users_now"`
}
