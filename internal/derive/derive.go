// Package derive holds the pure aggregation helpers used to turn raw backend
// payloads into display numbers. Nothing here performs IO; every function is
// deterministic over its inputs so the same payload always renders the same
// figures.
package derive

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"optischolar/internal/api"
)

// Rate computes a percentage from a part/whole pair. An empty whole yields 0,
// never NaN, so a student with no recorded classes shows 0.0% attendance.
func Rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// FormatRate renders a percentage with one decimal, e.g. "87.5%".
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// Average computes the arithmetic mean of values, 0 for an empty slice.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SemesterGroup is one semester's students, ordered for display.
type SemesterGroup struct {
	Label    string
	Students []api.SchoolStudent
}

// GroupBySemester orders the semester map of a school detail payload by
// semester number. Labels are the backend's own ("Semester 1", ...); unknown
// labels sort after the numbered ones, alphabetically.
func GroupBySemester(bySemester map[string][]api.SchoolStudent) []SemesterGroup {
	groups := make([]SemesterGroup, 0, len(bySemester))
	for label, students := range bySemester {
		groups = append(groups, SemesterGroup{Label: label, Students: students})
	}
	sort.Slice(groups, func(i, j int) bool {
		ni, iok := semesterNumber(groups[i].Label)
		nj, jok := semesterNumber(groups[j].Label)
		if iok != jok {
			return iok
		}
		if iok && jok && ni != nj {
			return ni < nj
		}
		return groups[i].Label < groups[j].Label
	})
	return groups
}

func semesterNumber(label string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(strings.TrimSpace(label), "Semester %d", &n); err != nil {
		return 0, false
	}
	return n, true
}

// CountRiskLevels buckets the risk feed by severity.
func CountRiskLevels(students []api.RiskStudent) api.RiskCounts {
	var counts api.RiskCounts
	for _, s := range students {
		switch s.RiskLevel {
		case "critical":
			counts.Critical++
		case "high":
			counts.High++
		case "medium":
			counts.Medium++
		case "low":
			counts.Low++
		}
	}
	return counts
}

// ScoreDiff is the teacher's correction relative to the AI score, formatted
// with an explicit sign ("+5", "-3", "0").
func ScoreDiff(teacherScore, aiScore int) string {
	diff := teacherScore - aiScore
	if diff > 0 {
		return fmt.Sprintf("+%d", diff)
	}
	return fmt.Sprintf("%d", diff)
}

// AIAccuracy is the mean closeness of AI scores to teacher scores over the
// verified submissions, on a 0..100 scale. No verified submissions yields 0.
func AIAccuracy(submissions []api.Submission) float64 {
	var sum float64
	var n int
	for _, s := range submissions {
		if !s.TeacherVerified {
			continue
		}
		sum += 100 - math.Abs(float64(s.AIScore)-float64(s.TeacherScore))
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// PendingCount counts submissions still awaiting teacher review.
func PendingCount(submissions []api.Submission) int {
	var n int
	for _, s := range submissions {
		if s.Status == api.SubmissionPending {
			n++
		}
	}
	return n
}

// AttendanceBand labels a rate for the attendance overview: "excellent"
// (>= 85), "good" (>= 75), or "poor".
func AttendanceBand(rate float64) string {
	switch {
	case rate >= 85:
		return "excellent"
	case rate >= 75:
		return "good"
	default:
		return "poor"
	}
}
