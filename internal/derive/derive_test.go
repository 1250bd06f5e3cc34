package derive

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"optischolar/internal/api"
)

func TestRateEmptyWholeIsZero(t *testing.T) {
	if got := Rate(0, 0); got != 0 {
		t.Fatalf("Rate(0, 0) = %v, want 0", got)
	}
	if got := FormatRate(Rate(0, 0)); got != "0.0%" {
		t.Fatalf("FormatRate = %q, want %q", got, "0.0%")
	}
}

func TestRate(t *testing.T) {
	if got := Rate(18, 24); got != 75 {
		t.Fatalf("Rate(18, 24) = %v, want 75", got)
	}
	if got := FormatRate(Rate(7, 8)); got != "87.5%" {
		t.Fatalf("FormatRate = %q, want %q", got, "87.5%")
	}
}

func TestAverage(t *testing.T) {
	if got := Average(nil); got != 0 {
		t.Fatalf("Average(nil) = %v, want 0", got)
	}
	if got := Average([]float64{80, 90, 100}); got != 90 {
		t.Fatalf("Average = %v, want 90", got)
	}
}

func TestGroupBySemesterOrdersNumerically(t *testing.T) {
	in := map[string][]api.SchoolStudent{
		"Semester 10": {{Name: "J"}},
		"Semester 2":  {{Name: "B"}},
		"Semester 1":  {{Name: "A"}, {Name: "AA"}},
		"Unassigned":  {{Name: "Z"}},
	}

	groups := GroupBySemester(in)
	var labels []string
	for _, g := range groups {
		labels = append(labels, g.Label)
	}
	want := []string{"Semester 1", "Semester 2", "Semester 10", "Unassigned"}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("group order mismatch (-want +got):\n%s", diff)
	}
	if len(groups[0].Students) != 2 {
		t.Fatalf("expected 2 students in first group, got %d", len(groups[0].Students))
	}
}

func TestCountRiskLevels(t *testing.T) {
	students := []api.RiskStudent{
		{RiskLevel: "critical"},
		{RiskLevel: "high"},
		{RiskLevel: "high"},
		{RiskLevel: "medium"},
		{RiskLevel: "low"},
		{RiskLevel: "bogus"},
	}
	got := CountRiskLevels(students)
	want := api.RiskCounts{Critical: 1, High: 2, Medium: 1, Low: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("risk counts mismatch (-want +got):\n%s", diff)
	}
}

func TestScoreDiffSign(t *testing.T) {
	if got := ScoreDiff(85, 80); got != "+5" {
		t.Fatalf("ScoreDiff(85, 80) = %q, want +5", got)
	}
	if got := ScoreDiff(70, 80); got != "-10" {
		t.Fatalf("ScoreDiff(70, 80) = %q, want -10", got)
	}
	if got := ScoreDiff(80, 80); got != "0" {
		t.Fatalf("ScoreDiff(80, 80) = %q, want 0", got)
	}
}

func TestAIAccuracy(t *testing.T) {
	subs := []api.Submission{
		{TeacherVerified: true, AIScore: 80, TeacherScore: 85},
		{TeacherVerified: true, AIScore: 90, TeacherScore: 90},
		{TeacherVerified: false, AIScore: 10, TeacherScore: 0},
	}
	if got := AIAccuracy(subs); got != 97.5 {
		t.Fatalf("AIAccuracy = %v, want 97.5", got)
	}
	if got := AIAccuracy(nil); got != 0 {
		t.Fatalf("AIAccuracy(nil) = %v, want 0", got)
	}
}

func TestDerivedAggregatesAreDeterministic(t *testing.T) {
	in := map[string][]api.SchoolStudent{
		"Semester 3": {{Name: "C"}},
		"Semester 1": {{Name: "A"}},
	}
	first := GroupBySemester(in)
	second := GroupBySemester(in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("same payload produced different aggregates (-first +second):\n%s", diff)
	}
}

func TestAttendanceBand(t *testing.T) {
	cases := []struct {
		rate float64
		want string
	}{
		{92, "excellent"},
		{85, "excellent"},
		{80, "good"},
		{75, "good"},
		{60, "poor"},
		{0, "poor"},
	}
	for _, c := range cases {
		if got := AttendanceBand(c.rate); got != c.want {
			t.Fatalf("AttendanceBand(%v) = %q, want %q", c.rate, got, c.want)
		}
	}
}
