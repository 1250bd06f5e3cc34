// Package inference defines the pluggable AI collaborators used by the
// grading and assistant views. Each collaborator is an interface with a demo
// implementation that works offline and a Gemini-backed implementation for
// real deployments. The shell never cares which one it holds.
package inference

import (
	"context"
	"fmt"
	"strings"
)

// ValidationError reports a request rejected before any model call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// GradeRequest is one submission to score.
type GradeRequest struct {
	AssignmentTitle string
	Description     string
	MaxScore        int
	SubmissionText  string
}

// Validate rejects requests that cannot be graded. Only text submissions are
// supported; binary payloads must be rejected before any network call.
func (r GradeRequest) Validate() error {
	if strings.TrimSpace(r.SubmissionText) == "" {
		return &ValidationError{Field: "submission_text", Message: "submission is empty"}
	}
	if !isPlainText(r.SubmissionText) {
		return &ValidationError{Field: "submission_text", Message: "submission is not plain text"}
	}
	if r.MaxScore <= 0 {
		return &ValidationError{Field: "max_score", Message: "max score must be positive"}
	}
	return nil
}

func isPlainText(s string) bool {
	for _, r := range s {
		if r == 0xFFFD || (r < 0x20 && r != '\n' && r != '\r' && r != '\t') {
			return false
		}
	}
	return true
}

// GradeResult is a model's assessment of one submission.
type GradeResult struct {
	Score     int
	Feedback  string
	Reasoning string
}

// Grader scores assignment submissions.
type Grader interface {
	Grade(ctx context.Context, req GradeRequest) (GradeResult, error)
}

// Assistant answers free-form study questions for the student assistant view.
// Replies are markdown.
type Assistant interface {
	Ask(ctx context.Context, question string) (string, error)
}

// RecognizedStudent is one face-match result from a classroom photo.
type RecognizedStudent struct {
	StudentID  string
	Name       string
	Reg        string
	Confidence float64
}

// Recognizer identifies students for the AI attendance view.
type Recognizer interface {
	Recognize(ctx context.Context, imageName string) ([]RecognizedStudent, error)
}
