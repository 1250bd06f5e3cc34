package inference

import (
	"strconv"
	"strings"
)

// parseGradeResponse extracts SCORE, FEEDBACK and REASONING lines from a
// model reply. The prompt instructs the model to answer in exactly that
// shape, but replies drift, so parsing is line-oriented and tolerant:
// missing feedback gets a generic line, a missing or unreadable score
// becomes half marks, and any score is clamped to [0, maxScore].
func parseGradeResponse(text string, maxScore int) GradeResult {
	result := GradeResult{
		Score:    maxScore / 2,
		Feedback: "Submission received and evaluated.",
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(upper, "SCORE:"):
			raw := strings.TrimSpace(line[len("SCORE:"):])
			// Models sometimes answer "85/100" or "85 points".
			if i := strings.IndexAny(raw, "/ "); i > 0 {
				raw = raw[:i]
			}
			if n, err := strconv.Atoi(raw); err == nil {
				result.Score = n
			}
		case strings.HasPrefix(upper, "FEEDBACK:"):
			if v := strings.TrimSpace(line[len("FEEDBACK:"):]); v != "" {
				result.Feedback = v
			}
		case strings.HasPrefix(upper, "REASONING:"):
			result.Reasoning = strings.TrimSpace(line[len("REASONING:"):])
		}
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > maxScore {
		result.Score = maxScore
	}
	return result
}
