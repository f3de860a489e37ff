package search

import (
	"strings"

	"github.com/poiesic/coursefinder/core"
)

// Criteria selects courses by exact, case-insensitive field matches.
// Empty fields are ignored.
type Criteria struct {
	Category   string   `json:"category,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Skills     []string `json:"skills,omitempty"`
}

// IsEmpty reports whether no criterion is set.
func (c Criteria) IsEmpty() bool {
	return c.Category == "" && c.Difficulty == "" && len(c.Skills) == 0
}

// Matches reports whether course satisfies every set criterion. A course
// passes the skills criterion when it shares at least one skill with it.
func (c Criteria) Matches(course *core.Course) bool {
	if c.Category != "" && !strings.EqualFold(course.Category, c.Category) {
		return false
	}
	if c.Difficulty != "" && !strings.EqualFold(course.Difficulty, c.Difficulty) {
		return false
	}
	if len(c.Skills) > 0 && !sharesSkill(course.Skills, c.Skills) {
		return false
	}
	return true
}

func sharesSkill(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

// Filter returns the courses that satisfy criteria, in input order.
// The input is never modified; the result is a new slice.
func Filter(courses []core.Course, criteria Criteria) []core.Course {
	out := make([]core.Course, 0, len(courses))
	if criteria.IsEmpty() {
		for i := range courses {
			out = append(out, courses[i].Clone())
		}
		return out
	}
	for i := range courses {
		if criteria.Matches(&courses[i]) {
			out = append(out, courses[i].Clone())
		}
	}
	return out
}
