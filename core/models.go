package core

import (
	"slices"
	"strings"
)

// Difficulty is the skill level a course is aimed at.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Difficulties lists the recognised difficulty levels in ascending order.
var Difficulties = []Difficulty{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
}

// ParseDifficulty matches s case-insensitively against the known levels.
// Surrounding whitespace is ignored.
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Difficulties {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return "", false
}

// Course is one catalog entry. Courses are immutable once loaded.
type Course struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Difficulty      string   `json:"difficulty"`
	Duration        string   `json:"duration"`
	Provider        string   `json:"provider"`
	Skills          []string `json:"skills"`
	Prerequisites   string   `json:"prerequisites"`
	Rating          float64  `json:"rating"`
	EnrollmentCount int      `json:"enrollment_count"`
}

// HasDifficulty reports whether the course difficulty equals level, ignoring case.
func (c *Course) HasDifficulty(level string) bool {
	return strings.EqualFold(c.Difficulty, level)
}

// Clone returns a copy of the course that shares no memory with c.
func (c Course) Clone() Course {
	c.Skills = slices.Clone(c.Skills)
	return c
}

// ScoredCourse is a course augmented with the relevance of a single query.
// It is owned by the caller that issued the query.
type ScoredCourse struct {
	Course
	SimilarityScore float64 `json:"similarity_score"`
	Rank            int     `json:"rank"`
}

// CourseIDs returns the ids of results in order. Handy for logging.
func CourseIDs(results []ScoredCourse) []string {
	ids := make([]string, len(results))
	for i := range results {
		ids[i] = results[i].ID
	}
	return ids
}
