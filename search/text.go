package search

import (
	"regexp"
	"strings"

	"github.com/poiesic/coursefinder/core"
)

// CourseText joins title, description, category, difficulty, the skills
// and prerequisites with single spaces. Case is preserved.
func CourseText(course *core.Course) string {
	return strings.Join([]string{
		course.Title,
		course.Description,
		course.Category,
		course.Difficulty,
		strings.Join(course.Skills, " "),
		course.Prerequisites,
	}, " ")
}

// LexicalText is CourseText lowercased.
func LexicalText(course *core.Course) string {
	return strings.ToLower(CourseText(course))
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// tokenize returns the set of lowercased words in text.
func tokenize(text string) map[string]struct{} {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
