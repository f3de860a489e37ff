package chat

import (
	"testing"

	"github.com/poiesic/coursefinder/core"
	"github.com/stretchr/testify/assert"
)

func sampleCourse() core.Course {
	return core.Course{
		ID:              "c1",
		Title:           "Intro to Python",
		Description:     "Learn Python from scratch",
		Category:        "Programming",
		Difficulty:      "Beginner",
		Duration:        "4 weeks",
		Provider:        "Acme",
		Skills:          []string{"Python", "Scripting"},
		Prerequisites:   "None",
		Rating:          4.5,
		EnrollmentCount: 1200,
	}
}

func TestFormatCourse(t *testing.T) {
	course := sampleCourse()
	want := "\n**Intro to Python**\n" +
		"- **Category:** Programming\n" +
		"- **Difficulty:** Beginner\n" +
		"- **Duration:** 4 weeks\n" +
		"- **Skills:** Python, Scripting\n" +
		"- **Prerequisites:** None\n" +
		"- **Provider:** Acme\n" +
		"- **Rating:** 4.5/5.0 (1200 students)\n" +
		"- **Description:** Learn Python from scratch\n"
	assert.Equal(t, want, FormatCourse(&course))
}

func TestFormatRating(t *testing.T) {
	testCases := []struct {
		rating float64
		want   string
	}{
		{4.0, "4.0"},
		{5, "5.0"},
		{0, "0.0"},
		{4.5, "4.5"},
		{4.75, "4.75"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, formatRating(tc.rating))
	}

	course := sampleCourse()
	course.Rating = 4
	assert.Contains(t, FormatCourse(&course), "- **Rating:** 4.0/5.0 (")
}

func TestBuildContext_Empty(t *testing.T) {
	assert.Equal(t, NoCoursesContext, BuildContext(nil))
}

func TestBuildContext(t *testing.T) {
	first := sampleCourse()
	second := sampleCourse()
	second.Title = "Web Basics"
	second.Rating = 5

	got := BuildContext([]core.ScoredCourse{{Course: first, Rank: 1}, {Course: second, Rank: 2}})

	assert.Contains(t, got, "Here are the relevant courses from our database:\n\n1. Intro to Python\n")
	assert.Contains(t, got, "   Skills: Python, Scripting\n")
	assert.Contains(t, got, "   Rating: 4.5/5.0\n\n2. Web Basics\n")
	assert.Contains(t, got, "   Rating: 5.0/5.0\n\n")
}
