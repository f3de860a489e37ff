package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCourse(id string) Course {
	return Course{
		ID:              id,
		Title:           "Intro to Python",
		Description:     "Learn Python from scratch",
		Category:        "Programming",
		Difficulty:      "Beginner",
		Duration:        "4 weeks",
		Provider:        "Coursera",
		Skills:          []string{"python"},
		Prerequisites:   "None",
		Rating:          4.5,
		EnrollmentCount: 1200,
	}
}

func TestValidateCourse(t *testing.T) {
	t.Run("valid course", func(t *testing.T) {
		c := validCourse("c1")
		require.NoError(t, ValidateCourse(&c))
	})

	t.Run("nil course", func(t *testing.T) {
		err := ValidateCourse(nil)
		assert.ErrorIs(t, err, ErrInvalidCourse)
	})

	t.Run("blank id", func(t *testing.T) {
		c := validCourse("  ")
		err := ValidateCourse(&c)
		assert.ErrorIs(t, err, ErrInvalidCourse)
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("blank title", func(t *testing.T) {
		c := validCourse("c1")
		c.Title = ""
		assert.ErrorIs(t, ValidateCourse(&c), ErrMissingField)
	})

	t.Run("difficulty is case-insensitive", func(t *testing.T) {
		c := validCourse("c1")
		c.Difficulty = "advanced"
		assert.NoError(t, ValidateCourse(&c))
	})

	t.Run("unknown difficulty", func(t *testing.T) {
		c := validCourse("c1")
		c.Difficulty = "Expert"
		assert.ErrorIs(t, ValidateCourse(&c), ErrInvalidDifficulty)
	})

	t.Run("rating out of range", func(t *testing.T) {
		c := validCourse("c1")
		c.Rating = 5.1
		assert.ErrorIs(t, ValidateCourse(&c), ErrInvalidRating)
		c.Rating = -1
		assert.ErrorIs(t, ValidateCourse(&c), ErrInvalidRating)
	})

	t.Run("negative enrollment", func(t *testing.T) {
		c := validCourse("c1")
		c.EnrollmentCount = -3
		assert.ErrorIs(t, ValidateCourse(&c), ErrInvalidEnrollment)
	})
}

func TestValidateCourses(t *testing.T) {
	t.Run("unique ids", func(t *testing.T) {
		err := ValidateCourses([]Course{validCourse("c1"), validCourse("c2")})
		assert.NoError(t, err)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		err := ValidateCourses([]Course{validCourse("c1"), validCourse("c1")})
		assert.ErrorIs(t, err, ErrDuplicateCourseID)
	})

	t.Run("reports first invalid course", func(t *testing.T) {
		bad := validCourse("c2")
		bad.Difficulty = ""
		err := ValidateCourses([]Course{validCourse("c1"), bad})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "course 1")
	})

	t.Run("empty catalog", func(t *testing.T) {
		assert.NoError(t, ValidateCourses(nil))
	})
}
