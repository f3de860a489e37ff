package storage

import (
	"encoding/json"
	"testing"

	"github.com/poiesic/coursefinder/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseSerialization(t *testing.T) {
	course := &core.Course{
		ID:              "c1",
		Title:           "Intro to Python",
		Description:     "Covers python programming from scratch",
		Category:        "Programming",
		Difficulty:      "Beginner",
		Duration:        "6 weeks",
		Provider:        "edX",
		Skills:          []string{"python", "programming"},
		Prerequisites:   "None",
		Rating:          4.7,
		EnrollmentCount: 15000,
	}

	data := MarshalCourse(course)
	assert.Len(t, data, CourseMUS.Size(*course))

	decoded, err := UnmarshalCourse(data)
	require.NoError(t, err)
	assert.Equal(t, course, decoded)
}

func TestCourseSerialization_NoSkills(t *testing.T) {
	for _, skills := range [][]string{nil, {}} {
		course := &core.Course{ID: "c2", Title: "Empty", Difficulty: "Advanced", Skills: skills}

		decoded, err := UnmarshalCourse(MarshalCourse(course))
		require.NoError(t, err)
		assert.Equal(t, course.ID, decoded.ID)
		require.NotNil(t, decoded.Skills)
		assert.Empty(t, decoded.Skills)

		data, err := json.Marshal(decoded)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"skills":[]`)
	}
}

func TestUnmarshalCourse_Corrupt(t *testing.T) {
	course := &core.Course{ID: "c1", Title: "Intro", Skills: []string{"python"}}
	data := MarshalCourse(course)

	_, err := UnmarshalCourse(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)

	_, err = UnmarshalCourse(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
