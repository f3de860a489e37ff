// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
)

// MaxRating is the top of the rating scale.
const MaxRating = 5.0

// ValidateCourse validates a Course according to domain rules.
//
// Validation rules:
//   - ID and Title must not be blank
//   - Difficulty must be Beginner, Intermediate or Advanced (any case)
//   - Rating must lie in [0, MaxRating]
//   - EnrollmentCount must not be negative
//
// Presence of the remaining text fields is checked by the loader, since an
// empty description or prerequisite string is a legitimate value.
func ValidateCourse(course *Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", ErrInvalidCourse)
	}

	if strings.TrimSpace(course.ID) == "" {
		return fmt.Errorf("%w: %w: id", ErrInvalidCourse, ErrMissingField)
	}

	if strings.TrimSpace(course.Title) == "" {
		return fmt.Errorf("%w %q: %w: title", ErrInvalidCourse, course.ID, ErrMissingField)
	}

	if _, ok := ParseDifficulty(course.Difficulty); !ok {
		return fmt.Errorf("%w %q: %w: %q", ErrInvalidCourse, course.ID, ErrInvalidDifficulty, course.Difficulty)
	}

	if course.Rating < 0 || course.Rating > MaxRating {
		return fmt.Errorf("%w %q: %w: %v", ErrInvalidCourse, course.ID, ErrInvalidRating, course.Rating)
	}

	if course.EnrollmentCount < 0 {
		return fmt.Errorf("%w %q: %w", ErrInvalidCourse, course.ID, ErrInvalidEnrollment)
	}

	return nil
}

// ValidateCourses validates every course and enforces id uniqueness.
func ValidateCourses(courses []Course) error {
	seen := make(map[string]struct{}, len(courses))
	for i := range courses {
		if err := ValidateCourse(&courses[i]); err != nil {
			return fmt.Errorf("course %d: %w", i, err)
		}
		if _, dup := seen[courses[i].ID]; dup {
			return fmt.Errorf("course %d: %w: %q", i, ErrDuplicateCourseID, courses[i].ID)
		}
		seen[courses[i].ID] = struct{}{}
	}
	return nil
}
