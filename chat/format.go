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


package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/poiesic/coursefinder/core"
)

// NoCoursesContext is the model context used when nothing was recommended.
const NoCoursesContext = "No relevant courses found in the database."

// formatRating prints the shortest form of rating that keeps at least one
// decimal, so 4 prints as "4.0" and 4.75 as "4.75".
func formatRating(rating float64) string {
	s := strconv.FormatFloat(rating, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatCourse renders a course as a markdown card for display.
func FormatCourse(course *core.Course) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "**%s**\n", course.Title)
	fmt.Fprintf(&b, "- **Category:** %s\n", course.Category)
	fmt.Fprintf(&b, "- **Difficulty:** %s\n", course.Difficulty)
	fmt.Fprintf(&b, "- **Duration:** %s\n", course.Duration)
	fmt.Fprintf(&b, "- **Skills:** %s\n", strings.Join(course.Skills, ", "))
	fmt.Fprintf(&b, "- **Prerequisites:** %s\n", course.Prerequisites)
	fmt.Fprintf(&b, "- **Provider:** %s\n", course.Provider)
	fmt.Fprintf(&b, "- **Rating:** %s/5.0 (%d students)\n", formatRating(course.Rating), course.EnrollmentCount)
	fmt.Fprintf(&b, "- **Description:** %s\n", course.Description)
	return b.String()
}

// BuildContext lists courses, numbered from 1, in the form the model
// receives them.
func BuildContext(courses []core.ScoredCourse) string {
	if len(courses) == 0 {
		return NoCoursesContext
	}

	var b strings.Builder
	b.WriteString("Here are the relevant courses from our database:\n\n")
	for i := range courses {
		c := &courses[i]
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.Title)
		fmt.Fprintf(&b, "   Category: %s\n", c.Category)
		fmt.Fprintf(&b, "   Difficulty: %s\n", c.Difficulty)
		fmt.Fprintf(&b, "   Duration: %s\n", c.Duration)
		fmt.Fprintf(&b, "   Skills: %s\n", strings.Join(c.Skills, ", "))
		fmt.Fprintf(&b, "   Prerequisites: %s\n", c.Prerequisites)
		fmt.Fprintf(&b, "   Description: %s\n", c.Description)
		fmt.Fprintf(&b, "   Provider: %s\n", c.Provider)
		fmt.Fprintf(&b, "   Rating: %s/5.0\n\n", formatRating(c.Rating))
	}
	return b.String()
}
