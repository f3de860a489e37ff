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

import "errors"

// Domain validation errors
var (
	// ErrInvalidCourse indicates a Course failed validation.
	ErrInvalidCourse = errors.New("invalid course")

	// ErrMissingField indicates a required field is absent or empty.
	ErrMissingField = errors.New("required field missing")

	// ErrInvalidDifficulty indicates a difficulty outside Beginner, Intermediate and Advanced.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidRating indicates a rating outside the 0-5 range.
	ErrInvalidRating = errors.New("rating must be between 0 and 5")

	// ErrInvalidEnrollment indicates a negative enrollment count.
	ErrInvalidEnrollment = errors.New("enrollment count cannot be negative")

	// ErrDuplicateCourseID indicates two courses share an id.
	ErrDuplicateCourseID = errors.New("duplicate course id")
)
