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


package ingestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/poiesic/coursefinder/core"
)

// requiredKeys are the course keys the normalizer and the chat formatters
// read. A record missing any of them, or holding null for one, is rejected
// at load time.
var requiredKeys = []string{
	"id",
	"title",
	"description",
	"category",
	"difficulty",
	"duration",
	"skills",
	"prerequisites",
	"provider",
	"rating",
	"enrollment_count",
}

type document struct {
	Courses *[]json.RawMessage `json:"courses"`
}

// LoadCourses reads and decodes the course data file at path.
func LoadCourses(path string) ([]core.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("course data file not readable", "path", path, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrDataSource, err)
	}

	courses, err := DecodeCourses(bytes.NewReader(data))
	if err != nil {
		slog.Error("error parsing course data", "path", path, "err", err)
		return nil, err
	}

	slog.Info("loaded courses", "path", path, "count", len(courses))
	return courses, nil
}

// DecodeCourses decodes a `{"courses": [...]}` document from r.
// Courses are returned in document order. An empty list is valid.
func DecodeCourses(r io.Reader) ([]core.Course, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedData, err)
	}
	if doc.Courses == nil {
		return nil, ErrMissingCourses
	}

	raw := *doc.Courses
	courses := make([]core.Course, len(raw))
	for i, entry := range raw {
		if err := decodeCourse(entry, &courses[i]); err != nil {
			return nil, fmt.Errorf("course %d: %w", i, err)
		}
	}

	if err := core.ValidateCourses(courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func decodeCourse(entry json.RawMessage, course *core.Course) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedCourse, err)
	}
	for _, key := range requiredKeys {
		value, ok := fields[key]
		if !ok {
			return fmt.Errorf("%w: missing %q", ErrMalformedCourse, key)
		}
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return fmt.Errorf("%w: null %q", ErrMalformedCourse, key)
		}
	}
	if err := json.Unmarshal(entry, course); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedCourse, err)
	}
	return nil
}
