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


package storage

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/coursefinder/core"
)

// CourseMUS encodes a Course in MUS format. Fields are written in
// declaration order; Skills is a count followed by that many strings.
var CourseMUS = courseMUS{}

type courseMUS struct{}

func (courseMUS) Marshal(c core.Course, bs []byte) (n int) {
	n = ord.String.Marshal(c.ID, bs)
	n += ord.String.Marshal(c.Title, bs[n:])
	n += ord.String.Marshal(c.Description, bs[n:])
	n += ord.String.Marshal(c.Category, bs[n:])
	n += ord.String.Marshal(c.Difficulty, bs[n:])
	n += ord.String.Marshal(c.Duration, bs[n:])
	n += ord.String.Marshal(c.Provider, bs[n:])
	n += varint.Int.Marshal(len(c.Skills), bs[n:])
	for _, skill := range c.Skills {
		n += ord.String.Marshal(skill, bs[n:])
	}
	n += ord.String.Marshal(c.Prerequisites, bs[n:])
	n += raw.Float64.Marshal(c.Rating, bs[n:])
	n += varint.Int.Marshal(c.EnrollmentCount, bs[n:])
	return n
}

func (courseMUS) Unmarshal(bs []byte) (c core.Course, n int, err error) {
	var n1 int
	fields := []*string{&c.ID, &c.Title, &c.Description, &c.Category, &c.Difficulty, &c.Duration, &c.Provider}
	for _, field := range fields {
		*field, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}

	var count int
	count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if count < 0 || count > len(bs)-n {
		err = fmt.Errorf("invalid skill count %d", count)
		return
	}
	c.Skills = make([]string, count)
	for i := range c.Skills {
		c.Skills[i], n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}

	c.Prerequisites, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Rating, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.EnrollmentCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (courseMUS) Size(c core.Course) (size int) {
	size = ord.String.Size(c.ID)
	size += ord.String.Size(c.Title)
	size += ord.String.Size(c.Description)
	size += ord.String.Size(c.Category)
	size += ord.String.Size(c.Difficulty)
	size += ord.String.Size(c.Duration)
	size += ord.String.Size(c.Provider)
	size += varint.Int.Size(len(c.Skills))
	for _, skill := range c.Skills {
		size += ord.String.Size(skill)
	}
	size += ord.String.Size(c.Prerequisites)
	size += raw.Float64.Size(c.Rating)
	size += varint.Int.Size(c.EnrollmentCount)
	return size
}

// MarshalCourse serializes a Course to bytes.
func MarshalCourse(course *core.Course) []byte {
	buf := make([]byte, CourseMUS.Size(*course))
	CourseMUS.Marshal(*course, buf)
	return buf
}

// UnmarshalCourse deserializes a Course from bytes.
func UnmarshalCourse(data []byte) (*core.Course, error) {
	course, _, err := CourseMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &course, nil
}
