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

import "errors"

var (
	// ErrNotFound is returned when no course has the requested id.
	ErrNotFound = errors.New("course not found")

	// ErrDuplicateKey is returned when a load repeats a course id, either
	// within one batch or against an earlier one.
	ErrDuplicateKey = errors.New("duplicate course id")

	// ErrStorageClosed is returned by every repository call after Close.
	ErrStorageClosed = errors.New("course store is closed")

	// ErrIncompleteLoad is returned when the store holds a different number
	// of courses than were loaded into it.
	ErrIncompleteLoad = errors.New("course store does not match loaded catalog")

	// ErrSerializationFailed wraps codec errors for stored course values.
	ErrSerializationFailed = errors.New("course serialization failed")
)
