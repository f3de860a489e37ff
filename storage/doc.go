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


// Package storage provides the storage abstraction layer for the course catalog.
//
// This package defines the repository interface that decouples the course
// store from the matchers and the recommendation layer. The catalog is loaded
// once at startup and is read-only afterwards, so the interface only offers
// bulk insertion and reads.
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.CourseRepository interface:
//
//	repo, err := badger.NewMemoryRepository()  // returns storage.CourseRepository
//
// Internal constructors may return concrete types since they're only used
// within the implementation package.
//
// # Usage
//
//	repo, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
//	if err := repo.AddCourses(ctx, courses...); err != nil {
//	    log.Fatal(err)
//	}
//	course, err := repo.GetCourse(ctx, "c1")
//
// # Thread Safety
//
// Repository implementations must be safe for concurrent readers.
package storage
