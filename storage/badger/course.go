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


package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/coursefinder/core"
	"github.com/poiesic/coursefinder/storage"
)

// CourseRepository implements storage.CourseRepository for BadgerDB.
type CourseRepository struct {
	backend     *Backend
	orderSeq    *badger.Sequence
	ownsBackend bool
}

var _ storage.CourseRepository = (*CourseRepository)(nil)

// NewCourseRepository creates a new CourseRepository on top of backend.
// The caller keeps ownership of backend.
func NewCourseRepository(backend *Backend) (*CourseRepository, error) {
	orderSeq, err := backend.GetSequence(courseOrderSeq)
	if err != nil {
		return nil, err
	}

	return &CourseRepository{
		backend:  backend,
		orderSeq: orderSeq,
	}, nil
}

// Close releases the order sequence, and the backend when the repository owns it.
func (r *CourseRepository) Close() error {
	if err := r.orderSeq.Release(); err != nil {
		return err
	}
	if r.ownsBackend {
		return r.backend.Close()
	}
	return nil
}

// AddCourses adds one or more courses to storage in the given order.
// Ids are checked against the store and the batch before anything is
// written, so a duplicate leaves the store untouched. Large batches are
// split across several transactions.
func (r *CourseRepository) AddCourses(ctx context.Context, courses ...core.Course) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if err := r.checkUnique(courses); err != nil {
		return err
	}

	return r.backend.WithRollingWrite(func(set func(key, value []byte) error) error {
		for i := range courses {
			course := &courses[i]
			if err := set(makeCourseKey(course.ID), storage.MarshalCourse(course)); err != nil {
				return err
			}

			position, err := r.orderSeq.Next()
			if err != nil {
				return err
			}
			if err := set(makeCourseOrderKey(position), []byte(course.ID)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CourseRepository) checkUnique(courses []core.Course) error {
	seen := make(map[string]struct{}, len(courses))
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for i := range courses {
			id := courses[i].ID
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: course %q", storage.ErrDuplicateKey, id)
			}
			seen[id] = struct{}{}

			if _, err := tx.Get(makeCourseKey(id)); err == nil {
				return fmt.Errorf("%w: course %q", storage.ErrDuplicateKey, id)
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return nil
	}, false)
}

// GetCourse retrieves a single course by id.
func (r *CourseRepository) GetCourse(ctx context.Context, id string) (*core.Course, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var course *core.Course
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		course, err = readCourse(tx, makeCourseKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, storage.ErrNotFound
	}
	return course, nil
}

// GetCourses retrieves every course in load order.
func (r *CourseRepository) GetCourses(ctx context.Context) ([]core.Course, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	courses := []core.Course{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = courseOrderPrefixBytes()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id string
			err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			})
			if err != nil {
				return err
			}

			course, err := readCourse(tx, makeCourseKey(id))
			if err != nil {
				return err
			}
			if course == nil {
				// Order index points at a missing record
				return fmt.Errorf("%w: course %q", storage.ErrNotFound, id)
			}
			courses = append(courses, *course)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// CountCourses returns the number of stored courses.
func (r *CourseRepository) CountCourses(ctx context.Context) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = courseOrderPrefixBytes()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readCourse reads a course from a transaction. Returns nil, nil when absent.
func readCourse(tx *badger.Txn, key []byte) (*core.Course, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var course *core.Course
	err = item.Value(func(val []byte) error {
		var err error
		course, err = storage.UnmarshalCourse(val)
		return err
	})
	return course, err
}
