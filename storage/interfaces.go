package storage

import (
	"context"

	"github.com/poiesic/coursefinder/core"
)

// CourseRepository provides operations for the course catalog.
// Implementations must be thread-safe for concurrent reads.
type CourseRepository interface {
	// AddCourses adds one or more courses to storage in the given order.
	// The order is preserved by GetCourses.
	// Returns ErrDuplicateKey if any id is already stored or repeated in
	// the batch; in that case nothing from the batch is stored.
	AddCourses(ctx context.Context, courses ...core.Course) error

	// GetCourse retrieves a single course by id.
	// Returns ErrNotFound if the course doesn't exist.
	GetCourse(ctx context.Context, id string) (*core.Course, error)

	// GetCourses retrieves every course in load order.
	GetCourses(ctx context.Context) ([]core.Course, error)

	// CountCourses returns the number of stored courses.
	CountCourses(ctx context.Context) (int, error)

	// Close releases resources held by the repository.
	Close() error
}
