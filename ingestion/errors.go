package ingestion

import "errors"

var (
	// ErrDataSource is returned when the course data source cannot be read.
	ErrDataSource = errors.New("course data source unavailable")

	// ErrMalformedData is returned when the data source is not a JSON object.
	ErrMalformedData = errors.New("malformed course data")

	// ErrMissingCourses is returned when the data source has no "courses" key.
	ErrMissingCourses = errors.New(`course data has no "courses" list`)

	// ErrMalformedCourse is returned when a course record lacks a required key
	// or has a value of the wrong type.
	ErrMalformedCourse = errors.New("malformed course record")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrEmbeddingCountMismatch is returned when the embedder returns a
	// different number of vectors than texts it was given.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")

	// ErrInvalidMaxAttempts is returned when fewer than one attempt is configured.
	ErrInvalidMaxAttempts = errors.New("retry attempts must be at least 1")
)
