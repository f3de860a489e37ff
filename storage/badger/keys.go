package badger

import (
	"encoding/binary"
)

// Key prefixes for different data types
const (
	courseRecordPrefix = "crsrec"
	courseOrderPrefix  = "crsord"
	courseOrderSeq     = "crsseq"
)

// makeCourseKey generates a key for a course by id.
// Format: prefix:id
func makeCourseKey(id string) []byte {
	prefix := courseRecordPrefix + ":"
	buf := make([]byte, len(prefix)+len(id))
	offset := copy(buf, prefix)
	copy(buf[offset:], id)
	return buf
}

// makeCourseOrderKey generates a key for the load-order index.
// Format: prefix:position
func makeCourseOrderKey(position uint64) []byte {
	prefixBytes := courseOrderPrefixBytes()
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], position)
	return buf
}

// courseOrderPrefixBytes is the iteration prefix for the load-order index.
func courseOrderPrefixBytes() []byte {
	return []byte(courseOrderPrefix + ":")
}
