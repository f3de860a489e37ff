package core

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint returns a 64-bit BLAKE2b digest of the catalog, hex encoded.
// Every field and the course order contribute, so two catalogs share a
// fingerprint only when they load identically.
func Fingerprint(courses []Course) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	var num [8]byte
	writeString := func(s string) {
		binary.LittleEndian.PutUint64(num[:], uint64(len(s)))
		h.Write(num[:])
		h.Write([]byte(s))
	}

	for i := range courses {
		c := &courses[i]
		writeString(c.ID)
		writeString(c.Title)
		writeString(c.Description)
		writeString(c.Category)
		writeString(c.Difficulty)
		writeString(c.Duration)
		writeString(c.Provider)
		binary.LittleEndian.PutUint64(num[:], uint64(len(c.Skills)))
		h.Write(num[:])
		for _, skill := range c.Skills {
			writeString(skill)
		}
		writeString(c.Prerequisites)
		binary.LittleEndian.PutUint64(num[:], math.Float64bits(c.Rating))
		h.Write(num[:])
		binary.LittleEndian.PutUint64(num[:], uint64(c.EnrollmentCount))
		h.Write(num[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
