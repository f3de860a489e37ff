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


package index

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// NoMatch is the position reported for result slots with no stored vector.
const NoMatch = -1

var (
	// ErrDimensionMismatch indicates a vector whose length differs from the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrInvalidDimension indicates a non-positive index dimension.
	ErrInvalidDimension = errors.New("index dimension must be positive")
)

// Flat is an exact inner-product index.
// Adds must complete before concurrent searches begin; concurrent searches
// are safe.
type Flat struct {
	dim  int
	data []float32
	mu   sync.RWMutex
}

// NewFlat creates an empty index for vectors of the given dimension.
func NewFlat(dim int) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, dim)
	}
	return &Flat{dim: dim}, nil
}

// Dim returns the vector dimension.
func (f *Flat) Dim() int {
	return f.dim
}

// Len returns the number of stored vectors.
func (f *Flat) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.data) / f.dim
}

// Add appends vectors in order. Either all vectors are added or none are.
func (f *Flat) Add(vectors ...[]float32) error {
	for i, v := range vectors {
		if len(v) != f.dim {
			return fmt.Errorf("%w: vector %d has %d dimensions, index has %d", ErrDimensionMismatch, i, len(v), f.dim)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range vectors {
		f.data = append(f.data, v...)
	}
	return nil
}

// Search returns the k highest-scoring positions and their scores, best
// first. Equal scores keep insertion order. Slots beyond the stored count
// hold NoMatch with a zero score. A non-positive k yields empty results.
func (f *Flat) Search(query []float32, k int) ([]float32, []int, error) {
	if len(query) != f.dim {
		return nil, nil, fmt.Errorf("%w: query has %d dimensions, index has %d", ErrDimensionMismatch, len(query), f.dim)
	}
	if k <= 0 {
		return []float32{}, []int{}, nil
	}

	f.mu.RLock()
	n := len(f.data) / f.dim
	scores := make([]float32, n)
	for i := 0; i < n; i++ {
		scores[i] = dotProduct(query, f.data[i*f.dim:(i+1)*f.dim])
	}
	f.mu.RUnlock()

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	outScores := make([]float32, k)
	outPositions := make([]int, k)
	for i := 0; i < k; i++ {
		if i < n {
			outScores[i] = scores[order[i]]
			outPositions[i] = order[i]
		} else {
			outPositions[i] = NoMatch
		}
	}
	return outScores, outPositions, nil
}
