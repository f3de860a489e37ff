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


// Package index provides an exact nearest-neighbour index over dense vectors.
//
// Flat stores vectors contiguously in insertion order and answers top-k
// queries by scoring every stored vector with the inner product. When both
// the stored vectors and the query are unit length the score is the cosine
// similarity.
//
// Positions returned by Search refer to insertion order. When fewer than k
// vectors are stored, the tail of the result is padded with NoMatch, so
// callers must skip sentinel positions instead of dereferencing them.
package index
