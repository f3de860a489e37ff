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


// Package search ranks courses against free-text queries.
//
// Two interchangeable Matcher implementations are provided:
//   - LexicalMatcher scores the fraction of query words found in a course,
//     with a bonus when the whole query appears verbatim
//   - EmbeddingMatcher encodes every course once with an ai.Embedder and
//     answers queries by cosine similarity over an exact index
//
// Both return results sorted by descending score with ranks 1..N, and
// both degrade to an empty result when a query fails. Construction
// failures are returned to the caller.
//
// Filter narrows a course list by category, difficulty and skills without
// ranking it.
package search
