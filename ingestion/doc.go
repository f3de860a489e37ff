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


// Package ingestion turns a course data source into the inputs the search
// layer needs.
//
// LoadCourses and DecodeCourses read the `{"courses": [...]}` document,
// check that every record carries the keys the text normalizer relies on,
// and validate the result with core.ValidateCourses.
//
// Encoder produces embeddings for course texts. Texts are split into
// batches that are encoded concurrently on a worker pool; each batch call is
// retried with exponential backoff, and output order always matches input
// order. Any batch that still fails aborts the whole run.
package ingestion
