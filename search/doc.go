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


// Package search ranks corpus records against user queries.
//
// The Scorer type implements a layered matching algorithm:
//   - Exact question and exact variation text matching
//   - Word-overlap similarity for near-verbatim paraphrases
//   - A blended token-frequency formula combining tf-idf cosine
//     similarity, keyword overlap, variation similarity, phrase
//     matching and entity affinity
//
// Each tier short-circuits the ones below it. Results carry a per-strategy
// score breakdown so callers can route on both the score and how it was
// produced.
package search
