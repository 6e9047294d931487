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


// Package textnorm canonicalizes free text into comparable token sequences.
//
// Normalization lowercases the input, strips punctuation, removes stop words,
// and reduces each remaining word to its stem. The pipeline is deterministic
// and has no shared state, so one Normalizer can serve all requests.
package textnorm
