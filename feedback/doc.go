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


// Package feedback accumulates user like/dislike signals and maintains the
// permanent answer blocklist.
//
// A disliked answer is blocked forever: it is excluded from the corpus
// index, and generative output similar to it is regenerated or discarded.
// Blocking is by exact answer text plus a word-overlap similarity check
// for near-variants. There is no unblock operation.
package feedback
