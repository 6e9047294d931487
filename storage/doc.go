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


// Package storage provides the persistence abstraction for answerit.
//
// The only durable state is the feedback log and the answer blocklist; the
// corpus itself is rebuilt from its JSON sources on every start. The
// FeedbackRepository interface decouples that state from the backend so
// alternative implementations can be swapped in.
//
// Public constructors return the storage.FeedbackRepository interface
// rather than a concrete type:
//
//	repo, err := badger.NewFeedbackRepository(backend)
//
// Use an in-memory repository in tests:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	defer backend.Close()
//
// All implementations must be thread-safe, and every method accepts a
// context.Context for cancellation.
package storage
