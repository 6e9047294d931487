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


package corpus

import "errors"

var (
	// ErrNormalizerRequired is returned when a normalizer is not provided.
	ErrNormalizerRequired = errors.New("normalizer required")

	// ErrEmptyCorpus indicates there are no records to index. Searches
	// against an absent index degrade to "no match", they do not fail.
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrSourceLoad indicates a corpus source could not be read or parsed.
	// Load errors are recovered by skipping the source; they are never
	// fatal to startup.
	ErrSourceLoad = errors.New("source load failed")
)
