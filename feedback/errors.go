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


package feedback

import "errors"

var (
	// ErrRepositoryRequired is returned when a feedback repository is not provided.
	ErrRepositoryRequired = errors.New("feedback repository required")

	// ErrInvalidSimilarity is returned when the similarity threshold is out of range.
	ErrInvalidSimilarity = errors.New("similarity threshold must be in (0, 1]")
)
