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


package core

import (
	"fmt"
	"time"
)

// ValidateCorpusRecord validates a CorpusRecord according to domain rules.
//
// Validation rules:
//   - Question must not be empty
//   - Answer must not be empty
//   - ConfidenceBias must be in [0,1]
//
// NOT validated:
//   - Keywords, Variations, Department, Category (all optional)
//   - ID (0 is valid before content hashing)
func ValidateCorpusRecord(record *CorpusRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidCorpusRecord)
	}

	if record.Question == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCorpusRecord, ErrEmptyQuestion)
	}

	if record.Answer == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCorpusRecord, ErrEmptyAnswer)
	}

	if record.ConfidenceBias < 0 || record.ConfidenceBias > 1 {
		return fmt.Errorf("%w: %w", ErrInvalidCorpusRecord, ErrInvalidConfidenceBias)
	}

	return nil
}

// ValidateFeedbackEntry validates a FeedbackEntry according to domain rules.
//
// Validation rules:
//   - Question and Answer must not be empty
//   - Verdict must be valid (Like or Dislike)
//   - Timestamp must not be in the future
func ValidateFeedbackEntry(entry *FeedbackEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidFeedbackEntry)
	}

	if entry.Question == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFeedbackEntry, ErrEmptyQuestion)
	}

	if entry.Answer == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFeedbackEntry, ErrEmptyAnswer)
	}

	if err := ValidateVerdict(entry.Verdict); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFeedbackEntry, err)
	}

	if !IsValidTimestamp(entry.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidFeedbackEntry, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateVerdict validates that a Verdict has a valid value.
func ValidateVerdict(verdict Verdict) error {
	if verdict != VerdictLike && verdict != VerdictDislike {
		return fmt.Errorf("%w: value %d", ErrInvalidVerdict, verdict)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
