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


package storage

import (
	"github.com/poiesic/answerit/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalFeedbackEntry serializes a FeedbackEntry to bytes.
func MarshalFeedbackEntry(entry *core.FeedbackEntry) []byte {
	buf := make([]byte, core.FeedbackEntryMUS.Size(*entry))
	core.FeedbackEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalFeedbackEntry deserializes a FeedbackEntry from bytes.
func UnmarshalFeedbackEntry(data []byte) (*core.FeedbackEntry, error) {
	entry, _, err := core.FeedbackEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// MarshalBlockedAnswer serializes a BlockedAnswer to bytes.
func MarshalBlockedAnswer(blocked *core.BlockedAnswer) []byte {
	buf := make([]byte, core.BlockedAnswerMUS.Size(*blocked))
	core.BlockedAnswerMUS.Marshal(*blocked, buf)
	return buf
}

// UnmarshalBlockedAnswer deserializes a BlockedAnswer from bytes.
func UnmarshalBlockedAnswer(data []byte) (*core.BlockedAnswer, error) {
	blocked, _, err := core.BlockedAnswerMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &blocked, nil
}
