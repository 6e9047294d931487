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
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the persisted domain types. The feedback log and the
// blocklist are the only durable state, so the serializers are maintained by
// hand rather than generated.

// IDMUS serializes ID values.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return ID(num), n, err
}

func (idMUS) Size(id ID) (size int) {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// timeMUS serializes time.Time as microseconds since the Unix epoch.
type timeMUS struct{}

func (timeMUS) Marshal(t time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func (timeMUS) Unmarshal(bs []byte) (t time.Time, n int, err error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func (timeMUS) Size(t time.Time) (size int) {
	return varint.Int64.Size(t.UnixMicro())
}

func (timeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

// FeedbackEntryMUS serializes FeedbackEntry values.
var FeedbackEntryMUS = feedbackEntryMUS{}

type feedbackEntryMUS struct{}

func (s feedbackEntryMUS) Marshal(v FeedbackEntry, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Question, bs[n:])
	n += ord.String.Marshal(v.Answer, bs[n:])
	n += varint.Int.Marshal(int(v.Verdict), bs[n:])
	n += timeMUS{}.Marshal(v.Timestamp, bs[n:])
	return
}

func (s feedbackEntryMUS) Unmarshal(bs []byte) (v FeedbackEntry, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Question, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Answer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var verdict int
	verdict, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Verdict = Verdict(verdict)
	v.Timestamp, n1, err = timeMUS{}.Unmarshal(bs[n:])
	n += n1
	return
}

func (s feedbackEntryMUS) Size(v FeedbackEntry) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Question)
	size += ord.String.Size(v.Answer)
	size += varint.Int.Size(int(v.Verdict))
	size += timeMUS{}.Size(v.Timestamp)
	return
}

// BlockedAnswerMUS serializes BlockedAnswer values.
var BlockedAnswerMUS = blockedAnswerMUS{}

type blockedAnswerMUS struct{}

func (s blockedAnswerMUS) Marshal(v BlockedAnswer, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Answer, bs[n:])
	n += ord.String.Marshal(v.Question, bs[n:])
	n += timeMUS{}.Marshal(v.Timestamp, bs[n:])
	return
}

func (s blockedAnswerMUS) Unmarshal(bs []byte) (v BlockedAnswer, n int, err error) {
	var n1 int
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Answer, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Question, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Timestamp, n1, err = timeMUS{}.Unmarshal(bs[n:])
	n += n1
	return
}

func (s blockedAnswerMUS) Size(v BlockedAnswer) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Answer)
	size += ord.String.Size(v.Question)
	size += timeMUS{}.Size(v.Timestamp)
	return
}
