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


package answerit

import (
	"strings"

	"github.com/poiesic/answerit/core"
)

const systemPrompt = `You are a helpful assistant for a university's admissions and information office.
Answer the student's question accurately and concisely.
Rules:
- Respond in English only.
- If reference information is provided below, base your answer on it.
- Do not invent fees, dates, or requirements that are not in the reference information.
- If you do not know the answer, say so and suggest contacting the university office.`

const englishReminder = `Your previous response was not in English. Answer again, in English only.`

const avoidBlockedReminder = `Your previous response repeated an answer that users reported as unhelpful. Provide a different answer with other wording and, if possible, other details.`

// buildPrompt assembles the generation prompt. Weak corpus matches are
// injected as reference information when present.
func buildPrompt(question string, matches []*core.MatchResult) string {
	var b strings.Builder
	b.WriteString(systemPrompt)

	if len(matches) > 0 {
		b.WriteString("\n\nReference information:\n")
		for _, m := range matches {
			b.WriteString("- Q: ")
			b.WriteString(m.Record.Question)
			b.WriteString("\n  A: ")
			b.WriteString(m.Record.Answer)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nStudent question: ")
	b.WriteString(question)
	b.WriteString("\nAnswer:")
	return b.String()
}

// buildRetryPrompt appends a corrective reminder to the original prompt.
func buildRetryPrompt(prompt, reminder string) string {
	return prompt + "\n\n" + reminder
}
