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


package search

import "strings"

func splitFields(text string) []string {
	return strings.Fields(text)
}

// extractPhrases returns every consecutive two-word and three-word phrase
// of the folded query, in order of appearance.
func extractPhrases(folded string) []string {
	words := splitFields(folded)
	if len(words) < 2 {
		return nil
	}
	phrases := make([]string, 0, 2*len(words))
	for i := 0; i+1 < len(words); i++ {
		phrases = append(phrases, words[i]+" "+words[i+1])
	}
	for i := 0; i+2 < len(words); i++ {
		phrases = append(phrases, words[i]+" "+words[i+1]+" "+words[i+2])
	}
	return phrases
}

// phraseScore is the fraction of query phrases found verbatim inside the
// record's lower-cased question text.
func phraseScore(phrases []string, lowerQuestion string) float64 {
	if len(phrases) == 0 || lowerQuestion == "" {
		return 0
	}
	hits := 0
	for _, p := range phrases {
		if strings.Contains(lowerQuestion, p) {
			hits++
		}
	}
	return float64(hits) / float64(len(phrases))
}
