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

// containsNonEnglishScript reports whether text contains Bengali or
// Devanagari codepoints. The deployed models drift into Bengali under
// pressure, so generated responses are screened before they are served.
func containsNonEnglishScript(text string) bool {
	for _, r := range text {
		if r >= 0x0980 && r <= 0x09FF { // Bengali
			return true
		}
		if r >= 0x0900 && r <= 0x097F { // Devanagari
			return true
		}
	}
	return false
}
