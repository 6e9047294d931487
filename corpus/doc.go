// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package corpus loads question/answer records from JSON dataset files and
// builds the token-frequency index searches run against.
//
// Loading resolves file supersession (a replacement dataset shadows the
// records of the file it supersedes) and derives a per-record confidence
// bias from source priority. The index is immutable once built; excluding
// blocked answers produces a smaller record set and a fresh index.
package corpus
