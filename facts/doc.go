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


// Package facts validates numeric claims in candidate answers against an
// authoritative fact table before they are served.
//
// A claimed figure is accepted when it equals the program's per-semester
// fee or its whole-program total. Any other figure contradicts the table
// and forces the answer down to low confidence so it is never presented
// as authoritative.
package facts
