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


// Package ai defines the generative backend abstraction.
//
// The Generator interface hides the model provider behind a single call.
// The ollama subpackage implements it against a local Ollama server via
// langchaingo; the mock subpackage provides a scripted implementation for
// tests. The backend is optional: when it is absent or unreachable, the
// engine degrades to corpus-only answers and refusals.
package ai
