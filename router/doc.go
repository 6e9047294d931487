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


// Package router maps a match confidence score onto an answering strategy.
//
// High confidence serves corpus content verbatim, medium adds an
// uncertainty caveat, low hands the match to the generative backend as
// context, and anything below the floor either goes to the backend alone
// or produces a static refusal when no backend is available.
package router
