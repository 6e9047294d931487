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


// Package entity classifies queries into disambiguation entities.
//
// Sibling departments share most of their vocabulary but must never share
// numeric facts, so the detector resolves each query to at most one
// department tag and exposes the exclusive keywords used to penalize
// records that belong to a different department.
package entity
