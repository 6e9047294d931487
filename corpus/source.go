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


package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poiesic/answerit/core"
)

// Source describes one corpus file in the load sequence.
type Source struct {
	// ID identifies the source in record provenance, normally the filename.
	ID string
	// Path is the file location on disk.
	Path string
	// Priority sources contribute a confidence bias to their records.
	Priority bool
	// Superseded marks a legacy source whose improved replacement is also
	// present. Records from a superseded source are skipped when a record
	// with the same normalized question was already loaded.
	Superseded bool
}

// DefaultSupersessions maps a legacy source filename to the improved file
// that replaces it. Supersession is declared statically, never inferred.
var DefaultSupersessions = map[string]string{
	"cse.json":  "CSE_improved.json",
	"EEE2.json": "EEE_improved.json",
	"BBA.json":  "BBA_improved.json",
}

// DefaultPriorityFiles are sources whose records get a confidence bias boost
// regardless of per-record priority markers.
var DefaultPriorityFiles = map[string]struct{}{
	"Fee_Summary_CRITICAL.json":    {},
	"CSE_improved.json":            {},
	"EEE_improved.json":            {},
	"BBA_improved.json":            {},
	"General_University_Info.json": {},
}

// DiscoverSources lists the JSON sources under dir in load order: priority
// files first, then the rest alphabetically. Legacy files with an improved
// replacement present are marked superseded.
func DiscoverSources(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceLoad, err)
	}

	present := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			present[e.Name()] = struct{}{}
		}
	}

	sources := make([]Source, 0, len(present))
	for name := range present {
		_, priority := DefaultPriorityFiles[name]
		superseded := false
		if improved, ok := DefaultSupersessions[name]; ok {
			_, superseded = present[improved]
		}
		sources = append(sources, Source{
			ID:         name,
			Path:       filepath.Join(dir, name),
			Priority:   priority,
			Superseded: superseded,
		})
	}

	sort.Slice(sources, func(i, j int) bool {
		if sources[i].Priority != sources[j].Priority {
			return sources[i].Priority
		}
		return sources[i].ID < sources[j].ID
	})
	return sources, nil
}

// sourceRecord is the on-disk record shape. Only question and answer are
// required.
type sourceRecord struct {
	Question           string   `json:"question"`
	Answer             string   `json:"answer"`
	Keywords           []string `json:"keywords,omitempty"`
	QuestionVariations []string `json:"question_variations,omitempty"`
	Department         string   `json:"department,omitempty"`
	Categories         []string `json:"categories,omitempty"`
	Priority           string   `json:"priority,omitempty"`
	ConfidenceScore    *float64 `json:"confidence_score,omitempty"`
}

// Priority markers and the bias they add.
const (
	priorityCritical = "critical"
	priorityHigh     = "high"

	biasCritical = 0.2
	biasHigh     = 0.1
)

// parseSource reads a source file and converts its records. Records that
// fail validation are dropped and counted, not fatal.
func parseSource(src Source) (records []*core.CorpusRecord, dropped int, err error) {
	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %w", ErrSourceLoad, src.ID, err)
	}

	var items []sourceRecord
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, 0, fmt.Errorf("%w: %s: %w", ErrSourceLoad, src.ID, err)
	}

	records = make([]*core.CorpusRecord, 0, len(items))
	for _, item := range items {
		record := &core.CorpusRecord{
			Id:             core.IDFromContent(item.Question + "|" + item.Answer),
			Question:       item.Question,
			Answer:         item.Answer,
			Keywords:       item.Keywords,
			Variations:     item.QuestionVariations,
			Department:     strings.ToLower(item.Department),
			ConfidenceBias: recordBias(src, item),
			SourceID:       src.ID,
		}
		if len(item.Categories) > 0 {
			record.Category = item.Categories[0]
		}
		if err := core.ValidateCorpusRecord(record); err != nil {
			dropped++
			continue
		}
		records = append(records, record)
	}
	return records, dropped, nil
}

// recordBias derives the confidence bias from source priority and the
// record's own priority marker. The bias only ever raises a match score.
func recordBias(src Source, item sourceRecord) float64 {
	bias := 0.0
	switch {
	case src.Priority, item.Priority == priorityCritical:
		bias = biasCritical
	case item.Priority == priorityHigh:
		bias = biasHigh
	}
	if item.ConfidenceScore != nil && *item.ConfidenceScore < 1.0 {
		// Down-weighted sources contribute less bias, never a penalty.
		bias *= *item.ConfidenceScore
	}
	if bias < 0 {
		bias = 0
	}
	if bias > 1 {
		bias = 1
	}
	return bias
}
