package entity

import "strings"

// Tag identifies a disambiguation entity (an academic department). Queries
// resolve to at most one tag, and records tagged with a different entity are
// penalized so one department's facts never answer another's question.
type Tag string

const (
	TagEEE        Tag = "eee"
	TagCSE        Tag = "cse"
	TagBBA        Tag = "bba"
	TagTextile    Tag = "textile"
	TagLaw        Tag = "law"
	TagEnglish    Tag = "english"
	TagJournalism Tag = "journalism"
	TagSociology  Tag = "sociology"
)

// row pairs a tag with its detection patterns. Table order matters: more
// specific patterns come first because they may overlap with later ones
// ("electrical" must win before any generic engineering match).
type row struct {
	tag      Tag
	patterns []string
}

// Detector classifies a query into zero-or-one entity tag via substring
// pattern tables, and knows each entity's exclusive keywords for
// cross-entity leak checks. Immutable after construction.
type Detector struct {
	table     []row
	exclusive map[Tag][]string
}

// Option configures a Detector.
type Option func(*Detector)

// WithPatterns appends a detection row for tag. Rows added through options
// are checked after the default table.
func WithPatterns(tag Tag, patterns ...string) Option {
	return func(d *Detector) {
		d.table = append(d.table, row{tag: tag, patterns: patterns})
	}
}

// WithExclusiveKeywords sets the keywords that belong to tag alone.
func WithExclusiveKeywords(tag Tag, keywords ...string) Option {
	return func(d *Detector) {
		d.exclusive[tag] = keywords
	}
}

// NewDetector creates a Detector with the default department tables.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		table: []row{
			{TagEEE, []string{"eee", "electrical", "electronic", "electrical and electronic", "electrical engineering"}},
			{TagCSE, []string{"cse", "computer science", "computer engineering", "software", "programming"}},
			{TagBBA, []string{"bba", "business", "business administration", "management"}},
			{TagTextile, []string{"textile", "textile engineering", "garment"}},
			{TagLaw, []string{"law", "llb", "legal", "advocate"}},
			{TagEnglish, []string{"english", "ba english", "literature", "linguistics"}},
			{TagJournalism, []string{"journalism", "media", "communication"}},
			{TagSociology, []string{"sociology", "social science"}},
		},
		exclusive: map[Tag][]string{
			TagEEE:     {"eee", "electrical", "electronic"},
			TagCSE:     {"cse", "computer science", "computer engineering"},
			TagBBA:     {"bba", "business administration"},
			TagTextile: {"textile engineering"},
			TagLaw:     {"llb", "law"},
			TagEnglish: {"ba english", "english department"},
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the first entity whose pattern appears as a substring of
// the query. Matching is done on the lower-cased raw query, not the
// normalized token sequence, so multi-word patterns survive.
func (d *Detector) Detect(query string) (Tag, bool) {
	text := strings.ToLower(query)
	for _, r := range d.table {
		for _, p := range r.patterns {
			if strings.Contains(text, p) {
				return r.tag, true
			}
		}
	}
	return "", false
}

// MentionsOther reports whether the record text (question plus answer)
// contains another entity's exclusive keywords. A true result means the
// record clearly belongs to a different department than target and must be
// penalized, never boosted.
func (d *Detector) MentionsOther(question, answer string, target Tag) bool {
	if target == "" {
		return false
	}
	text := strings.ToLower(question + " " + answer)
	for tag, keywords := range d.exclusive {
		if tag == target {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}

// Matches reports whether the record belongs to target: either its declared
// department contains the tag or its question mentions the tag directly.
func (d *Detector) Matches(department, question string, target Tag) bool {
	if target == "" {
		return false
	}
	t := string(target)
	return strings.Contains(strings.ToLower(department), t) ||
		strings.Contains(strings.ToLower(question), t)
}
