package facts

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Fact holds the authoritative numeric figures for one program.
type Fact struct {
	// SemesterFee is the per-semester tuition in BDT.
	SemesterFee int
	// ProgramSemesters is the program length used to derive the total
	// program cost (SemesterFee times ProgramSemesters).
	ProgramSemesters int
}

// DefaultProgramSemesters applies when a fact does not declare its own
// program length.
const DefaultProgramSemesters = 8

// defaultFacts keys program-name fragments to their authoritative figures.
// Detection is substring-based on the lower-cased question plus answer.
var defaultFacts = map[string]Fact{
	"cse":              {SemesterFee: 70000},
	"computer science": {SemesterFee: 70000},
	"eee":              {SemesterFee: 80000},
	"electrical":       {SemesterFee: 80000},
	"bba":              {SemesterFee: 60000},
	"business":         {SemesterFee: 60000},
	"textile":          {SemesterFee: 65000},
	"law":              {SemesterFee: 55000},
	"llb":              {SemesterFee: 55000},
	"english":          {SemesterFee: 50000},
}

// feeAmount extracts BDT figures with optional thousands separators.
var feeAmount = regexp.MustCompile(`bdt\s*(\d{1,3}(?:,\d{3})*)`)

// numericKeywords mark a question as asking for a figure the validator
// knows how to check.
var numericKeywords = []string{
	"fee", "fees", "tuition", "cost", "price", "payment", "how much",
}

// Validator cross-checks numeric claims in candidate answers against the
// authoritative fact table. Immutable after construction.
type Validator struct {
	facts  map[string]Fact
	logger *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithFact sets or overrides the figures for a program-name fragment.
func WithFact(fragment string, fact Fact) Option {
	return func(v *Validator) {
		v.facts[strings.ToLower(fragment)] = fact
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger == nil {
			logger = slog.Default()
		}
		v.logger = logger
	}
}

// NewValidator creates a validator with the default fee table.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		facts:  make(map[string]Fact, len(defaultFacts)),
		logger: slog.Default().With("component", "facts"),
	}
	for fragment, fact := range defaultFacts {
		v.facts[fragment] = fact
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// IsNumericFactQuestion reports whether the question asks for a figure the
// validator can check.
func (v *Validator) IsNumericFactQuestion(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range numericKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// Validate reports whether the answer's numeric claims are consistent with
// the fact table for the program the question is about. It returns true
// when no check applies: unknown program, or no BDT figure in the answer.
// A false result means a figure contradicts the table and the answer must
// not be served at full confidence.
func (v *Validator) Validate(question, answer string) bool {
	if !v.IsNumericFactQuestion(question) {
		return true
	}

	fact, ok := v.factFor(question + " " + answer)
	if !ok {
		return true
	}
	semesters := fact.ProgramSemesters
	if semesters <= 0 {
		semesters = DefaultProgramSemesters
	}

	amounts := extractAmounts(answer)
	if len(amounts) == 0 {
		return true
	}

	for _, amount := range amounts {
		if amount == fact.SemesterFee || amount == fact.SemesterFee*semesters {
			continue
		}
		v.logger.Warn("answer contradicts fact table",
			"claimed", amount,
			"semesterFee", fact.SemesterFee,
			"programTotal", fact.SemesterFee*semesters)
		return false
	}
	return true
}

// factFor finds the first program fragment mentioned in text. Longer
// fragments are preferred so "computer science" wins over substrings of it.
func (v *Validator) factFor(text string) (Fact, bool) {
	lower := strings.ToLower(text)
	var (
		best    Fact
		bestLen int
		found   bool
	)
	for fragment, fact := range v.facts {
		if strings.Contains(lower, fragment) && len(fragment) > bestLen {
			best = fact
			bestLen = len(fragment)
			found = true
		}
	}
	return best, found
}

// extractAmounts parses every BDT figure out of the answer text.
func extractAmounts(answer string) []int {
	matches := feeAmount.FindAllStringSubmatch(strings.ToLower(answer), -1)
	if len(matches) == 0 {
		return nil
	}
	amounts := make([]int, 0, len(matches))
	for _, m := range matches {
		raw := strings.ReplaceAll(m[1], ",", "")
		amount, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		amounts = append(amounts, amount)
	}
	return amounts
}
