package router

import (
	"fmt"
	"strings"
)

// Thresholds are the confidence boundaries between answering strategies.
// High and Medium are inclusive lower bounds; Low is the relevance floor
// below which corpus content is not used at all.
type Thresholds struct {
	High   float64
	Medium float64
	Low    float64
}

// DefaultThresholds returns the tuned production boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 0.70, Medium: 0.40, Low: 0.25}
}

// Validate rejects boundary configurations that cannot order strategies.
func (t Thresholds) Validate() error {
	if t.High <= t.Medium || t.Medium <= t.Low || t.Low < 0 || t.High > 1 {
		return ErrInvalidThresholds
	}
	return nil
}

// Strategy names how the final answer should be produced.
type Strategy int

const (
	// StrategyCorpusExact serves the matched answer verbatim.
	StrategyCorpusExact Strategy = iota
	// StrategyCorpusCaveat serves the matched answer behind an
	// uncertainty caveat.
	StrategyCorpusCaveat
	// StrategyGenerativeAugmented asks the generative backend with the
	// weak match injected as context.
	StrategyGenerativeAugmented
	// StrategyGenerativePrimary asks the generative backend with no
	// usable corpus context.
	StrategyGenerativePrimary
	// StrategyRefusal returns the static refusal because no corpus
	// content qualified and no backend is available.
	StrategyRefusal
)

func (s Strategy) String() string {
	switch s {
	case StrategyCorpusExact:
		return "corpus_exact"
	case StrategyCorpusCaveat:
		return "corpus_caveat"
	case StrategyGenerativeAugmented:
		return "generative_augmented"
	case StrategyGenerativePrimary:
		return "generative_primary"
	default:
		return "refusal"
	}
}

// Route picks the answering strategy for a match score. The decision is a
// pure function of the score, backend availability and the thresholds.
func Route(score float64, backendAvailable bool, t Thresholds) Strategy {
	switch {
	case score >= t.High:
		return StrategyCorpusExact
	case score >= t.Medium:
		return StrategyCorpusCaveat
	case score >= t.Low:
		if backendAvailable {
			return StrategyGenerativeAugmented
		}
		return StrategyCorpusCaveat
	default:
		if backendAvailable {
			return StrategyGenerativePrimary
		}
		return StrategyRefusal
	}
}

// Caveat wraps a medium-confidence answer in an uncertainty disclaimer.
func Caveat(answer string) string {
	return fmt.Sprintf(
		"I found related information, though I'm not fully certain it answers your question:\n\n%s\n\nIf this doesn't help, please contact the university office directly.",
		answer)
}

// refusalTopics enumerate what the assistant can actually help with.
var refusalTopics = []string{
	"admission requirements and deadlines",
	"tuition and semester fees",
	"department programs (CSE, EEE, BBA, Textile, Law, English)",
	"campus facilities and services",
}

// Refusal is the static answer when no strategy can produce a grounded
// response.
func Refusal() string {
	var b strings.Builder
	b.WriteString("I'm sorry, I don't have reliable information to answer that. I can help with:\n")
	for _, topic := range refusalTopics {
		b.WriteString("- ")
		b.WriteString(topic)
		b.WriteString("\n")
	}
	b.WriteString("Please rephrase your question or contact the university office.")
	return b.String()
}
