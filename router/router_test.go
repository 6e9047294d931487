package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoute(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name    string
		score   float64
		backend bool
		want    Strategy
	}{
		{"certainty", 1.0, true, StrategyCorpusExact},
		{"high boundary inclusive", 0.70, true, StrategyCorpusExact},
		{"just below high", 0.6999, true, StrategyCorpusCaveat},
		{"medium boundary inclusive", 0.40, true, StrategyCorpusCaveat},
		{"low band with backend", 0.30, true, StrategyGenerativeAugmented},
		{"low boundary inclusive", 0.25, true, StrategyGenerativeAugmented},
		{"low band without backend", 0.30, false, StrategyCorpusCaveat},
		{"below floor with backend", 0.10, true, StrategyGenerativePrimary},
		{"below floor without backend", 0.10, false, StrategyRefusal},
		{"zero without backend", 0, false, StrategyRefusal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.score, tt.backend, th))
		})
	}
}

func TestThresholdsValidate(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())
	assert.ErrorIs(t, Thresholds{High: 0.4, Medium: 0.4, Low: 0.25}.Validate(), ErrInvalidThresholds)
	assert.ErrorIs(t, Thresholds{High: 0.7, Medium: 0.2, Low: 0.25}.Validate(), ErrInvalidThresholds)
	assert.ErrorIs(t, Thresholds{High: 1.2, Medium: 0.4, Low: 0.25}.Validate(), ErrInvalidThresholds)
}

func TestCaveatAndRefusal(t *testing.T) {
	t.Run("caveat wraps the answer", func(t *testing.T) {
		wrapped := Caveat("The fee is BDT 70,000.")
		assert.Contains(t, wrapped, "The fee is BDT 70,000.")
		assert.Contains(t, wrapped, "not fully certain")
	})

	t.Run("refusal lists topics", func(t *testing.T) {
		msg := Refusal()
		assert.Contains(t, msg, "tuition and semester fees")
		assert.Contains(t, msg, "admission requirements")
	})
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "corpus_exact", StrategyCorpusExact.String())
	assert.Equal(t, "corpus_caveat", StrategyCorpusCaveat.String())
	assert.Equal(t, "generative_augmented", StrategyGenerativeAugmented.String())
	assert.Equal(t, "generative_primary", StrategyGenerativePrimary.String())
	assert.Equal(t, "refusal", Strategy(99).String())
}
