package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/answerit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine is a canned Engine for handler tests.
type stubEngine struct {
	answer   *core.Response
	feedback *core.FeedbackResult
	err      error

	lastQuestion string
	lastVerdict  core.Verdict
}

func (s *stubEngine) Answer(ctx context.Context, question string) (*core.Response, error) {
	s.lastQuestion = question
	if s.err != nil {
		return nil, s.err
	}
	return s.answer, nil
}

func (s *stubEngine) Feedback(ctx context.Context, question, answer string, verdict core.Verdict) (*core.FeedbackResult, error) {
	s.lastQuestion = question
	s.lastVerdict = verdict
	if s.err != nil {
		return nil, s.err
	}
	return s.feedback, nil
}

func newTestServer(t *testing.T, engine Engine, opts ...Option) *httptest.Server {
	t.Helper()
	srv, err := New(engine, opts...)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEngineRequired)
}

func TestChat(t *testing.T) {
	engine := &stubEngine{
		answer: &core.Response{
			Answer:     "The semester fee for CSE is BDT 70,000.",
			Confidence: 1.0,
			Method:     "exact_question_match",
			Sources: []core.SourceRef{
				{Question: "What is the semester fee for CSE?", Source: "CSE_improved.json", Confidence: 1.0},
			},
		},
	}
	ts := newTestServer(t, engine)

	t.Run("answers a question", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/chat", map[string]string{"message": "What is the semester fee for CSE?"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body chatResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "The semester fee for CSE is BDT 70,000.", body.Answer)
		assert.Equal(t, 1.0, body.Confidence)
		assert.Equal(t, "exact_question_match", body.Method)
		require.Len(t, body.Sources, 1)
		assert.Equal(t, "CSE_improved.json", body.Sources[0].Source)
		assert.Equal(t, "What is the semester fee for CSE?", engine.lastQuestion)
	})

	t.Run("rejects empty message", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/chat", map[string]string{"message": "   "})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/chat", "application/json", bytes.NewReader([]byte("{broken")))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestFeedback(t *testing.T) {
	engine := &stubEngine{
		feedback: &core.FeedbackResult{Status: "recorded", Action: "answer_blocked", BlockedCount: 1},
	}
	ts := newTestServer(t, engine)

	t.Run("records a dislike", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/feedback", map[string]string{
			"question": "What is the fee?",
			"answer":   "Stale answer.",
			"feedback": "dislike",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body feedbackResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "recorded", body.Status)
		assert.Equal(t, "answer_blocked", body.Action)
		assert.Equal(t, 1, body.BlockedCount)
		assert.Equal(t, core.VerdictDislike, engine.lastVerdict)
	})

	t.Run("rejects unknown verdict", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/feedback", map[string]string{
			"question": "q", "answer": "a", "feedback": "meh",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		resp := postJSON(t, ts.URL+"/feedback", map[string]string{"feedback": "like"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHealthAndStats(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		ts := newTestServer(t, &stubEngine{})
		resp, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("stats disabled", func(t *testing.T) {
		ts := newTestServer(t, &stubEngine{})
		resp, err := http.Get(ts.URL + "/stats")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("stats enabled", func(t *testing.T) {
		ts := newTestServer(t, &stubEngine{}, WithStats(func() any {
			return map[string]int{"corpus_size": 42}
		}))
		resp, err := http.Get(ts.URL + "/stats")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]int
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 42, body["corpus_size"])
	})
}
