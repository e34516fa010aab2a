package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/faq"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/policy"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/searcher"
	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

const knowledgeJSON = `{
  "faq": [
    {"question": "What time is check-in?", "answer": "Check-in starts at 3 PM."},
    {"question": "Is there parking?", "answer": "Free parking is available on site."}
  ],
  "rooms": [
    {"room_type": "Single"},
    {"room_type": "Double", "price_per_night": 120}
  ]
}`

type fixture struct {
	server *httptest.Server
	engine *faq.Engine
	path   string
}

func newFixture(t *testing.T, load bool) *fixture {
	t.Helper()

	eng := faq.NewEngine(faq.Options{Logger: zerolog.Nop(), Capabilities: searcher.KeywordOnly()})
	t.Cleanup(func() { _ = eng.Close() })

	path := filepath.Join(t.TempDir(), "hotel.json")
	require.NoError(t, os.WriteFile(path, []byte(knowledgeJSON), 0o644))
	if load {
		require.NoError(t, eng.Load(context.Background(), path))
	}

	cfg := DefaultConfig()
	cfg.Now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }

	srv := httptest.NewServer(NewRouter(zerolog.Nop(), eng, cfg))
	t.Cleanup(srv.Close)

	return &fixture{server: srv, engine: eng, path: path}
}

func (f *fixture) post(t *testing.T, path, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(f.server.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(f.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decodeError(t *testing.T, data []byte) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func TestHealth(t *testing.T) {
	f := newFixture(t, false)

	resp, data := f.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), `"ready":false`)

	require.NoError(t, f.engine.Load(context.Background(), f.path))
	_, data = f.get(t, "/health")
	assert.Contains(t, string(data), `"ready":true`)
}

func TestAnswer(t *testing.T) {
	f := newFixture(t, true)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		check      func(t *testing.T, res types.AnswerResult)
	}{
		{
			name:       "hit",
			body:       `{"query": "what time is check-in"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, res types.AnswerResult) {
				assert.True(t, res.Found)
				assert.Equal(t, "Check-in starts at 3 PM.", res.Answer)
			},
		},
		{
			name:       "room types rule",
			body:       `{"query": "what room types do you have", "threshold": 1}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, res types.AnswerResult) {
				assert.Equal(t, types.KindRule, res.Kind)
				assert.Contains(t, res.Answer, "Single")
				assert.Contains(t, res.Answer, "Double")
			},
		},
		{
			name:       "empty query misses",
			body:       `{"query": ""}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, res types.AnswerResult) {
				assert.False(t, res.Found)
				assert.Equal(t, 0.0, res.Score)
				assert.NotNil(t, res.Suggestions)
			},
		},
		{"missing query", `{}`, http.StatusBadRequest, "missing_query", nil},
		{"bad json", `{"query":`, http.StatusBadRequest, "invalid_json", nil},
		{"unknown field", `{"query": "x", "limit": 3}`, http.StatusBadRequest, "invalid_json", nil},
		{"empty body", ``, http.StatusBadRequest, "empty_body", nil},
		{"bad threshold", `{"query": "parking", "threshold": 1.5}`, http.StatusBadRequest, "invalid_threshold", nil},
		{"bad top_k", `{"query": "parking", "top_k": -2}`, http.StatusBadRequest, "invalid_top_k", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := f.post(t, "/v1/answer", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, data).Code)
				return
			}

			var res types.AnswerResult
			require.NoError(t, json.Unmarshal(data, &res))
			tt.check(t, res)
		})
	}
}

func TestNotIndexed(t *testing.T) {
	f := newFixture(t, false)

	resp, data := f.post(t, "/v1/answer", `{"query": "parking"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "not_indexed", decodeError(t, data).Code)

	resp, _ = f.get(t, "/v1/status")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, data = f.post(t, "/v1/reload", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "no_source", decodeError(t, data).Code)
}

func TestStatusEndpoint(t *testing.T) {
	f := newFixture(t, true)

	resp, data := f.get(t, "/v1/status")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st faq.Status
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, types.BackendKeyword, st.Backend)
	assert.Equal(t, []string{"Single", "Double"}, st.RoomTypes)
	assert.NotEmpty(t, st.SampleQuestions)
}

func TestFeedback(t *testing.T) {
	f := newFixture(t, true)

	t.Run("coupon", func(t *testing.T) {
		resp, data := f.post(t, "/v1/feedback", `{"label": "positive", "confidence": 0.92}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out policy.Outcome
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, policy.ActionCoupon, out.Action)
		require.NotNil(t, out.Coupon)
		assert.Equal(t, "2024-05-31", out.Coupon.Expires)
	})

	t.Run("numeric refund", func(t *testing.T) {
		resp, data := f.post(t, "/v1/feedback", `{"label": 0, "confidence": 0.25, "amount": 80}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out policy.Outcome
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, policy.ActionRefund, out.Action)
		require.NotNil(t, out.Refund)
		assert.InDelta(t, 12.0, out.Refund.Amount, 1e-9)
	})

	t.Run("errors", func(t *testing.T) {
		resp, data := f.post(t, "/v1/feedback", `{"confidence": 0.5}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "missing_label", decodeError(t, data).Code)

		resp, data = f.post(t, "/v1/feedback", `{"label": "positive"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "missing_confidence", decodeError(t, data).Code)

		resp, data = f.post(t, "/v1/feedback", `{"label": "positive", "confidence": 7}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "invalid_feedback", decodeError(t, data).Code)
	})
}

func TestReload(t *testing.T) {
	f := newFixture(t, true)

	require.NoError(t, os.WriteFile(f.path, []byte(`{"faq": [{"question": "pool hours", "answer": "8am-10pm"}]}`), 0o644))
	resp, data := f.post(t, "/v1/reload", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st faq.Status
	require.NoError(t, json.Unmarshal(data, &st))
	assert.Equal(t, 1, st.Entries)

	require.NoError(t, os.WriteFile(f.path, []byte(`[`), 0o644))
	resp, data = f.post(t, "/v1/reload", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "invalid_knowledge", decodeError(t, data).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, true)

	f.post(t, "/v1/answer", `{"query": "parking"}`)
	resp, data := f.get(t, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(data), "faqbot_http_requests_total")
	assert.Contains(t, string(data), `path="/v1/answer"`)
}

func TestServeShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	go func() {
		done <- serveListener(ctx, zerolog.Nop(), ln, handler, ServerConfig{GracefulShutdown: time.Second})
	}()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Post("http://"+ln.Addr().String(), "text/plain", bytes.NewReader(nil))
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
