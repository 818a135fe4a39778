package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/valorant-report/internal/config"
	"github.com/mauv0809/valorant-report/internal/henrik"
	"github.com/mauv0809/valorant-report/internal/metrics"
	"github.com/mauv0809/valorant-report/internal/notifier"
	"github.com/mauv0809/valorant-report/internal/pubsub"
	"github.com/mauv0809/valorant-report/internal/report"
	"github.com/mauv0809/valorant-report/internal/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const testSlackSigningSecret = "test-signing-secret"

type testDeps struct {
	builder  *report.Mock
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
	metrics  *metrics.Service
}

// setupTestServer initializes a new server with mock collaborators.
// A nil pubsub client makes slash commands answer inline.
func setupTestServer(t *testing.T, withPubSub bool, slackSigningSecret string) (*Server, testDeps) {
	t.Helper()

	deps := testDeps{
		builder:  report.NewMock(),
		notifier: notifier.NewMock(),
	}
	cfg := config.Config{
		Slack:  config.SlackConfig{Token: "xoxb-test", SigningSecret: slackSigningSecret},
		PubSub: config.PubSubConfig{Topic: string(pubsub.EventStatsRequested)},
	}

	reg := prometheus.NewRegistry()
	deps.metrics = metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	var ps pubsub.PubSubClient
	if withPubSub {
		deps.pubsub = pubsub.NewMock("TEST")
		ps = deps.pubsub
	}
	server := NewServer(deps.metrics, metricsHandler, cfg, deps.builder, deps.notifier, ps)
	return server, deps
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	bodyBytes := []byte(form.Encode())
	req, err := http.NewRequest("POST", targetURL, bytes.NewReader(bodyBytes))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, string(bodyBytes))
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))

	return req
}

// createPushRequest wraps a msgpack payload the way a Pub/Sub push subscription does.
func createPushRequest(t *testing.T, payload any) *http.Request {
	t.Helper()

	data, err := msgpack.Marshal(payload)
	require.NoError(t, err)
	body, err := json.Marshal(map[string]any{
		"message":      map[string]any{"data": data, "message_id": "m-1"},
		"subscription": "projects/test/subscriptions/stats-requested",
	})
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/pubsub/stats-requested", bytes.NewReader(body))
	require.NoError(t, err)
	return req
}

func TestHealthCheckHandler(t *testing.T) {
	server, _ := setupTestServer(t, false, "")

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestMetricsEndpoint(t *testing.T) {
	server, deps := setupTestServer(t, false, "")
	deps.metrics.IncReportsBuilt()

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "valorant_reports_built_total 1")
}

func TestStatsAPIHandler(t *testing.T) {
	t.Run("returns the report as JSON", func(t *testing.T) {
		server, deps := setupTestServer(t, false, "")
		deps.builder.BuildFunc = func(name, tag string) (*report.Report, error) {
			return &report.Report{Name: name, Tag: tag, Stats: &stats.AggregateResult{KDRatio: 1.5, WinRate: 60}}, nil
		}

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/stats?player="+url.QueryEscape("Sample Name#JP1"), nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var got report.Report
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "Sample Name", got.Name)
		assert.Equal(t, "JP1", got.Tag)
		require.NotNil(t, got.Stats)
		assert.Equal(t, 60, got.Stats.WinRate)
	})

	t.Run("accepts name and tag parameters", func(t *testing.T) {
		server, deps := setupTestServer(t, false, "")

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/stats?name=Player&tag=EU1", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, deps.builder.Calls(), 1)
		assert.Equal(t, report.BuildCall{Name: "Player", Tag: "EU1"}, deps.builder.Calls()[0])
	})

	t.Run("status codes", func(t *testing.T) {
		tests := []struct {
			name     string
			query    string
			buildErr error
			want     int
		}{
			{name: "missing player", query: "", want: http.StatusBadRequest},
			{name: "malformed player", query: "?player=nohash", want: http.StatusBadRequest},
			{name: "unknown player", query: "?player=ghost%230000", buildErr: henrik.ErrPlayerNotFound, want: http.StatusNotFound},
			{name: "upstream failure", query: "?player=p%23t", buildErr: fmt.Errorf("boom"), want: http.StatusBadGateway},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				server, deps := setupTestServer(t, false, "")
				deps.builder.BuildFunc = func(name, tag string) (*report.Report, error) {
					return nil, tt.buildErr
				}

				rr := httptest.NewRecorder()
				server.Router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/stats"+tt.query, nil))

				assert.Equal(t, tt.want, rr.Code)
			})
		}
	})
}

func TestStatsCommandHandler_Inline(t *testing.T) {
	server, deps := setupTestServer(t, false, testSlackSigningSecret)
	deps.notifier.FormatReportResponseFunc = func(r *report.Report) (any, error) {
		return slack.NewBlockMessage(), nil
	}

	form := url.Values{"text": {"Player#JP1"}, "channel_id": {"C123"}, "user_name": {"someone"}}
	req := createSlackCommandRequest(t, "/slack/command/stats", form, testSlackSigningSecret)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, deps.builder.Calls(), 1)
	assert.Equal(t, report.BuildCall{Name: "Player", Tag: "JP1"}, deps.builder.Calls()[0])
}

func TestStatsCommandHandler_PlayerNotFound(t *testing.T) {
	server, deps := setupTestServer(t, false, testSlackSigningSecret)
	deps.builder.BuildFunc = func(name, tag string) (*report.Report, error) {
		return nil, henrik.ErrPlayerNotFound
	}
	var query string
	deps.notifier.FormatPlayerNotFoundResponseFunc = func(q string) (any, error) {
		query = q
		return slack.NewBlockMessage(), nil
	}

	form := url.Values{"text": {"ghost#0000"}, "channel_id": {"C123"}}
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, createSlackCommandRequest(t, "/slack/command/stats", form, testSlackSigningSecret))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ghost#0000", query)
}

func TestStatsCommandHandler_Usage(t *testing.T) {
	server, deps := setupTestServer(t, true, testSlackSigningSecret)
	var usageErr error
	deps.notifier.FormatUsageResponseFunc = func(err error) (any, error) {
		usageErr = err
		return slack.NewBlockMessage(), nil
	}

	form := url.Values{"text": {"no-separator"}, "channel_id": {"C123"}}
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, createSlackCommandRequest(t, "/slack/command/stats", form, testSlackSigningSecret))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Error(t, usageErr)
	assert.Empty(t, deps.pubsub.SendMessageCalls)
	assert.Empty(t, deps.builder.Calls())
}

func TestStatsCommandHandler_PublishesRequest(t *testing.T) {
	server, deps := setupTestServer(t, true, testSlackSigningSecret)
	deps.notifier.FormatPendingResponseFunc = func() (any, error) {
		return slack.NewBlockMessage(), nil
	}

	form := url.Values{"text": {"Sample Name#JP1"}, "channel_id": {"C123"}, "user_id": {"U42"}}
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, createSlackCommandRequest(t, "/slack/command/stats", form, testSlackSigningSecret))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, deps.builder.Calls(), "the report is built by the push handler")
	require.Len(t, deps.pubsub.SendMessageCalls, 1)
	call := deps.pubsub.SendMessageCalls[0]
	assert.Equal(t, pubsub.EventStatsRequested, call.Topic)
	req, ok := call.Data.(pubsub.StatsRequest)
	require.True(t, ok)
	assert.NotEmpty(t, req.RequestID)
	assert.Equal(t, "Sample Name", req.Name)
	assert.Equal(t, "JP1", req.Tag)
	assert.Equal(t, "C123", req.ChannelID)
	assert.Equal(t, "U42", req.UserID)
}

func TestStatsCommandHandler_RejectsBadSignature(t *testing.T) {
	server, deps := setupTestServer(t, true, testSlackSigningSecret)

	form := url.Values{"text": {"Player#JP1"}, "channel_id": {"C123"}}
	req := createSlackCommandRequest(t, "/slack/command/stats", form, "some-other-secret")
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Empty(t, deps.pubsub.SendMessageCalls)
}

func TestStatsRequestedHandler(t *testing.T) {
	t.Run("builds and sends the report", func(t *testing.T) {
		server, deps := setupTestServer(t, true, "")
		payload := pubsub.StatsRequest{RequestID: "req-1", Name: "Player", Tag: "JP1", ChannelID: "C123"}

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, createPushRequest(t, payload))

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, deps.notifier.SendReportCalls, 1)
		assert.Equal(t, "C123", deps.notifier.SendReportCalls[0].ChannelID)
		assert.Equal(t, "Player", deps.notifier.SendReportCalls[0].Report.Name)
	})

	t.Run("unknown player gets a not found reply", func(t *testing.T) {
		server, deps := setupTestServer(t, true, "")
		deps.builder.BuildFunc = func(name, tag string) (*report.Report, error) {
			return nil, henrik.ErrPlayerNotFound
		}

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, createPushRequest(t, pubsub.StatsRequest{RequestID: "req-2", Name: "ghost", Tag: "0000", ChannelID: "C1"}))

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, deps.notifier.SendPlayerNotFoundCalls, 1)
		assert.Equal(t, "ghost#0000", deps.notifier.SendPlayerNotFoundCalls[0].Query)
		assert.Empty(t, deps.notifier.SendReportCalls)
	})

	t.Run("upstream failure gets a failure reply", func(t *testing.T) {
		server, deps := setupTestServer(t, true, "")
		deps.builder.BuildFunc = func(name, tag string) (*report.Report, error) {
			return nil, fmt.Errorf("timeout")
		}

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, createPushRequest(t, pubsub.StatsRequest{RequestID: "req-3", Name: "p", Tag: "t", ChannelID: "C1"}))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{"C1"}, deps.notifier.SendFailureCalls)
	})

	t.Run("bad envelopes are rejected", func(t *testing.T) {
		server, _ := setupTestServer(t, true, "")

		for _, body := range []string{"not json", `{"message":{}}`, `{"message":{"data":"bm90IG1zZ3BhY2s="}}`} {
			rr := httptest.NewRecorder()
			req, err := http.NewRequest("POST", "/pubsub/stats-requested", strings.NewReader(body))
			require.NoError(t, err)
			server.Router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		}
	})

	t.Run("redelivery while in flight is acknowledged once", func(t *testing.T) {
		server, deps := setupTestServer(t, true, "")
		started := make(chan struct{})
		unblock := make(chan struct{})
		var once sync.Once
		deps.builder.BuildFunc = func(name, tag string) (*report.Report, error) {
			once.Do(func() { close(started) })
			<-unblock
			return &report.Report{Name: name, Tag: tag}, nil
		}
		payload := pubsub.StatsRequest{RequestID: "req-dup", Name: "p", Tag: "t", ChannelID: "C1"}

		first := httptest.NewRecorder()
		firstReq := createPushRequest(t, payload)
		done := make(chan struct{})
		go func() {
			server.Router.ServeHTTP(first, firstReq)
			close(done)
		}()
		<-started

		second := httptest.NewRecorder()
		server.Router.ServeHTTP(second, createPushRequest(t, payload))
		close(unblock)
		<-done

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusOK, second.Code)
		assert.Len(t, deps.builder.Calls(), 1)
		assert.Len(t, deps.notifier.SendReportCalls, 1)
	})
}

func TestSlackRoutesDisabledWithoutNotifier(t *testing.T) {
	reg := prometheus.NewRegistry()
	server := NewServer(metrics.NewService(reg), metrics.NewMetricsHandler(reg), config.Config{}, report.NewMock(), nil, nil)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, httptest.NewRequest("POST", "/slack/command/stats", io.NopCloser(strings.NewReader(""))))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
