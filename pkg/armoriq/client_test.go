package armoriq

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"TaaraAgent/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func scheduleIntent() entity.Intent {
	return entity.Intent{
		RawInput:       "schedule a meeting tomorrow at 2pm",
		Classification: entity.ClassificationSchedule,
		Action:         entity.ActionSchedule,
		Parameters:     entity.Parameters{entity.ParamTitle: "Meeting", entity.ParamTime: "14:00"},
		Timestamp:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestVerifyRemoteSuccess(t *testing.T) {
	var gotHeaders http.Header
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		assert.Equal(t, "/v1/verify", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"risk_score":0.25,"verification_id":"ver_123"}`))
	}))
	defer srv.Close()

	client := New(testLogger(), Config{
		APIKey:       "key",
		Secret:       "s3cret",
		Endpoint:     srv.URL + "/v1",
		BypassSecret: "bypass",
	})

	result := client.Verify(context.Background(), scheduleIntent())

	assert.True(t, result.Verified)
	assert.Equal(t, entity.VerificationRemote, result.Mode)
	assert.Equal(t, 0.25, result.RiskScore)
	assert.Equal(t, "ver_123", result.VerificationID)
	assert.Empty(t, result.Error)

	require.NotNil(t, gotHeaders)
	assert.Equal(t, "key", gotHeaders.Get(HeaderAPIKey))
	assert.Equal(t, "bypass", gotHeaders.Get(HeaderBypass))
	assert.Equal(t, Sign("s3cret", gotBody), gotHeaders.Get(HeaderSignature))
	assert.Equal(t, result.Signature, gotHeaders.Get(HeaderSignature))

	var sent map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(gotBody, &sent))
	assert.Equal(t, "taara-agent", sent["source"])
	assert.Equal(t, "1.0.0", sent["version"])
	assert.Equal(t, gotHeaders.Get(HeaderTimestamp), sent["timestamp"])
	assert.Contains(t, sent, "intent")
}

func TestVerifyRemoteScoreIsClamped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"risk_score":7.5,"verification_id":"ver_hi"}`))
	}))
	defer srv.Close()

	result := New(testLogger(), Config{Endpoint: srv.URL}).Verify(context.Background(), scheduleIntent())
	assert.Equal(t, entity.VerificationRemote, result.Mode)
	assert.Equal(t, 1.0, result.RiskScore)
}

func TestVerifyOmitsEmptyBypassHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header[http.CanonicalHeaderKey(HeaderBypass)]
		assert.False(t, present)
		_, _ = w.Write([]byte(`{"risk_score":0,"verification_id":"v"}`))
	}))
	defer srv.Close()

	New(testLogger(), Config{Endpoint: srv.URL}).Verify(context.Background(), scheduleIntent())
}

func TestVerifyFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		errPart string
	}{
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"bad signature"}`))
			},
			errPart: "status 403: bad signature",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
			errPart: "unmarshal",
		},
		{
			name: "missing verification id",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"risk_score":0.1}`))
			},
			errPart: "verification_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			intent := scheduleIntent()
			result := New(testLogger(), Config{Endpoint: srv.URL}).Verify(context.Background(), intent)

			assert.True(t, result.Verified)
			assert.Equal(t, entity.VerificationFallback, result.Mode)
			assert.Equal(t, LocalScore(intent), result.RiskScore)
			assert.Equal(t, LocalVerificationID(intent), result.VerificationID)
			assert.Contains(t, result.Error, tt.errPart)
		})
	}
}

func TestVerifyTimeoutFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := New(testLogger(), Config{Endpoint: srv.URL, Timeout: 50 * time.Millisecond})

	start := time.Now()
	result := client.Verify(context.Background(), scheduleIntent())

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, entity.VerificationFallback, result.Mode)
	assert.NotEmpty(t, result.Error)
}

func TestVerifyCancelledContextFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"risk_score":0.9,"verification_id":"never"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	intent := entity.Intent{
		RawInput:   "delete everything from my calendar",
		Action:     entity.ActionDeleteAll,
		Parameters: entity.Parameters{entity.ParamScope: "all"},
	}
	result := New(testLogger(), Config{Endpoint: srv.URL}).Verify(ctx, intent)

	assert.Equal(t, entity.VerificationFallback, result.Mode)
	assert.Equal(t, 1.0, result.RiskScore)
}

func TestVerifyUnreachableFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	result := New(testLogger(), Config{Endpoint: url}).Verify(context.Background(), scheduleIntent())
	assert.Equal(t, entity.VerificationFallback, result.Mode)
	assert.Contains(t, result.Error, "failed to execute request")
}
