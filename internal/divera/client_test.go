package divera

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alarmbridge/alarmbridge/internal/logger"
)

const pullFixture = `{
	"data": {
		"user": {"firstname": "Max", "lastname": "Muster", "email": "max@example.org", "accesskey": "secret-key"},
		"status": {"status_id": 1, "status_set_date": 1700000300},
		"cluster": {
			"status": {"1": {"name": "Available"}},
			"statussorting": [1],
			"vehicle": {},
			"group": {},
			"version_id": 2
		},
		"events": {"items": {}, "sorting": []},
		"alarm": {"items": {}, "sorting": []},
		"news": {"items": {}, "sorting": []},
		"ucr": {"901": {"name": "Fire Station", "cluster_id": 55, "usergroup_id": 4}},
		"ucr_active": 901,
		"ucr_default": 901
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, ucrID string) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClient(Options{
		HTTPClient: ts.Client(),
		Logger:     logger.Nop(),
		BaseURL:    ts.URL,
		AccessKey:  "secret-key",
		UCRID:      ucrID,
		Now:        func() time.Time { return time.Unix(1700000000, 0) },
	})
}

func TestPull(t *testing.T) {
	var gotQuery map[string][]string
	var gotPath string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pullFixture))
	}, "901")

	snap, raw, err := client.Pull(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, "/api/v2/pull/all", gotPath)
	assert.Equal(t, []string{"secret-key"}, gotQuery["accesskey"])
	assert.Equal(t, []string{"901"}, gotQuery["ucr"])
	// All three cache busters carry the current timestamp.
	assert.Equal(t, []string{"1700000000"}, gotQuery["ts_statusplan"])
	assert.Equal(t, []string{"1700000000"}, gotQuery["ts_localmonitor"])
	assert.Equal(t, []string{"1700000000"}, gotQuery["ts_monitor"])

	assert.Equal(t, "Max", snap.Data.User.Firstname)
	assert.Equal(t, int64(901), snap.Data.UCRActive)
	assert.JSONEq(t, pullFixture, string(raw))
}

func TestPullOmitsUCRWhenUnscoped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("ucr") {
			t.Error("unscoped pull must not send a ucr parameter")
		}
		_, _ = w.Write([]byte(pullFixture))
	}, "")

	_, _, err := client.Pull(context.Background())
	require.NoError(t, err)
}

func TestPullFailureClassification(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			want: ErrAuth,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: ErrConnection,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{not json"))
			},
			want: ErrConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler, "901")
			_, _, err := client.Pull(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.NotContains(t, err.Error(), "secret-key",
				"credential must never leak into errors")
		})
	}
}

func TestSetStatus(t *testing.T) {
	var gotBody []byte
	var gotQuery map[string][]string
	var gotMethod, gotPath string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}, "901")

	require.NoError(t, client.SetStatus(context.Background(), 2))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v2/statusgeber/set-status", gotPath)
	assert.Equal(t, []string{"secret-key"}, gotQuery["accesskey"])
	assert.Equal(t, []string{"901"}, gotQuery["ucr"])

	var body map[string]map[string]int64
	require.NoError(t, json.Unmarshal(gotBody, &body))
	assert.Equal(t, int64(2), body["Status"]["id"])
}

func TestSetStatusFailureClassification(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, "901")
	err := client.SetStatus(context.Background(), 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAuth))
}
