package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRouter(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	srv := httptest.NewServer(NewRouter(zap.New(core), 5*time.Second))
	defer srv.Close()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		want   string
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK, "OK"},
		{"decimal", http.MethodPost, "/api/dates/decimal", `{"year":"2015","month":"1","day":"15"}`, http.StatusOK, `"date":"2015.038356"`},
		{"tip", http.MethodPost, "/api/dates/tip", `{"date":"2015"}`, http.StatusOK, `"precision":"year"`},
		{"range", http.MethodPost, "/api/dates/range", `{"range":"2014.5-2015"}`, http.StatusOK, `"lower":2014.5`},
		{"histogram", http.MethodPost, "/api/msa/histogram", `{"fasta":">a\nAC\n"}`, http.StatusOK, `"alphabet":"ACGTRYWSKMDVHBN-?"`},
		{"lengths", http.MethodPost, "/api/msa/lengths", `{"fasta":">a|b\nA-\n"}`, http.StatusOK, `"ungapped":1`},
		{"bad body", http.MethodPost, "/api/dates/tip", `{`, http.StatusBadRequest, "invalid request body"},
		{"wrong method", http.MethodGet, "/api/dates/tip", "", http.StatusMethodNotAllowed, ""},
		{"unknown", http.MethodGet, "/api/nothing", "", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.want != "" {
				var sb strings.Builder
				_, err := io.Copy(&sb, resp.Body)
				require.NoError(t, err)
				assert.Contains(t, sb.String(), tt.want)
			}
		})
	}

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, len(tests))
	first := entries[0].ContextMap()
	assert.Equal(t, "/health", first["path"])
	assert.EqualValues(t, http.StatusOK, first["status"])
	assert.NotEmpty(t, first["request_id"])
}
