package indexer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jinford/log-indexer/internal/module/analyzer/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "baseURL is required")
}

func TestNew_RejectsNegativeTimeout(t *testing.T) {
	_, err := New("http://analyzer", "", WithTimeout(-time.Second))
	require.Error(t, err)
}

func TestNew_TimeoutDoesNotModifySharedClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Second}

	c, err := New("http://analyzer", "", WithHTTPClient(shared), WithTimeout(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, time.Second, shared.Timeout)
	assert.Equal(t, time.Minute, c.httpClient.Timeout)
	assert.NotSame(t, shared, c.httpClient)
}

func TestClient_Index(t *testing.T) {
	var received []domain.IndexLaunch
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/_index", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_ = json.NewEncoder(w).Encode(BatchIndexRS{
			Took:   3,
			Errors: true,
			Items: []IndexRSItem{
				{Index: IndexRSIndex{ID: "1", Status: http.StatusCreated}},
				{Index: IndexRSIndex{ID: "2", Status: http.StatusCreated}},
				{Index: IndexRSIndex{ID: "3", Status: http.StatusBadRequest}},
			},
		})
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", "secret")
	require.NoError(t, err)

	launches := []domain.IndexLaunch{{
		LaunchID:       1,
		LaunchName:     "nightly",
		ProjectID:      2,
		AnalyzerConfig: domain.DefaultAnalyzerConfig(),
		TestItems: []domain.IndexTestItem{{
			TestItemID: 3,
			Logs:       []domain.IndexLog{{LogID: 4, LogLevel: domain.LogLevelError, Message: "e"}},
		}},
	}}

	count, err := c.Index(context.Background(), launches)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, launches, received)
}

func TestClient_Index_EmptyBatchSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c, err := New(srv.URL, "")
	require.NoError(t, err)

	count, err := c.Index(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
	assert.False(t, called)
}

func TestClient_Index_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"elasticsearch is down"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, "")
	require.NoError(t, err)

	_, err = c.Index(context.Background(), []domain.IndexLaunch{{LaunchID: 1}})
	require.Error(t, err)
	assert.True(t, HasStatusCode(err, http.StatusServiceUnavailable))
	assert.Contains(t, err.Error(), "index logs: HTTP 503: elasticsearch is down")
}

func TestClient_DeleteIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path != "/_index/5" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(srv.URL, "")
	require.NoError(t, err)

	require.NoError(t, c.DeleteIndex(context.Background(), 5))

	err = c.DeleteIndex(context.Background(), 6)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClient_CleanIndex(t *testing.T) {
	var received CleanIndexRQ
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/_index/clean", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(srv.URL, "")
	require.NoError(t, err)

	require.NoError(t, c.CleanIndex(context.Background(), 7, []int64{1, 2, 3}))
	assert.Equal(t, CleanIndexRQ{Project: 7, IDs: []int64{1, 2, 3}}, received)
}

func TestBatchIndexRS_Counts(t *testing.T) {
	rs := BatchIndexRS{Items: []IndexRSItem{
		{Index: IndexRSIndex{Status: http.StatusCreated}},
		{Index: IndexRSIndex{Status: http.StatusOK}},
	}}
	assert.Equal(t, int64(1), rs.Created())
	assert.Equal(t, int64(1), rs.Failed())
}
