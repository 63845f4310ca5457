package submit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/linkcheck/internal/linkcheck"
	"github.com/five82/linkcheck/internal/logging"
	"github.com/five82/linkcheck/internal/state"
	"github.com/five82/linkcheck/internal/table"
)

type fakeChecker struct {
	calls   atomic.Int32
	results []linkcheck.LinkResult
	err     error
	block   chan struct{}
}

func (f *fakeChecker) CheckLinks(ctx context.Context, req linkcheck.CheckRequest) ([]linkcheck.LinkResult, error) {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.results, f.err
}

func TestInvalidSubmissionIssuesNoRequest(t *testing.T) {
	checker := &fakeChecker{}
	c := New(checker, nil, logging.NewNop(), time.Second)

	_, err := c.Submit(context.Background(), Values("not-a-url", 1))
	require.Error(t, err)

	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, msgInvalidURL, fe[FieldURL])
	assert.Equal(t, int32(0), checker.calls.Load())
	assert.Equal(t, Idle, c.Phase())
}

func TestSubmitReplacesResults(t *testing.T) {
	checker := &fakeChecker{results: []linkcheck.LinkResult{{URL: "https://example.com/a", IsWorking: true}}}
	store := &state.Store{}
	c := New(checker, store, nil, time.Second)

	results, err := c.Submit(context.Background(), Values("https://example.com", 2))
	require.NoError(t, err)
	assert.Len(t, results, 1)

	snap := store.Snapshot()
	assert.True(t, snap.HasResults)
	assert.Equal(t, linkcheck.CheckRequest{URL: "https://example.com", Depth: 2}, snap.Request)
	assert.Equal(t, checker.results, snap.Results)
	assert.Equal(t, Idle, c.Phase())
}

func TestFailedSubmitKeepsPreviousResults(t *testing.T) {
	checker := &fakeChecker{results: []linkcheck.LinkResult{{URL: "kept"}}}
	store := &state.Store{}
	c := New(checker, store, nil, time.Second)

	_, err := c.Submit(context.Background(), Values("https://example.com", 1))
	require.NoError(t, err)

	checker.results = nil
	checker.err = &linkcheck.APIError{Path: "/api/check-links", StatusCode: 500, Message: "crawl exploded"}
	_, err = c.Submit(context.Background(), Values("https://other.example", 1))
	require.Error(t, err)

	var apiErr *linkcheck.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "crawl exploded", apiErr.Message)

	snap := store.Snapshot()
	assert.Equal(t, []linkcheck.LinkResult{{URL: "kept"}}, snap.Results)
	assert.Equal(t, "https://example.com", snap.Request.URL)
	assert.Equal(t, 1, snap.ConsecutiveFailures)
	assert.Equal(t, Idle, c.Phase())
	assert.Equal(t, int32(2), checker.calls.Load(), "no retry")
}

func TestPrepareRejectsWhileSubmitting(t *testing.T) {
	checker := &fakeChecker{block: make(chan struct{})}
	c := New(checker, nil, nil, 0)

	req, err := c.Prepare(Values("https://example.com", 1))
	require.NoError(t, err)
	assert.Equal(t, Submitting, c.Phase())
	assert.True(t, c.Busy())

	_, err = c.Prepare(Values("https://example.com", 1))
	assert.ErrorIs(t, err, ErrBusy)

	done := make(chan error, 1)
	go func() {
		_, err := c.Execute(context.Background(), req)
		done <- err
	}()
	close(checker.block)
	require.NoError(t, <-done)
	assert.Equal(t, Idle, c.Phase())
}

func TestExecuteTimesOut(t *testing.T) {
	checker := &fakeChecker{block: make(chan struct{})}
	defer close(checker.block)
	store := &state.Store{}
	c := New(checker, store, nil, 20*time.Millisecond)

	_, err := c.Submit(context.Background(), Values("https://example.com", 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Idle, c.Phase())
	assert.False(t, store.Snapshot().HasResults)
}

func TestSubmitEndToEnd(t *testing.T) {
	var got linkcheck.CheckRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/check-links", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"url":"https://example.com/a","is_working":true,"status_code":200,"response_time":"120"},
			{"url":"https://example.com/b","is_working":false,"status_code":404,"response_time":"2500"}
		]`))
	}))
	defer srv.Close()

	client, err := linkcheck.NewClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	store := &state.Store{}
	c := New(client, store, nil, 5*time.Second)

	_, err = c.Submit(context.Background(), Values("https://example.com", 2))
	require.NoError(t, err)
	assert.Equal(t, linkcheck.CheckRequest{URL: "https://example.com", Depth: 2}, got)

	tbl := table.NewTable(nil)
	tbl.SetRows(store.Snapshot().Results)
	view := tbl.View()

	require.Len(t, view.Rows, 2)
	assert.Equal(t, "https://example.com/b", view.Rows[0].URL)
	assert.Equal(t, "2.50s", view.Rows[0].FormattedResponseTime)
	assert.Equal(t, "https://example.com/a", view.Rows[1].URL)
	assert.Equal(t, "120.00ms", view.Rows[1].FormattedResponseTime)
}
