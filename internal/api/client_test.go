package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallDecodesSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/stats", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"total_students": 120, "total_submissions": 540, "auto_approved_rate": 68.5, "pending_review": 15, "avg_confidence": 0.92}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, stats.TotalStudents)
	assert.Equal(t, 68.5, stats.AutoApprovedRate)
}

func TestCallParsesDetailOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Invalid password"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "x@uohyd.ac.in", "wrong")
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
	assert.Equal(t, "Invalid password", reqErr.Message)
}

func TestCallFallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Get(context.Background(), "/data/schools", &[]School{})
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Message, "status 500")
}

func TestCallReturnsNetworkErrorWithoutResponse(t *testing.T) {
	// Point at a closed server so the dial fails.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL)
	err := c.Get(context.Background(), "/data/stats", &Stats{})
	require.Error(t, err)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "/data/stats", netErr.Endpoint)
}

func TestUpdateAttendanceEncodesQuery(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		assert.Equal(t, http.MethodPut, r.Method)
		w.Write([]byte(`{"success": true, "message": "Attendance updated successfully"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.UpdateAttendance(context.Background(), "att42", 18)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "/data/attendance/att42", gotPath)
	assert.Equal(t, "attended=18", gotQuery)
}

func TestVerifySubmissionSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/submission/s7/verify", r.URL.Path)
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		assert.Contains(t, string(body), `"teacher_score":85`)
		assert.Contains(t, string(body), `"approved":true`)
		w.Write([]byte(`{"success": true, "message": "Submission verified successfully"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.VerifySubmission(context.Background(), "s7", 85, "good work", true)
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestMalformedSuccessBodyIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_students": `))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Get(context.Background(), "/data/stats", &Stats{})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "malformed response body", reqErr.Message)
}
