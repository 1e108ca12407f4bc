package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/travel-match/gateway/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func writeEnvelope(t *testing.T, w http.ResponseWriter, code int, message string, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
		"code":    code,
		"message": message,
		"data":    data,
	}))
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/messages/overview", r.URL.Path)
		writeEnvelope(t, w, 0, "", map[string]int{"totalUnread": 7})
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", WithTokenSource(staticToken("abc")))
	overview, err := c.Overview(context.Background()).Get()
	require.NoError(t, err)
	assert.Equal(t, 7, overview.TotalUnread)
	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestNoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeEnvelope(t, w, 0, "", []models.NoteSummary{{ID: 1, Title: "Lijiang"}})
	}))
	defer srv.Close()

	res := New(srv.URL, WithTokenSource(staticToken(""))).Notes(context.Background())
	require.True(t, res.IsOk())
	assert.Len(t, res.Value(), 1)
}

func TestNonZeroCodeIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, 40001, "note not found", nil)
	}))
	defer srv.Close()

	res := New(srv.URL).Note(context.Background(), 9)
	require.False(t, res.IsOk())
	var apiErr *APIError
	require.ErrorAs(t, res.Err(), &apiErr)
	assert.Equal(t, 40001, apiErr.Code)
	assert.Equal(t, "note not found", apiErr.Message)
}

func TestEmptyMessageFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, 500, "", nil)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Feeds(context.Background()).Get()
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, DefaultFailureMessage, apiErr.Message)
}

func TestUnauthorizedRunsHook(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		cleared := 0
		c := New(srv.URL, WithTokenSource(staticToken("stale")), WithAuthFailureHandler(func() { cleared++ }))
		_, err := c.MyRoutes(context.Background()).Get()
		srv.Close()

		assert.True(t, IsUnauthorized(err), "status %d", status)
		assert.Equal(t, 1, cleared, "status %d", status)
	}
}

func TestServerErrorWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Feeds(context.Background()).Get()
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Status)
}

func TestPostSendsJSONBodyAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/messages/chat/42":
			assert.Equal(t, http.MethodPost, r.Method)
			var body models.SendChatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "text", body.Type)
			assert.Empty(t, body.SpotJSON)
			writeEnvelope(t, w, 0, "", map[string]any{"id": 5, "senderId": 1, "content": body.Content, "type": "text", "createdAt": []int{2024, 3, 5, 9, 30, 0}})
		case "/messages/interactions":
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
			assert.Equal(t, "like", r.URL.Query().Get("category"))
			writeEnvelope(t, w, 0, "", map[string]any{"list": []any{}, "total": 0, "page": 2, "pageSize": 10})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	msg, err := c.SendChatMessage(context.Background(), 42, models.SendChatRequest{Content: "hi", SpotJSON: "{}"}).Get()
	require.NoError(t, err)
	assert.Equal(t, int64(5), msg.ID)
	assert.Equal(t, []int{2024, 3, 5, 9, 30, 0}, msg.CreatedAt.Parts)

	page, err := c.InteractionList(context.Background(), 2, 10, "like").Get()
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
}

func TestResultVariants(t *testing.T) {
	ok := Ok(3)
	assert.True(t, ok.IsOk())
	assert.Equal(t, 3, ok.Value())

	failed := Fail[int](nil)
	assert.False(t, failed.IsOk())
	assert.EqualError(t, failed.Err(), DefaultFailureMessage)
	assert.Zero(t, failed.Value())
}
