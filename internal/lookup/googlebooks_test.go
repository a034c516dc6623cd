package lookup_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anhtran/libris/internal/lookup"
	"github.com/anhtran/libris/internal/platform/apperr"
)

func newVolumesServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/volumes", request.URL.Path)
		assert.Equal(t, "isbn:9780747532699", request.URL.Query().Get("q"))

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

/*
TestGoogleBooks_Success verifies the field extraction from a matching volume:
first author, four-character year prefix.
*/
func TestGoogleBooks_Success(t *testing.T) {
	server := newVolumesServer(t, http.StatusOK, `{
		"totalItems": 1,
		"items": [{
			"volumeInfo": {
				"title": "Harry Potter and the Philosopher's Stone",
				"authors": ["J.K. Rowling", "Someone Else"],
				"publishedDate": "1997-06-30"
			}
		}]
	}`)

	client := lookup.NewGoogleBooksClient(server.URL, 5*time.Second)
	record, err := client.LookupByISBN(context.Background(), "9780747532699")
	require.NoError(t, err)

	assert.Equal(t, "Harry Potter and the Philosopher's Stone", record.Title)
	assert.Equal(t, "J.K. Rowling", record.AuthorName)
	assert.Equal(t, "1997", record.Year)
}

/*
TestGoogleBooks_SparseVolume verifies that absent optional fields yield
empty extracts rather than errors.
*/
func TestGoogleBooks_SparseVolume(t *testing.T) {
	server := newVolumesServer(t, http.StatusOK, `{
		"totalItems": 1,
		"items": [{"volumeInfo": {"title": "Untitled Proof"}}]
	}`)

	client := lookup.NewGoogleBooksClient(server.URL, 5*time.Second)
	record, err := client.LookupByISBN(context.Background(), "9780747532699")
	require.NoError(t, err)

	assert.Equal(t, "Untitled Proof", record.Title)
	assert.Empty(t, record.AuthorName)
	assert.Empty(t, record.Year)
}

/*
TestGoogleBooks_NoMatch verifies a zero-item response maps to NOT_FOUND.
*/
func TestGoogleBooks_NoMatch(t *testing.T) {
	server := newVolumesServer(t, http.StatusOK, `{"totalItems": 0}`)

	client := lookup.NewGoogleBooksClient(server.URL, 5*time.Second)
	_, err := client.LookupByISBN(context.Background(), "9780747532699")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestGoogleBooks_UpstreamFailures verifies that non-200 statuses and
malformed bodies both map to UPSTREAM_ERROR.
*/
func TestGoogleBooks_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server_error", http.StatusInternalServerError, `{}`},
		{"rate_limited", http.StatusTooManyRequests, `{}`},
		{"malformed_json", http.StatusOK, `{"totalItems": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newVolumesServer(t, tt.status, tt.body)

			client := lookup.NewGoogleBooksClient(server.URL, 5*time.Second)
			_, err := client.LookupByISBN(context.Background(), "9780747532699")
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "UPSTREAM_ERROR", ae.Code)
		})
	}
}

/*
TestGoogleBooks_Unreachable verifies a dead endpoint surfaces as
UPSTREAM_ERROR instead of a raw transport error.
*/
func TestGoogleBooks_Unreachable(t *testing.T) {
	server := newVolumesServer(t, http.StatusOK, `{}`)
	server.Close()

	client := lookup.NewGoogleBooksClient(server.URL, time.Second)
	_, err := client.LookupByISBN(context.Background(), "9780747532699")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPSTREAM_ERROR", ae.Code)
}
