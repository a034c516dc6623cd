package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/anhtran/libris/internal/platform/apperr"
	"github.com/anhtran/libris/internal/platform/constants"
)

// GoogleBooksClient implements [Client] against the Google Books volumes
// API. The upstream is treated as untrusted: absent fields, empty lists,
// non-2xx statuses, and malformed bodies all map to clean errors.
type GoogleBooksClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewGoogleBooksClient builds a client with the given base URL (e.g.
// "https://www.googleapis.com/books/v1") and per-request timeout.
//
// The timeout covers the full round trip; expiry surfaces as an upstream
// error rather than an unbounded hang. No retries are performed — a failed
// lookup is resubmitted by the caller if desired.
func NewGoogleBooksClient(baseURL string, timeout time.Duration) *GoogleBooksClient {
	return &GoogleBooksClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(constants.LookupRateLimitRPS), 1),
	}
}

// volumesResponse matches the subset of the volumes payload we extract.
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			PublishedDate string   `json:"publishedDate"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// LookupByISBN fetches the first record matching the identifier.
func (client *GoogleBooksClient) LookupByISBN(context context.Context, isbn string) (*Record, error) {
	if err := client.limiter.Wait(context); err != nil {
		return nil, apperr.Upstream("Lookup was cancelled", err)
	}

	endpoint := fmt.Sprintf("%s/volumes?q=%s", client.baseURL, url.QueryEscape("isbn:"+isbn))

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	request.Header.Set("User-Agent", constants.AppName+"/"+constants.AppVersion)

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.Upstream("Bibliographic service is unreachable", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, apperr.Upstream(
			"Bibliographic service returned an error",
			fmt.Errorf("googlebooks: unexpected status code %d", response.StatusCode),
		)
	}

	var payload volumesResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, apperr.Upstream("Bibliographic service returned a malformed response", err)
	}

	if payload.TotalItems == 0 || len(payload.Items) == 0 {
		return nil, apperr.NotFound("ISBN")
	}

	// Only the first matching record is considered.
	info := payload.Items[0].VolumeInfo

	record := &Record{Title: info.Title}
	if len(info.Authors) > 0 {
		record.AuthorName = info.Authors[0]
	}
	if len(info.PublishedDate) >= 4 {
		record.Year = info.PublishedDate[:4]
	}

	return record, nil
}
