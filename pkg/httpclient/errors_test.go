package httpclient

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Thamizhjaisankar-git/amazon-clone/pkg/errors"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    &http.Request{URL: &url.URL{Path: "/catalog.json"}},
	}
}

func TestParseResponseError(t *testing.T) {
	envelope := `{"error":{"code":"X","message":"bad thing"}}`

	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		contains string
	}{
		{"not found", http.StatusNotFound, envelope, apperrors.ErrNotFound, "/catalog.json"},
		{"bad request keeps message", http.StatusBadRequest, envelope, apperrors.ErrInvalidInput, "catalog: bad thing"},
		{"forbidden", http.StatusForbidden, envelope, apperrors.ErrUnauthorized, "bad thing"},
		{"conflict", http.StatusConflict, envelope, apperrors.ErrConflict, "bad thing"},
		{"server error", http.StatusBadGateway, "<html>oops</html>", apperrors.ErrServiceUnavail, "502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseResponseError(response(tt.status, tt.body), "catalog")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParseResponseError_OtherStatusQuotesRawBody(t *testing.T) {
	err := ParseResponseError(response(http.StatusTeapot, "short and stout"), "catalog")
	require.Error(t, err)
	assert.Equal(t, "catalog returned status 418: short and stout", err.Error())
}

func TestParseResponseError_NoRequest(t *testing.T) {
	resp := response(http.StatusNotFound, "")
	resp.Request = nil
	err := ParseResponseError(resp, "catalog")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
