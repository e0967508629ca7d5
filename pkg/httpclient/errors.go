package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/Thamizhjaisankar-git/amazon-clone/pkg/errors"
)

const maxBodyBytes = 4 << 20

type errorEnvelope struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError consumes and closes a non-2xx response and maps it to
// an AppError. Bodies in the {"error":{code,message}} envelope keep their
// message; other bodies are quoted raw.
func ParseResponseError(resp *http.Response, source string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (read body: %w)", source, resp.StatusCode, err)
	}

	message := string(body)
	var env errorEnvelope
	if json.Unmarshal(body, &env) == nil && env.Error != nil {
		message = env.Error.Message
	}
	qualified := fmt.Sprintf("%s: %s", source, message)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		target := "unknown"
		if resp.Request != nil && resp.Request.URL != nil {
			target = resp.Request.URL.Path
		}
		return apperrors.NotFound(source, target)
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return apperrors.Unauthorized(qualified)
	case resp.StatusCode == http.StatusConflict:
		return apperrors.Conflict(qualified)
	case resp.StatusCode >= 500:
		return apperrors.Unavailable(fmt.Sprintf("%s returned status %d: %s", source, resp.StatusCode, message))
	default:
		return fmt.Errorf("%s returned status %d: %s", source, resp.StatusCode, message)
	}
}
