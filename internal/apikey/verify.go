package apikey

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/spectatorcontext/spectator-cli/internal/errors"
	"github.com/spectatorcontext/spectator-cli/internal/mcpfile"
)

// verifyTimeout bounds the remote key check. Setup must stay snappy even
// when the service is down; configuration is local and never blocks on it.
const verifyTimeout = 5 * time.Second

// ErrKeyRejected indicates the service recognized the request and refused
// the key.
var ErrKeyRejected = errors.New("api key rejected by server")

// VerifyUnavailableError indicates the key could not be checked at all:
// network failure, timeout, or an unexpected server response. Callers
// downgrade it to a warning; an unreachable service says nothing about the
// key.
type VerifyUnavailableError struct {
	Err error
}

func (e *VerifyUnavailableError) Error() string {
	return fmt.Sprintf("key verification unavailable: %v", e.Err)
}

func (e *VerifyUnavailableError) Unwrap() error {
	return e.Err
}

// Verify asks the spectator service whether the key is accepted, with a
// short timeout. Only an explicit 401 or 403 rejects the key; every other
// failure mode is a *VerifyUnavailableError.
func Verify(ctx context.Context, client *http.Client, key string) error {
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	endpoint := mcpfile.BaseURL + "/" + url.PathEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "building verification request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &VerifyUnavailableError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrKeyRejected
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	default:
		return &VerifyUnavailableError{Err: errors.Newf("unexpected status %s", resp.Status)}
	}
}
