package apikey

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
)

func TestVerify_Accepted(t *testing.T) {
	defer gock.OffAll()
	gock.New("https://spectatorcontext.com").
		Get("/mcp-server/mcp/goodkey123").
		Reply(http.StatusOK).
		JSON(map[string]any{"status": "ok"})

	err := Verify(context.Background(), nil, "goodkey123")
	assert.NoError(t, err)
	assert.True(t, gock.IsDone())
}

func TestVerify_Rejected(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		func() {
			defer gock.OffAll()
			gock.New("https://spectatorcontext.com").
				Get("/mcp-server/mcp/badkey1234").
				Reply(status)

			err := Verify(context.Background(), nil, "badkey1234")
			assert.ErrorIs(t, err, ErrKeyRejected, "status %d", status)
		}()
	}
}

func TestVerify_ServerError(t *testing.T) {
	defer gock.OffAll()
	gock.New("https://spectatorcontext.com").
		Get("/mcp-server/mcp/goodkey123").
		Reply(http.StatusInternalServerError)

	err := Verify(context.Background(), nil, "goodkey123")

	var unavailable *VerifyUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.NotErrorIs(t, err, ErrKeyRejected)
}

func TestVerify_NetworkFailure(t *testing.T) {
	defer gock.OffAll()
	gock.New("https://spectatorcontext.com").
		Get("/mcp-server/mcp/goodkey123").
		ReplyError(errors.New("connection refused"))

	err := Verify(context.Background(), nil, "goodkey123")

	var unavailable *VerifyUnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.ErrorContains(t, err, "connection refused")
}
