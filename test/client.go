//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/2beens/liftlog/internal/auth"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	StatusCode int
	Body       []byte
}

func (r apiResponse) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), string(r.Body))
}

// doRequest sends body (if not nil) as JSON and returns the whole response.
func doRequest(ctx context.Context, t *testing.T, method, path, token string, body any) apiResponse {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return apiResponse{
		StatusCode: resp.StatusCode,
		Body:       respBytes,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func newCredentials() credentials {
	return credentials{
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 12),
	}
}

// registerAndLogin creates a fresh user and returns its login token.
func registerAndLogin(ctx context.Context, t *testing.T) string {
	t.Helper()
	creds := newCredentials()

	resp := doRequest(ctx, t, "POST", "/users/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))

	resp = doRequest(ctx, t, "POST", "/a/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(resp.Body))

	var loginResp struct {
		Token string `json:"token"`
	}
	resp.decode(t, &loginResp)
	require.NotEmpty(t, loginResp.Token)

	return loginResp.Token
}
