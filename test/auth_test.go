//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestRegisterLoginLogout() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	creds := newCredentials()
	resp := doRequest(ctx, t, "POST", "/users/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(resp.Body))

	resp = doRequest(ctx, t, "POST", "/users/register", "", creds)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	wrong := credentials{Email: creds.Email, Password: "not-the-password"}
	resp = doRequest(ctx, t, "POST", "/a/login", "", wrong)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(ctx, t, "POST", "/a/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp struct {
		Token string `json:"token"`
	}
	resp.decode(t, &loginResp)
	require.NotEmpty(t, loginResp.Token)

	resp = doRequest(ctx, t, "GET", "/sessions", loginResp.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(ctx, t, "POST", "/a/logout", loginResp.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(ctx, t, "GET", "/sessions", loginResp.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(ctx, t, "GET", "/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
