package test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/stretchr/testify/require"

	"github.com/liftlog/liftlog/internal/auth"
)

func (s *IntegrationTestSuite) TestLoginLogout() {
	ctx := context.Background()
	token := doLogin(ctx, s.T())
	require.NotEmpty(s.T(), token)
	doLogout(ctx, s.T(), token)

	// the token must not work after logout
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/stats/summary?user_id=u1", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(auth.AuthTokenHeader, token)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestLogin_WrongCredentials() {
	ctx := context.Background()

	form := url.Values{}
	form.Set("username", testUsername)
	form.Set("password", "not-the-password")

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/a/login", serverEndpoint),
		strings.NewReader(form.Encode()),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestProtectedRouteWithoutToken() {
	ctx := context.Background()

	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/workouts/1", serverEndpoint),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
}
