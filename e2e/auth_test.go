//go:build e2e

package e2e

import (
	"context"
	"net/http"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authServer manages the auth-enabled, sqlite-backed server for auth tests
type authServer struct {
	cmd *exec.Cmd
}

// startAuthServer starts a server with authentication enabled on port 18081
func startAuthServer(t *testing.T) *authServer {
	t.Helper()
	_ = os.Remove(authDBPath)

	ctx := context.Background()
	cmd := exec.CommandContext(ctx, testBinary,
		"--listen=localhost:18081",
		"--backend=sqlite",
		"--sqlite.path="+authDBPath,
		"--seed",
		"--auth.user="+testUser,
		"--auth.hash="+passwordHash,
	)
	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start auth server: %v", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, authBaseURL+"/ping", http.NoBody)
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return &authServer{cmd: cmd}
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	_ = cmd.Process.Kill()
	t.Fatalf("auth server not ready after 10s")
	return nil
}

func (s *authServer) stop() {
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
		_, _ = s.cmd.Process.Wait()
	}
}

// authLogin signs in with test credentials on the auth server
func authLogin(t *testing.T, page playwright.Page, password string) {
	t.Helper()
	_, err := page.Goto(authBaseURL + "/login")
	require.NoError(t, err)
	require.NoError(t, page.Locator("input[name='username']").Fill(testUser))
	require.NoError(t, page.Locator("input[name='password']").Fill(password))
	require.NoError(t, page.Locator("#login-form button[type='submit']").Click())
}

func TestAuth_LoginPageDisplays(t *testing.T) {
	srv := startAuthServer(t)
	defer srv.stop()

	page := newPage(t)
	_, err := page.Goto(authBaseURL + "/login")
	require.NoError(t, err)

	title, err := page.Title()
	require.NoError(t, err)
	assert.Equal(t, "Sign In", title)

	value, err := page.Locator("input[name='username']").InputValue()
	require.NoError(t, err)
	assert.Equal(t, testUser, value, "username prefilled")

	visible, err := page.Locator("input[name='password']").IsVisible()
	require.NoError(t, err)
	assert.True(t, visible, "password input should be visible")
}

func TestAuth_LoginValid(t *testing.T) {
	srv := startAuthServer(t)
	defer srv.stop()

	page := newPage(t)
	authLogin(t, page, testPassword)
	require.NoError(t, page.WaitForURL(authBaseURL+"/lists"))

	assert.Equal(t, "Welcome, admin!", flashText(t, page))

	visible, err := page.Locator("#logout").IsVisible()
	require.NoError(t, err)
	assert.True(t, visible, "logout link should be visible after login")

	count, err := page.Locator("ul.lists li").Count()
	require.NoError(t, err)
	assert.Equal(t, 4, count, "seeded database lists shown")
}

func TestAuth_LoginInvalid(t *testing.T) {
	srv := startAuthServer(t)
	defer srv.stop()

	page := newPage(t)
	authLogin(t, page, "wrongpassword")

	errorElement := page.Locator("#login-error")
	waitVisible(t, errorElement)
	assert.Contains(t, page.URL(), "/login", "should stay on login page")

	errorText, err := errorElement.TextContent()
	require.NoError(t, err)
	assert.Equal(t, "Invalid username or password", errorText)
}

func TestAuth_Logout(t *testing.T) {
	srv := startAuthServer(t)
	defer srv.stop()

	page := newPage(t)
	authLogin(t, page, testPassword)
	require.NoError(t, page.WaitForURL(authBaseURL+"/lists"))

	require.NoError(t, page.Locator("#logout").Click())
	require.NoError(t, page.WaitForURL("**/login"))

	// lists are protected again
	_, err := page.Goto(authBaseURL + "/lists")
	require.NoError(t, err)
	require.NoError(t, page.WaitForURL("**/login"))
}

func TestAuth_ProtectedRouteRedirects(t *testing.T) {
	srv := startAuthServer(t)
	defer srv.stop()

	page := newPage(t)
	_, err := page.Goto(authBaseURL + "/lists/1")
	require.NoError(t, err)
	require.NoError(t, page.WaitForURL("**/login"))
	assert.Contains(t, page.URL(), "/login", "should be redirected to login page")
}
