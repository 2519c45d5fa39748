package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-web/models"
	"todo-web/utils"
)

// resetTokenFromMail pulls the token out of the emailed reset link.
func resetTokenFromMail(t *testing.T, mail sentMail) string {
	t.Helper()

	const marker = "/reset_password/"
	i := strings.LastIndex(mail.Body, marker)
	require.GreaterOrEqual(t, i, 0, "mail body should contain a reset link")
	return mail.Body[i+len(marker):]
}

func TestForgotPassword_IdenticalResponseForKnownAndUnknownEmail(t *testing.T) {
	app := newTestApp(t)
	register(t, app, newBrowser(t), "al", "a@x.com", "p")

	known := newBrowser(t)
	knownResp := postForm(t, known, app.srv.URL+"/forgot_password", url.Values{
		"email": {"a@x.com"},
	})
	unknown := newBrowser(t)
	unknownResp := postForm(t, unknown, app.srv.URL+"/forgot_password", url.Values{
		"email": {"nobody@x.com"},
	})

	require.Equal(t, http.StatusFound, knownResp.StatusCode)
	assert.Equal(t, knownResp.StatusCode, unknownResp.StatusCode)
	assert.Equal(t, location(t, knownResp), location(t, unknownResp))

	_, knownBody := get(t, known, app.srv.URL+"/forgot_password")
	_, unknownBody := get(t, unknown, app.srv.URL+"/forgot_password")
	assert.Contains(t, knownBody, resetFlash)
	assert.Equal(t, knownBody, unknownBody)

	// Only the real account got mail.
	require.Len(t, app.mail.sent, 1)
	assert.Equal(t, "a@x.com", app.mail.sent[0].To)
	assert.Equal(t, "Password Reset Request", app.mail.sent[0].Subject)
	assert.Contains(t, app.mail.sent[0].Body, "http://example.com/reset_password/")
}

func TestResetPassword_FullFlow(t *testing.T) {
	app := newTestApp(t)
	register(t, app, newBrowser(t), "al", "a@x.com", "oldpass")

	c := newBrowser(t)
	postForm(t, c, app.srv.URL+"/forgot_password", url.Values{"email": {"a@x.com"}})
	require.Len(t, app.mail.sent, 1)
	token := resetTokenFromMail(t, app.mail.sent[0])

	// Valid GET renders the form bound to the token.
	resp, body := get(t, c, app.srv.URL+"/reset_password/"+token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "/reset_password/"+token)

	resp = postForm(t, c, app.srv.URL+"/reset_password/"+token, url.Values{
		"password": {"newpass"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", location(t, resp))

	_, body = get(t, c, app.srv.URL+"/login")
	assert.Contains(t, body, "Your password has been updated!")

	// Old password no longer authenticates, the new one does.
	resp = postForm(t, c, app.srv.URL+"/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"oldpass"},
	})
	assert.Equal(t, "/login", location(t, resp))

	resp = postForm(t, c, app.srv.URL+"/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"newpass"},
	})
	assert.Equal(t, "/", location(t, resp))
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	app := newTestApp(t)

	user := &models.User{ID: uuid.New(), Username: "al", Email: "a@x.com"}
	require.NoError(t, user.SetPassword("p"))
	require.NoError(t, app.store.CreateUser(context.Background(), user))

	// Issue a token from more than an hour in the past.
	stale := utils.NewTokenMaker("test-secret")
	stale.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := stale.IssueReset(user)
	require.NoError(t, err)

	c := newBrowser(t)
	resp, _ := get(t, c, app.srv.URL+"/reset_password/"+token)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", location(t, resp))

	_, body := get(t, c, app.srv.URL+"/login")
	assert.Contains(t, body, "The reset link is invalid or has expired.")
}

func TestResetPassword_TokenIsSingleUse(t *testing.T) {
	app := newTestApp(t)
	register(t, app, newBrowser(t), "al", "a@x.com", "first")

	c := newBrowser(t)
	postForm(t, c, app.srv.URL+"/forgot_password", url.Values{"email": {"a@x.com"}})
	token := resetTokenFromMail(t, app.mail.sent[0])

	resp := postForm(t, c, app.srv.URL+"/reset_password/"+token, url.Values{
		"password": {"second"},
	})
	require.Equal(t, "/login", location(t, resp))

	// The reset rotated the signing key, so the same token no longer
	// verifies.
	resp = postForm(t, c, app.srv.URL+"/reset_password/"+token, url.Values{
		"password": {"third"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", location(t, resp))

	user, err := app.store.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, user.CheckPassword("second"))
	assert.False(t, user.CheckPassword("third"))
}

func TestResetPassword_GarbageToken(t *testing.T) {
	app := newTestApp(t)

	c := newBrowser(t)
	resp, _ := get(t, c, app.srv.URL+"/reset_password/not-a-token")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", location(t, resp))

	_, body := get(t, c, app.srv.URL+"/login")
	assert.Contains(t, body, "The reset link is invalid or has expired.")
}
