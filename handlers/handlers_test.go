package handlers

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"todo-web/db"
	"todo-web/session"
	"todo-web/utils"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent []sentMail
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type testApp struct {
	*App
	srv   *httptest.Server
	store *db.Memory
	mail  *fakeMailer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := db.NewMemory()
	mail := &fakeMailer{}
	app := New(
		store,
		session.NewManager("test-secret"),
		mail,
		utils.NewTokenMaker("test-secret"),
		"http://example.com",
	)

	srv := httptest.NewServer(app.Router())
	t.Cleanup(srv.Close)

	return &testApp{App: app, srv: srv, store: store, mail: mail}
}

// newBrowser returns a client with its own cookie jar that stops at
// redirects, so tests can assert on the redirect itself.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, c *http.Client, rawURL string) (*http.Response, string) {
	t.Helper()

	resp, err := c.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func postForm(t *testing.T, c *http.Client, rawURL string, form url.Values) *http.Response {
	t.Helper()

	resp, err := c.PostForm(rawURL, form)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func location(t *testing.T, resp *http.Response) string {
	t.Helper()

	loc, err := resp.Location()
	require.NoError(t, err)
	return loc.Path
}

// register signs up a user through the real handler and leaves the
// browser logged in as them.
func register(t *testing.T, app *testApp, c *http.Client, name, email, password string) {
	t.Helper()

	resp := postForm(t, c, app.srv.URL+"/registration", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/", location(t, resp))
}
