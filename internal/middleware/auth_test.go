package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/authclient"
	"github.com/mercass/storefront/internal/store"
)

type stubChecker struct {
	sess authclient.Session
	err  error
}

func (s stubChecker) Check(ctx context.Context, token string) (authclient.Session, error) {
	return s.sess, s.err
}

// fakeQuerier records every command it receives.
type fakeQuerier struct {
	commands []store.Command
	result   store.Result
	err      error
}

func (f *fakeQuerier) Run(ctx context.Context, cmd store.Command) (store.Result, error) {
	f.commands = append(f.commands, cmd)
	return f.result, f.err
}

func (f *fakeQuerier) Exec(ctx context.Context, cmd store.Command) (int64, error) {
	f.commands = append(f.commands, cmd)
	return 1, f.err
}

func (f *fakeQuerier) RunMulti(ctx context.Context, cmds []store.Command, names []string) (map[string]store.Recordset, error) {
	f.commands = append(f.commands, cmds...)
	out := make(map[string]store.Recordset)
	for _, n := range names {
		out[n] = f.result.First()
	}
	return out, f.err
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, cookie string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/myAccount", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: AuthCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	invoked := false
	h := mw(func(c echo.Context) error {
		invoked = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec, invoked
}

func TestAuthCheckNoCookieRedirects(t *testing.T) {
	rec, invoked := doRequest(t, AuthCheck(stubChecker{}), "")
	if invoked {
		t.Fatal("downstream handler invoked without a session")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Fatalf("Location = %q", loc)
	}
}

func TestAuthCheckMismatchRedirects(t *testing.T) {
	rec, invoked := doRequest(t,
		AuthCheck(stubChecker{err: authclient.ErrSessionMismatch}), "tok-1")
	if invoked {
		t.Fatal("downstream handler invoked on mismatched session")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
}

func TestAuthCheckValidSessionPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/myAccount", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookie, Value: "tok-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := AuthCheck(stubChecker{sess: authclient.Session{Auth: "tok-1", UsersID: 42}})
	h := mw(func(c echo.Context) error {
		if UserID(c) != 42 {
			t.Errorf("UserID = %d", UserID(c))
		}
		if sess, ok := Session(c); !ok || sess.UsersID != 42 {
			t.Errorf("session = %+v, ok = %v", sess, ok)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestWithProfileBindsUserID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/myAccount", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("user_id", int64(42))

	q := &fakeQuerier{result: store.Result{Recordsets: []store.Recordset{
		{{"UserName": "ayse"}},
	}}}
	h := WithProfile(q)(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if len(q.commands) != 1 {
		t.Fatalf("commands = %d", len(q.commands))
	}
	cmd := q.commands[0]
	if len(cmd.Params) != 1 || cmd.Params[0].Name != "usersId" || cmd.Params[0].Value != int64(42) {
		t.Fatalf("params = %#v", cmd.Params)
	}
	profile, _ := c.Get("userProfile").(store.Recordset)
	if len(profile) != 1 || profile[0]["UserName"] != "ayse" {
		t.Fatalf("userProfile = %#v", profile)
	}
}

func TestShowMenuGuestPage(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	q := &fakeQuerier{result: store.Result{Recordsets: []store.Recordset{
		{{"CategoriesName": "Elektronik"}},
	}}}
	h := ShowMenu(q)(func(c echo.Context) error { return nil })
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	menu, _ := c.Get("menuData").(store.Recordset)
	if len(menu) != 1 {
		t.Fatalf("menuData = %#v", menu)
	}
}
