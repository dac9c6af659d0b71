package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mercass/storefront/internal/authclient"
	"github.com/mercass/storefront/internal/payment"
	"github.com/mercass/storefront/internal/store"
)

// fakeQuerier records every command and serves canned results.
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

func newHandler(q store.Querier) *Handler {
	return &Handler{Store: q, Settings: map[string]string{}}
}

func formContext(t *testing.T, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserDetailRejectsNonPositiveID(t *testing.T) {
	q := &fakeQuerier{}
	h := newHandler(q)

	c, rec := formContext(t, http.MethodGet, "/api/users/0", nil)
	c.SetPath("/api/users/:id")
	c.SetParamNames("id")
	c.SetParamValues("0")

	if err := h.UserDetail(c); err != nil {
		t.Fatalf("UserDetail: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if rec.Body.String() != "Geçersiz kullanıcı ID" {
		t.Fatalf("body = %q", rec.Body.String())
	}
	if len(q.commands) != 0 {
		t.Fatalf("store received %d commands, want none", len(q.commands))
	}
}

func TestUserDetailValidID(t *testing.T) {
	q := &fakeQuerier{result: store.Result{Recordsets: []store.Recordset{
		{{"Id": int64(7), "UserName": "ayse"}},
	}}}
	h := newHandler(q)

	c, rec := formContext(t, http.MethodGet, "/api/users/7", nil)
	c.SetPath("/api/users/:id")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.UserDetail(c); err != nil {
		t.Fatalf("UserDetail: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(q.commands) != 1 {
		t.Fatalf("commands = %d", len(q.commands))
	}
	p := q.commands[0].Params
	if len(p) != 1 || p[0].Name != "UserId" || p[0].Value != 7 {
		t.Fatalf("params = %#v", p)
	}
}

func TestCreateCategoriesBindsAllFiveParams(t *testing.T) {
	q := &fakeQuerier{result: store.Result{
		Recordsets:   []store.Recordset{{{"Id": int64(3)}}},
		RowsAffected: 1,
	}}
	h := newHandler(q)

	form := url.Values{}
	form.Set("categoryName", "Elektronik")
	form.Set("categoryTitle", "Elektronik Ürünler")
	form.Set("categoryImg", "elektronik.png")
	form.Set("categoryDesc", "Telefon, bilgisayar ve aksesuar")
	form.Set("categoryLevel", "1")

	c, rec := formContext(t, http.MethodPost, "/api/createCategories", form)

	if err := h.CreateCategories(c); err != nil {
		t.Fatalf("CreateCategories: %v", err)
	}
	if len(q.commands) != 1 {
		t.Fatalf("commands = %d", len(q.commands))
	}

	cmd := q.commands[0]
	if cmd.Text != "sp_createCategories" {
		t.Fatalf("text = %q", cmd.Text)
	}
	want := map[string]any{
		"categoryName":  "Elektronik",
		"categoryTitle": "Elektronik Ürünler",
		"categoryImg":   "elektronik.png",
		"categoryDesc":  "Telefon, bilgisayar ve aksesuar",
		"categoryLevel": 1,
	}
	if len(cmd.Params) != len(want) {
		t.Fatalf("bound %d params, want %d", len(cmd.Params), len(want))
	}
	for _, p := range cmd.Params {
		if want[p.Name] != p.Value {
			t.Errorf("param %s = %v, want %v", p.Name, p.Value, want[p.Name])
		}
	}

	// The procedure's result comes back verbatim.
	var out store.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.RowsAffected != 1 || len(out.Recordsets) != 1 {
		t.Fatalf("result = %+v", out)
	}
}

func TestValidOTP(t *testing.T) {
	for _, tc := range []struct {
		name  string
		flag  any
		valid bool
	}{
		{"valid", int64(1), true},
		{"invalid", int64(0), false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			q := &fakeQuerier{result: store.Result{Recordsets: []store.Recordset{
				{{"is_valid": tc.flag}},
			}}}
			h := newHandler(q)

			form := url.Values{}
			form.Set("telefon", "5551234567")
			form.Set("SMSCode", "123456")
			c, rec := formContext(t, http.MethodPost, "/api/validOTP", form)

			if err := h.ValidOTP(c); err != nil {
				t.Fatalf("ValidOTP: %v", err)
			}
			var out map[string]bool
			if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if out["istelvalid"] != tc.valid {
				t.Fatalf("istelvalid = %v, want %v", out["istelvalid"], tc.valid)
			}
		})
	}
}

func TestUpdateMyAccountPasswordMismatch(t *testing.T) {
	q := &fakeQuerier{}
	h := newHandler(q)

	form := url.Values{}
	form.Set("account_current_password", "old")
	form.Set("account_new_password", "new-1")
	form.Set("account_confirm_password", "new-2")
	c, rec := formContext(t, http.MethodPost, "/updateMyAccountPassword", form)

	if err := h.UpdateMyAccountPassword(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(q.commands) != 0 {
		t.Fatal("store called despite local validation failure")
	}
	if !strings.Contains(rec.Body.String(), "Şifreler Uyuşmuyor") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func loginForm() url.Values {
	form := url.Values{}
	form.Set("login_email", "ayse@example.com")
	form.Set("login_password", "secret")
	return form
}

func TestLoginSuccessSetsCookieAndRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in authclient.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if in.Email != "ayse@example.com" {
			t.Errorf("Email = %q", in.Email)
		}
		if in.ValidHash == "" || in.Auth == "" {
			t.Error("fingerprint fields not populated")
		}
		json.NewEncoder(w).Encode(authclient.Session{Auth: in.Auth, UsersID: 5})
	}))
	defer srv.Close()

	h := newHandler(&fakeQuerier{})
	h.Auth = authclient.New(srv.URL)

	c, rec := formContext(t, http.MethodPost, "/login", loginForm())
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("Location = %q", loc)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "Auth" || cookies[0].Value == "" {
		t.Fatalf("cookies = %v", cookies)
	}
}

func TestLoginRejectionRedirectsWithErrorParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(authclient.Session{ErrCode: "102", ErrMessage: "Şifre hatalı"})
	}))
	defer srv.Close()

	h := newHandler(&fakeQuerier{})
	h.Auth = authclient.New(srv.URL)

	c, rec := formContext(t, http.MethodPost, "/login", loginForm())
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if loc.Path != "/userLoginandRegister" {
		t.Fatalf("path = %q", loc.Path)
	}
	if loc.Query().Get("ErrC") != "102" || loc.Query().Get("ErrM") != "Şifre hatalı" {
		t.Fatalf("query = %v", loc.Query())
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "Auth" && ck.Value != "" {
			t.Fatal("session cookie set on rejected login")
		}
	}
}

func TestChatFlagUsesSessionUserID(t *testing.T) {
	q := &fakeQuerier{result: store.Result{Recordsets: []store.Recordset{
		{{"isread": int64(1)}},
	}}}
	h := newHandler(q)

	form := url.Values{}
	form.Set("chatId", "9")
	c, rec := formContext(t, http.MethodPost, "/ChatRead", form)
	c.Set("user_id", int64(42))

	if err := h.ChatRead(c); err != nil {
		t.Fatalf("ChatRead: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	cmd := q.commands[0]
	if cmd.Text != "sp_ChatRead" {
		t.Fatalf("text = %q", cmd.Text)
	}
	byName := map[string]any{}
	for _, p := range cmd.Params {
		byName[p.Name] = p.Value
	}
	if byName["ChatId"] != 9 || byName["ReceiverId"] != int64(42) {
		t.Fatalf("params = %#v", byName)
	}
}

func TestPaySubscriptionProviderRejection(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":       "failure",
			"errorCode":    "12",
			"errorMessage": "Kart limiti yetersiz",
		})
	}))
	defer provider.Close()

	q := &fakeQuerier{}
	h := newHandler(q)
	h.Payments = payment.New(provider.URL, "key", "secret")

	form := url.Values{}
	form.Set("subId", "3")
	form.Set("price", "149.90")
	c, rec := formContext(t, http.MethodPost, "/api/payment", form)
	c.Set("user_id", int64(7))

	if err := h.PaySubscription(c); err != nil {
		t.Fatalf("PaySubscription: %v", err)
	}
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ErrCode"] != "12" || body["ErrMessage"] != "Kart limiti yetersiz" {
		t.Fatalf("body = %#v", body)
	}
	if len(q.commands) != 0 {
		t.Fatalf("store commands = %d, want 0", len(q.commands))
	}
}

func TestPaySubscriptionTransportFailure(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	provider.Close() // connection refused

	q := &fakeQuerier{}
	h := newHandler(q)
	h.Payments = payment.New(provider.URL, "key", "secret")

	form := url.Values{}
	form.Set("subId", "3")
	c, rec := formContext(t, http.MethodPost, "/api/payment", form)
	c.Set("user_id", int64(7))

	if err := h.PaySubscription(c); err != nil {
		t.Fatalf("PaySubscription: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ErrCode"] != "500" {
		t.Fatalf("ErrCode = %q, provider fields must not leak empty", body["ErrCode"])
	}
	if len(q.commands) != 0 {
		t.Fatalf("store commands = %d, want 0", len(q.commands))
	}
}
