package render

import (
	"encoding/json"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(t *testing.T) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParamsFields(t *testing.T) {
	c := newContext(t)
	c.Set("session", map[string]any{"UserName": "ayse"})
	c.Set("menuData", []map[string]any{{"CategoriesName": "Elektronik"}})

	data := []map[string]any{{"ProductsId": 3, "ProductsName": "Kulaklık"}}
	grid := map[string]any{"pageSize": 20}
	settings := map[string]string{"CDN_LINK": "https://cdn.example.com"}

	env := Params(c, data, grid, "main", settings)

	for _, key := range []string{"data", "JSONdata", "gridprop", "JSONgridprop",
		"user", "menuData", "layout", "settings", "JSONsettings"} {
		if _, ok := env[key]; !ok {
			t.Fatalf("envelope missing %q", key)
		}
	}
	if env["layout"] != "main" {
		t.Fatalf("layout = %v", env["layout"])
	}
}

func TestParamsJSONMirrorRoundTrips(t *testing.T) {
	c := newContext(t)
	data := []map[string]any{{"ProductsName": "Kulaklık", "Price": 149.9}}

	env := Params(c, data, nil, "main", nil)

	var back []map[string]any
	if err := json.Unmarshal([]byte(env["JSONdata"].(string)), &back); err != nil {
		t.Fatalf("JSONdata is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(back, data) {
		t.Fatalf("round trip mismatch: %#v vs %#v", back, data)
	}
}

func TestParamsNilData(t *testing.T) {
	c := newContext(t)
	env := Params(c, nil, nil, "main", nil)
	if env["JSONdata"] != "null" {
		t.Fatalf("JSONdata = %v", env["JSONdata"])
	}
	if env["user"] != nil {
		t.Fatalf("user = %v, want nil on guest page", env["user"])
	}
}

func TestNewRendererMissingDirFailsRendersOnly(t *testing.T) {
	r := NewRenderer("testdata/does-not-exist", ".html")
	if r == nil {
		t.Fatal("renderer must be usable without templates")
	}
	var sb strings.Builder
	if err := r.Render(&sb, "home", nil, newContext(t)); err == nil {
		t.Fatal("render of unknown template must fail")
	}
}
