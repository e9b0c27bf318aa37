package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func actorEcho() *echo.Echo {
	e := echo.New()
	e.GET("/owner", func(c echo.Context) error {
		return c.String(http.StatusOK, OwnerID(c))
	}, RequireOwner())
	e.GET("/admin", func(c echo.Context) error {
		return c.String(http.StatusOK, AdminID(c))
	}, RequireAdmin())
	return e
}

func TestRequireOwner(t *testing.T) {
	e := actorEcho()
	cases := []struct {
		name   string
		header string
		code   int
	}{
		{"valid", strings.Repeat("b", 32), http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"short", "abc", http.StatusUnauthorized},
		{"uppercase", strings.Repeat("B", 32), http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/owner", nil)
			if tc.header != "" {
				req.Header.Set(HeaderOwnerID, tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tc.code {
				t.Fatalf("code = %d, want %d", rec.Code, tc.code)
			}
			if tc.code == http.StatusOK && rec.Body.String() != tc.header {
				t.Fatalf("owner in context = %q", rec.Body.String())
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	e := actorEcho()

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(HeaderAdminID, "  analyst-7 ")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "analyst-7" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}

	for _, h := range []string{"", strings.Repeat("x", maxAdminIDLen+1)} {
		req = httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(HeaderAdminID, h)
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("admin %q => want 401, got %d", h, rec.Code)
		}
	}
}

func TestActorAccessorsWithoutMiddleware(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if OwnerID(c) != "" || AdminID(c) != "" {
		t.Fatal("accessors should be empty when middleware did not run")
	}
}
