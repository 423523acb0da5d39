package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/casamia/hotel-management/internal/utils"
)

const testSecret = "test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	return rec, c
}

func TestJWTAuthMissingBearer(t *testing.T) {
	rec, _ := runJWT(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec, _ := runJWT(t, "Bearer not.a.token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 42, "CUSTOMER", 5)
	if err != nil {
		t.Fatal(err)
	}
	rec, _ := runJWT(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthInjectsClaims(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "CUSTOMER", 5)
	if err != nil {
		t.Fatal(err)
	}
	rec, c := runJWT(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	sub, ok := c.Get("user_id").(float64)
	if !ok || uint64(sub) != 42 {
		t.Fatalf("user_id claim = %v", c.Get("user_id"))
	}
	if role, _ := c.Get("role").(string); role != "CUSTOMER" {
		t.Fatalf("role claim = %v", c.Get("role"))
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	h := RequireRole("HOTEL_ADMIN", "PLATFORM_ADMIN")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	cases := []struct {
		role interface{}
		want int
	}{
		{"HOTEL_ADMIN", http.StatusOK},
		{"PLATFORM_ADMIN", http.StatusOK},
		{"CUSTOMER", http.StatusForbidden},
		{nil, http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if tc.role != nil {
			c.Set("role", tc.role)
		}
		if err := h(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != tc.want {
			t.Fatalf("role %v: status = %d, want %d", tc.role, rec.Code, tc.want)
		}
	}
}
