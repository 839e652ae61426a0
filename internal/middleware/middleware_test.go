package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/config"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
)

const testSecret = "test-secret"

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zap.NewNop()))
	r.GET("/who", AuthMiddleware(&config.Config{JWTSecret: testSecret}), func(c *gin.Context) {
		s := ScopeFrom(c)
		c.JSON(http.StatusOK, gin.H{"role": s.Role, "tenant": s.TenantID, "user": s.UserID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()
	exp := float64(time.Now().Add(time.Hour).Unix())

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"unknown role", "Bearer " + sign(t, jwt.MapClaims{"sub": 1, "role": "ADMIN", "exp": exp}), http.StatusUnauthorized},
		{"tenant without tenantId", "Bearer " + sign(t, jwt.MapClaims{"sub": 1, "role": "TENANT", "exp": exp}), http.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, jwt.MapClaims{"sub": 1, "role": "USER", "exp": float64(time.Now().Add(-time.Hour).Unix())}), http.StatusUnauthorized},
		{"customer", "Bearer " + sign(t, jwt.MapClaims{"sub": 3, "role": "USER", "exp": exp}), http.StatusOK},
		{"tenant", "Bearer " + sign(t, jwt.MapClaims{"sub": 1, "role": "tenant", "tenantId": 9, "exp": exp}), http.StatusOK},
	}

	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != c.status {
			t.Fatalf("%s: expected %d, got %d (%s)", c.name, c.status, w.Code, w.Body.String())
		}
		if w.Header().Get(HeaderRequestID) == "" {
			t.Fatalf("%s: missing request id header", c.name)
		}
	}
}

func TestScopeFromClaims(t *testing.T) {
	s, ok := scopeFromClaims(jwt.MapClaims{"sub": float64(5), "role": "OPERATOR", "tenantId": float64(2)})
	if !ok || s != (access.Scope{Role: access.RoleOperator, TenantID: 2, UserID: 5}) {
		t.Fatalf("unexpected scope %+v ok=%v", s, ok)
	}
	if _, ok := scopeFromClaims(jwt.MapClaims{"role": "OWNER"}); ok {
		t.Fatalf("missing sub must be rejected")
	}
}

func TestRequestIDIsKept(t *testing.T) {
	r := newRouter()
	id := "3f0c1c52-7d8f-4b7e-9a49-0d3c7a1b2c3d"

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(HeaderRequestID, id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(HeaderRequestID); got != id {
		t.Fatalf("expected request id %s, got %s", id, got)
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"any origin", nil, "https://app.example.com", "https://app.example.com"},
		{"listed origin", []string{"https://app.example.com"}, "https://app.example.com", "https://app.example.com"},
		{"unlisted origin", []string{"https://app.example.com"}, "https://evil.example.com", ""},
	}

	for _, c := range cases {
		r := gin.New()
		r.Use(CORSMiddleware(c.allowed))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", c.origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("%s: expected 204, got %d", c.name, w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != c.want {
			t.Fatalf("%s: expected allow-origin %q, got %q", c.name, c.want, got)
		}
	}
}

func TestRateLimitPerCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-User"); id == "1" {
			c.Set(ContextScope, access.Scope{Role: access.RoleUser, UserID: 1})
		} else {
			c.Set(ContextScope, access.Scope{Role: access.RoleUser, UserID: 2})
		}
		c.Next()
	})
	r.Use(RateLimit(2, zap.NewNop()))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := call("1"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
	}
	if code := call("1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", code)
	}
	if code := call("2"); code != http.StatusOK {
		t.Fatalf("other caller should not be limited, got %d", code)
	}
}

func TestLimiterStoreEvictsIdleCallers(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := newLimiterStore(2)
	store.now = func() time.Time { return clock }

	exhausted := store.get("user:1")
	exhausted.Allow()
	exhausted.Allow()
	store.get("ip:10.0.0.1")

	steps := []struct {
		advance time.Duration
		key     string
		want    int
	}{
		{30 * time.Second, "user:2", 3},
		{20 * time.Second, "user:2", 3},
		{15 * time.Second, "user:3", 2},
		{2 * time.Minute, "user:3", 1},
	}

	for i, s := range steps {
		clock = clock.Add(s.advance)
		store.get(s.key)
		if got := store.size(); got != s.want {
			t.Fatalf("step %d: expected %d limiters, got %d", i, s.want, got)
		}
	}

	if !store.get("user:1").Allow() {
		t.Fatalf("an evicted caller should start with a full bucket")
	}
}
