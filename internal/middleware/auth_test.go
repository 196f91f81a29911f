package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func newAuthRouter(handler gin.HandlerFunc, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(testSecret)}, extra...)
	handlers = append(handlers, handler)
	r.GET("/protected", handlers...)
	return r
}

func TestAuth(t *testing.T) {
	var seen *Claims
	router := newAuthRouter(func(ctx *gin.Context) {
		seen = Identity(ctx)
		ctx.Status(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{
			"wrong secret",
			"Bearer " + signToken(t, "other-secret", Claims{UserID: 1, Username: "mina", Role: RoleStudent}),
			http.StatusUnauthorized,
		},
		{
			"valid token",
			"Bearer " + signToken(t, testSecret, Claims{UserID: 42, Username: "mina", Role: RoleStudent}),
			http.StatusOK,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK {
				if seen == nil || seen.UserID != 42 || seen.Username != "mina" {
					t.Errorf("identity not propagated: %+v", seen)
				}
			} else if seen != nil {
				t.Error("handler ran despite rejected credentials")
			}
		})
	}
}

func TestAuthRejectsUnexpectedSigningMethod(t *testing.T) {
	router := newAuthRouter(func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	// "none" algorithm tokens must never pass.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Role: RoleTeacher})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireTeacher(t *testing.T) {
	router := newAuthRouter(func(ctx *gin.Context) { ctx.Status(http.StatusOK) }, RequireTeacher())

	t.Run("student is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, Claims{UserID: 1, Role: RoleStudent}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}
	})

	t.Run("teacher passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, Claims{UserID: 1, Role: RoleTeacher}))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})
}
