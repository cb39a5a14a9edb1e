package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestSetSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		config     CookieConfig
		wantSecure bool
		wantDomain string // Go http strips leading dot from domain per RFC 6265
	}{
		{
			name:       "development config",
			config:     CookieConfig{Secure: false},
			wantSecure: false,
			wantDomain: "",
		},
		{
			name:       "production config",
			config:     CookieConfig{Domain: ".coopworks.example", Secure: true, Path: "/"},
			wantSecure: true,
			wantDomain: "coopworks.example", // Leading dot stripped by http package
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			helper := NewCookieHelper(tt.config, 8*time.Hour)
			helper.SetSessionCookie(c, "token123")

			cookies := w.Result().Cookies()
			if len(cookies) != 1 {
				t.Fatalf("expected 1 cookie, got %d", len(cookies))
			}

			cookie := cookies[0]
			if cookie.Name != SessionTokenCookie {
				t.Errorf("cookie name = %s, want %s", cookie.Name, SessionTokenCookie)
			}
			if cookie.Value != "token123" {
				t.Errorf("cookie value = %s, want token123", cookie.Value)
			}
			if !cookie.HttpOnly {
				t.Error("session cookie must be HttpOnly")
			}
			if cookie.Secure != tt.wantSecure {
				t.Errorf("cookie secure = %v, want %v", cookie.Secure, tt.wantSecure)
			}
			if cookie.Domain != tt.wantDomain {
				t.Errorf("cookie domain = %s, want %s", cookie.Domain, tt.wantDomain)
			}
			if cookie.MaxAge != int((8 * time.Hour).Seconds()) {
				t.Errorf("cookie max-age = %d, want %d", cookie.MaxAge, int((8*time.Hour).Seconds()))
			}
		})
	}
}

func TestClearSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	helper := NewCookieHelper(CookieConfig{}, 8*time.Hour)
	helper.ClearSessionCookie(c)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].Value != "" {
		t.Errorf("cleared cookie value = %s, want empty", cookies[0].Value)
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("cleared cookie max-age = %d, want negative", cookies[0].MaxAge)
	}
}

func TestGetSessionToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	helper := NewCookieHelper(CookieConfig{}, 8*time.Hour)

	t.Run("cookie present", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.AddCookie(&http.Cookie{Name: SessionTokenCookie, Value: "token123"})

		if got := helper.GetSessionToken(c); got != "token123" {
			t.Errorf("GetSessionToken() = %s, want token123", got)
		}
	})

	t.Run("cookie absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		if got := helper.GetSessionToken(c); got != "" {
			t.Errorf("GetSessionToken() = %s, want empty", got)
		}
	})
}
