package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mkravets/accounts/internal/token"
)

func gateRouter(codec *token.Codec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthGate(codec), func(c *gin.Context) {
		uid, ok := Subject(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no subject"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": uid.String()})
	})
	return r
}

func TestAuthGate(t *testing.T) {
	codec := token.NewCodec([]byte("access-secret"), []byte("refresh-secret"), "accounts-test")
	r := gateRouter(codec)
	uid := uuid.New()

	valid, _, _, _ := codec.Issue(uid, token.ClassAccess, time.Minute)
	expired, _, _, _ := codec.Issue(uid, token.ClassAccess, -time.Minute)
	refresh, _, _, _ := codec.Issue(uid, token.ClassRefresh, time.Minute)

	foreign := token.NewCodec([]byte("other"), []byte("other"), "accounts-test")
	forged, _, _, _ := foreign.Issue(uid, token.ClassAccess, time.Minute)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
		{"expired", "Bearer " + expired, http.StatusForbidden},
		{"wrong class", "Bearer " + refresh, http.StatusForbidden},
		{"foreign signature", "Bearer " + forged, http.StatusForbidden},
		{"garbage", "Bearer not.a.token", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("want %d got %d (%s)", tc.status, w.Code, w.Body.String())
			}
		})
	}
}
