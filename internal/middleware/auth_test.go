package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homehero/homehero/internal/auth"
	"github.com/homehero/homehero/internal/models"
)

func newAuthedEngine(jwtManager *auth.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/whoami", RequireAuth(jwtManager), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"profileId": ProfileID(c)})
	})
	return engine
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	engine := newAuthedEngine(jwtManager)

	profile := &models.Profile{ID: "profile-123", Email: "alice@example.com"}
	validToken, err := jwtManager.Generate(profile)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	otherManager := auth.NewJWTManager("different-secret", time.Hour)
	foreignToken, err := otherManager.Generate(profile)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	expiredManager := auth.NewJWTManager("test-secret", -time.Hour)
	expiredToken, err := expiredManager.Generate(profile)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic " + validToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "scheme without token",
			header:     "Bearer",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token signed with wrong secret",
			header:     "Bearer " + foreignToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     "Bearer " + expiredToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			header:     "Bearer " + validToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "lowercase bearer scheme",
			header:     "bearer " + validToken,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestRequireAuth_ProfileIDInContext(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	engine := newAuthedEngine(jwtManager)

	profile := &models.Profile{ID: "profile-123", Email: "alice@example.com"}
	token, err := jwtManager.Generate(profile)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	want := `"profileId":"profile-123"`
	if body := rec.Body.String(); !strings.Contains(body, want) {
		t.Errorf("body = %s, want it to contain %s", body, want)
	}
}

func TestProfileID_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if id := ProfileID(c); id != "" {
		t.Errorf("ProfileID() = %q, want empty for unauthenticated context", id)
	}
}
