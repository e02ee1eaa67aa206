package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Razzsha/quickcart-team/internal/models"
	"github.com/Razzsha/quickcart-team/internal/session"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, sess session.Session) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sid":  sess.ID,
		"sub":  sess.User.ID,
		"role": sess.User.Role,
		"exp":  sess.ExpiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("token signing failed: %v", err)
	}
	return signed
}

func runGuard(t *testing.T, store session.Store, kind session.Kind, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}

	SessionGuard(store, kind, testSecret)(c)
	return w
}

func adminSession() session.Session {
	return session.New(session.Principal{
		ID:    "64f000000000000000000002",
		Name:  "Ops",
		Email: "ops@example.com",
		Role:  models.RoleAdmin,
	}, time.Hour)
}

func TestSessionGuardAcceptsActiveSession(t *testing.T) {
	store := session.NewMemoryStore()
	sess := adminSession()
	if err := store.Save(context.Background(), session.KindAdmin, sess); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	w := runGuard(t, store, session.KindAdmin, "Bearer "+signTestToken(t, sess))
	if w.Code == http.StatusUnauthorized || w.Code == http.StatusForbidden {
		t.Fatalf("expected request to pass the guard, got %d", w.Code)
	}
}

func TestSessionGuardRejectsMissingToken(t *testing.T) {
	store := session.NewMemoryStore()
	if w := runGuard(t, store, session.KindAdmin, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSessionGuardRejectsExpiredSession(t *testing.T) {
	store := session.NewMemoryStore()
	sess := adminSession()
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	if err := store.Save(context.Background(), session.KindAdmin, sess); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Keep the JWT itself unexpired so the slot freshness check is what fails.
	claims := jwt.MapClaims{
		"sid":  sess.ID,
		"sub":  sess.User.ID,
		"role": sess.User.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("token signing failed: %v", err)
	}

	if w := runGuard(t, store, session.KindAdmin, "Bearer "+signed); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired slot, got %d", w.Code)
	}
}

func TestSessionGuardRejectsSupersededSession(t *testing.T) {
	store := session.NewMemoryStore()
	old := adminSession()
	if err := store.Save(context.Background(), session.KindAdmin, old); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	token := signTestToken(t, old)

	// A later login overwrites the slot; the old token must stop working.
	if err := store.Save(context.Background(), session.KindAdmin, adminSession()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if w := runGuard(t, store, session.KindAdmin, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for superseded session, got %d", w.Code)
	}
}

func TestSessionGuardRejectsCustomerRoleOnAdminArea(t *testing.T) {
	store := session.NewMemoryStore()
	sess := session.New(session.Principal{
		ID:   "64f000000000000000000003",
		Role: models.RoleCustomer,
	}, time.Hour)
	if err := store.Save(context.Background(), session.KindAdmin, sess); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if w := runGuard(t, store, session.KindAdmin, "Bearer "+signTestToken(t, sess)); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer role, got %d", w.Code)
	}
}
