package session

import (
	"context"
	"testing"
	"time"
)

func testPrincipal() Principal {
	return Principal{
		ID:          "64f000000000000000000001",
		Name:        "Asha",
		Email:       "asha@example.com",
		PhoneNumber: "9779800000001",
		Role:        "customer",
	}
}

func TestNewSessionStampsWindow(t *testing.T) {
	before := time.Now()
	sess := New(testPrincipal(), 24*time.Hour)
	after := time.Now()

	if sess.ID == "" {
		t.Fatal("expected session id to be set")
	}
	if sess.LoginAt.Before(before) || sess.LoginAt.After(after) {
		t.Fatalf("loginAt %v outside call window", sess.LoginAt)
	}
	if got := sess.ExpiresAt.Sub(sess.LoginAt); got != 24*time.Hour {
		t.Fatalf("expected 24h window, got %v", got)
	}
}

func TestSessionValid(t *testing.T) {
	sess := New(testPrincipal(), time.Hour)

	if !sess.Valid(time.Now()) {
		t.Fatal("fresh session should be valid")
	}
	if sess.Valid(sess.ExpiresAt) {
		t.Fatal("session at expiry instant should be invalid")
	}
	if sess.Valid(sess.ExpiresAt.Add(time.Minute)) {
		t.Fatal("expired session should be invalid")
	}

	empty := Session{LoginAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	if empty.Valid(time.Now()) {
		t.Fatal("session without a principal should be invalid")
	}
}

func TestMemoryStoreSlotPerKind(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if sess, err := store.Load(ctx, KindUser); err != nil || sess != nil {
		t.Fatalf("expected empty slot, got %v / %v", sess, err)
	}

	first := New(testPrincipal(), time.Hour)
	if err := store.Save(ctx, KindUser, first); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second := New(testPrincipal(), time.Hour)
	if err := store.Save(ctx, KindUser, second); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(ctx, KindUser)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded == nil || loaded.ID != second.ID {
		t.Fatalf("expected second session to overwrite first, got %+v", loaded)
	}

	if sess, err := store.Load(ctx, KindAdmin); err != nil || sess != nil {
		t.Fatalf("admin slot should be independent, got %v / %v", sess, err)
	}
}

func TestMemoryStoreClearWritesAudit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sess := New(testPrincipal(), time.Hour)
	if err := store.Save(ctx, KindUser, sess); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	audit, err := store.Clear(ctx, KindUser)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if audit == nil {
		t.Fatal("expected audit record from clear")
	}
	if audit.Kind != KindUser {
		t.Fatalf("expected audit for user kind, got %s", audit.Kind)
	}
	if audit.DurationSeconds < 0 {
		t.Fatalf("negative session duration: %d", audit.DurationSeconds)
	}

	if loaded, err := store.Load(ctx, KindUser); err != nil || loaded != nil {
		t.Fatalf("slot should be empty after clear, got %v / %v", loaded, err)
	}

	stored, err := store.LastLogout(ctx, KindUser)
	if err != nil {
		t.Fatalf("lastLogout failed: %v", err)
	}
	if stored == nil || !stored.LogoutAt.Equal(audit.LogoutAt) {
		t.Fatalf("expected persisted audit %+v, got %+v", audit, stored)
	}

	again, err := store.Clear(ctx, KindUser)
	if err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
	if again != nil {
		t.Fatalf("clearing an empty slot should be a no-op, got %+v", again)
	}
}
