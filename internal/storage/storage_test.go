package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"RealEgo_Backend/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func TestCreateAccount(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	account, err := db.CreateAccount(ctx, "tera", "hash")
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if account.ID == 0 {
		t.Fatal("expected non-zero account id")
	}

	t.Run("duplicate username rejected", func(t *testing.T) {
		if _, err := db.CreateAccount(ctx, "tera", "other"); !errors.Is(err, ErrUsernameExists) {
			t.Fatalf("expected ErrUsernameExists, got %v", err)
		}
	})

	t.Run("lookup by username and id", func(t *testing.T) {
		byName, err := db.GetAccountByUsername(ctx, "tera")
		if err != nil {
			t.Fatalf("get by username: %v", err)
		}
		byID, err := db.GetAccountByID(ctx, account.ID)
		if err != nil {
			t.Fatalf("get by id: %v", err)
		}
		if byName.ID != byID.ID || byName.PasswordHash != "hash" {
			t.Fatalf("unexpected accounts: %+v %+v", byName, byID)
		}
	})

	t.Run("missing account", func(t *testing.T) {
		if _, err := db.GetAccountByUsername(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("password reset", func(t *testing.T) {
		if err := db.UpdatePassword(ctx, account.ID, "new-hash"); err != nil {
			t.Fatalf("update password: %v", err)
		}
		got, _ := db.GetAccountByID(ctx, account.ID)
		if got.PasswordHash != "new-hash" {
			t.Fatalf("expected new hash, got %q", got.PasswordHash)
		}
		if err := db.UpdatePassword(ctx, 9999, "x"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("account owns a profile", func(t *testing.T) {
		profile, err := db.selectProfile(ctx, account.ID)
		if err != nil {
			t.Fatalf("expected profile created with account: %v", err)
		}
		if profile.HistoryLimit != models.DefaultHistoryLimit {
			t.Fatalf("expected default history limit, got %d", profile.HistoryLimit)
		}
	})
}

func TestGetProfileCreatesOnFirstRead(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// 계정 없이도 조회 시 생성
	profile, err := db.GetProfile(ctx, 42)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.UserID != 42 || profile.HistoryLimit != models.DefaultHistoryLimit {
		t.Fatalf("unexpected default profile: %+v", profile)
	}

	again, err := db.GetProfile(ctx, 42)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again.ID != profile.ID {
		t.Fatalf("expected same profile row, got %d and %d", profile.ID, again.ID)
	}
}

func TestUpdateProfileIsPartial(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.UpdateProfile(ctx, 7, models.ProfileUpdate{
		FullName:     strPtr("Tera"),
		Location:     strPtr("Beijing"),
		TimelineData: strPtr(`{"7_locations":"Beijing"}`),
	})
	if err != nil {
		t.Fatalf("first update: %v", err)
	}

	limit := 20
	updated, err := db.UpdateProfile(ctx, 7, models.ProfileUpdate{
		Location:     strPtr("Shanghai"),
		HistoryLimit: &limit,
	})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if updated.FullName != "Tera" {
		t.Fatalf("omitted field changed: %q", updated.FullName)
	}
	if updated.TimelineData != `{"7_locations":"Beijing"}` {
		t.Fatalf("omitted timeline changed: %q", updated.TimelineData)
	}
	if updated.Location != "Shanghai" || updated.HistoryLimit != 20 {
		t.Fatalf("included fields not replaced: %+v", updated)
	}

	unchanged, err := db.UpdateProfile(ctx, 7, models.ProfileUpdate{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if *unchanged != *updated {
		t.Fatalf("empty update modified profile: %+v vs %+v", unchanged, updated)
	}
}

func TestListRecentMessages(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	db.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	const total = 12
	for i := 0; i < total; i++ {
		role := models.RoleUser
		if i%2 == 1 {
			role = models.RoleAssistant
		}
		if _, err := db.AppendMessage(ctx, 1, role, fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if _, err := db.AppendMessage(ctx, 2, models.RoleUser, "other account"); err != nil {
		t.Fatalf("append other: %v", err)
	}

	messages, err := db.ListRecentMessages(ctx, 1, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(messages) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(messages))
	}
	for i, m := range messages {
		want := fmt.Sprintf("message %d", total-5+i)
		if m.Content != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, m.Content)
		}
		if i > 0 && !messages[i-1].Timestamp.Before(m.Timestamp) {
			t.Fatalf("messages not in ascending order at %d", i)
		}
	}

	all, err := db.ListRecentMessages(ctx, 1, 100)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != total {
		t.Fatalf("expected %d messages, got %d", total, len(all))
	}
}

func TestAppendMessageRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	if _, err := db.AppendMessage(context.Background(), 1, models.Role("system"), "x"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestRebind(t *testing.T) {
	db := &DB{driver: DriverPostgres}
	got := db.rebind("UPDATE t SET a = ?, b = ? WHERE id = ?")
	if got != "UPDATE t SET a = $1, b = $2 WHERE id = $3" {
		t.Fatalf("unexpected rebind: %s", got)
	}
	db.driver = DriverSQLite
	if db.rebind("a = ?") != "a = ?" {
		t.Fatal("sqlite query should be unchanged")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	first, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	first.Close()
	second, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	second.Close()
}
