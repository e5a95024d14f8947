package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"RealEgo_Backend/internal/auth"
	"RealEgo_Backend/internal/storage"
)

func TestUpsertAccount(t *testing.T) {
	db, err := storage.Open(storage.DriverSQLite, filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()

	msg, err := upsertAccount(ctx, db, "tera", "first")
	if err != nil || !strings.Contains(msg, "created") {
		t.Fatalf("create: %q %v", msg, err)
	}

	msg, err = upsertAccount(ctx, db, "tera", "second")
	if err != nil || !strings.Contains(msg, "Password updated") {
		t.Fatalf("reset: %q %v", msg, err)
	}

	account, err := db.GetAccountByUsername(ctx, "tera")
	if err != nil {
		t.Fatal(err)
	}
	if auth.VerifyPassword(account.PasswordHash, "second") != nil {
		t.Error("password was not reset")
	}
}
