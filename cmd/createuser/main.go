// createuser creates an account, or resets its password when it already exists.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"RealEgo_Backend/internal/auth"
	"RealEgo_Backend/internal/config"
	"RealEgo_Backend/internal/storage"
)

func main() {
	username := flag.String("username", "", "account username")
	password := flag.String("password", "", "account password")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createuser -username NAME -password PASSWORD")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	msg, err := upsertAccount(context.Background(), db, *username, *password)
	if err != nil {
		slog.Error("createuser failed", "username", *username, "error", err)
		os.Exit(1)
	}
	fmt.Println(msg)
}

func upsertAccount(ctx context.Context, db *storage.DB, username, password string) (string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	existing, err := db.GetAccountByUsername(ctx, username)
	switch {
	case err == nil:
		if err := db.UpdatePassword(ctx, existing.ID, hash); err != nil {
			return "", err
		}
		return fmt.Sprintf("User %s already exists. Password updated.", username), nil
	case errors.Is(err, storage.ErrNotFound):
		account, err := db.CreateAccount(ctx, username, hash)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("User %s created (id %d).", username, account.ID), nil
	default:
		return "", err
	}
}
