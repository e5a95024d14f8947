package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"RealEgo_Backend/internal/models"
)

// CreateAccount inserts the account and its empty profile.
func (db *DB) CreateAccount(ctx context.Context, username, passwordHash string) (*models.Account, error) {
	now := db.now()
	account := &models.Account{Username: username, PasswordHash: passwordHash, CreatedAt: now}

	err := db.QueryRowContext(ctx,
		db.rebind(`INSERT INTO users(username, hashed_password, created_at) VALUES(?, ?, ?) RETURNING id`),
		username, passwordHash, now.UnixNano(),
	).Scan(&account.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if err := db.ensureProfile(ctx, account.ID); err != nil {
		return nil, err
	}
	return account, nil
}

func (db *DB) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	row := db.QueryRowContext(ctx,
		db.rebind(`SELECT id, username, hashed_password, created_at FROM users WHERE username = ?`), username)
	return scanAccount(row)
}

func (db *DB) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	row := db.QueryRowContext(ctx,
		db.rebind(`SELECT id, username, hashed_password, created_at FROM users WHERE id = ?`), id)
	return scanAccount(row)
}

func (db *DB) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := db.ExecContext(ctx, db.rebind(`UPDATE users SET hashed_password = ? WHERE id = ?`), passwordHash, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	var account models.Account
	var createdAt int64
	if err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	account.CreatedAt = time.Unix(0, createdAt)
	return &account, nil
}
