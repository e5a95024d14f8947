package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
)

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrNotFound       = errors.New("record not found")
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SQLITE_CONSTRAINT_UNIQUE, unique_violation
const (
	sqliteUniqueViolation   = 2067
	postgresUniqueViolation = "23505"
)

type DB struct {
	*sql.DB
	driver string
	now    func() time.Time
}

// Open 은 DB 연결 후 테이블을 준비한다
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		if dir := filepath.Dir(dsn); dir != "." && !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db := &DB{DB: sqlDB, driver: driver, now: time.Now}
	if err := db.createTables(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	slog.Info("storage.Open(): init and create table successfully", "driver", driver)
	return db, nil
}

func (db *DB) createTables() error {
	idColumn := `"id" INTEGER PRIMARY KEY AUTOINCREMENT`
	if db.driver == DriverPostgres {
		idColumn = `"id" BIGSERIAL PRIMARY KEY`
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			` + idColumn + `,
			"username" VARCHAR(50) NOT NULL UNIQUE,
			"hashed_password" VARCHAR(255) NOT NULL,
			"created_at" BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			` + idColumn + `,
			"user_id" BIGINT NOT NULL,
			"full_name" VARCHAR(100),
			"birth_date" VARCHAR(10),
			"birth_place" VARCHAR(100),
			"location" VARCHAR(100),
			"family_info" TEXT,
			"education_history" TEXT,
			"work_history" TEXT,
			"timeline_data" TEXT,
			"history_limit" INTEGER DEFAULT 100
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_user_id ON profiles(user_id)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			` + idColumn + `,
			"user_id" BIGINT NOT NULL,
			"role" VARCHAR(20) NOT NULL,
			"content" TEXT NOT NULL,
			"created_at" BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_user_created ON chat_messages(user_id, created_at)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return db.addMissingColumns()
}

// 이전 버전 profiles 테이블에 컬럼 추가
func (db *DB) addMissingColumns() error {
	columns := []struct {
		name       string
		definition string
	}{
		{"history_limit", "INTEGER DEFAULT 100"},
		{"timeline_data", "TEXT"},
	}
	for _, col := range columns {
		if _, err := db.Exec("SELECT " + col.name + " FROM profiles LIMIT 1"); err == nil {
			continue
		}
		slog.Info("storage: adding missing column", "table", "profiles", "column", col.name)
		if _, err := db.Exec("ALTER TABLE profiles ADD COLUMN " + col.name + " " + col.definition); err != nil {
			return fmt.Errorf("add column %s: %w", col.name, err)
		}
	}
	return nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

// rebind converts ? placeholders to $n for postgres.
func (db *DB) rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqliteUniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == postgresUniqueViolation
	}
	return false
}
