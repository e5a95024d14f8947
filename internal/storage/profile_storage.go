package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"RealEgo_Backend/internal/models"
)

const profileColumns = `id, user_id, full_name, birth_date, birth_place, location,
	family_info, education_history, work_history, timeline_data, history_limit`

// GetProfile never reports not-found: a missing profile is created on first read.
func (db *DB) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	profile, err := db.selectProfile(ctx, userID)
	if !errors.Is(err, ErrNotFound) {
		return profile, err
	}
	if err := db.ensureProfile(ctx, userID); err != nil {
		return nil, err
	}
	return db.selectProfile(ctx, userID)
}

// UpdateProfile applies only the non-nil fields of update.
func (db *DB) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (*models.Profile, error) {
	if err := db.ensureProfile(ctx, userID); err != nil {
		return nil, err
	}

	var sets []string
	var args []any
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if update.FullName != nil {
		add("full_name", *update.FullName)
	}
	if update.BirthDate != nil {
		add("birth_date", *update.BirthDate)
	}
	if update.BirthPlace != nil {
		add("birth_place", *update.BirthPlace)
	}
	if update.Location != nil {
		add("location", *update.Location)
	}
	if update.FamilyInfo != nil {
		add("family_info", *update.FamilyInfo)
	}
	if update.EducationHistory != nil {
		add("education_history", *update.EducationHistory)
	}
	if update.WorkHistory != nil {
		add("work_history", *update.WorkHistory)
	}
	if update.TimelineData != nil {
		add("timeline_data", *update.TimelineData)
	}
	if update.HistoryLimit != nil {
		add("history_limit", *update.HistoryLimit)
	}

	if len(sets) > 0 {
		args = append(args, userID)
		query := "UPDATE profiles SET " + strings.Join(sets, ", ") + " WHERE user_id = ?"
		if _, err := db.ExecContext(ctx, db.rebind(query), args...); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}
	return db.selectProfile(ctx, userID)
}

func (db *DB) ensureProfile(ctx context.Context, userID int64) error {
	_, err := db.ExecContext(ctx,
		db.rebind(`INSERT INTO profiles(user_id, history_limit) VALUES(?, ?) ON CONFLICT(user_id) DO NOTHING`),
		userID, models.DefaultHistoryLimit)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (db *DB) selectProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	row := db.QueryRowContext(ctx,
		db.rebind(`SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`), userID)

	var p models.Profile
	var fullName, birthDate, birthPlace, location, family, education, work, timeline sql.NullString
	var historyLimit sql.NullInt64
	if err := row.Scan(
		&p.ID, &p.UserID,
		&fullName, &birthDate, &birthPlace, &location,
		&family, &education, &work, &timeline,
		&historyLimit,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	p.FullName = fullName.String
	p.BirthDate = birthDate.String
	p.BirthPlace = birthPlace.String
	p.Location = location.String
	p.FamilyInfo = family.String
	p.EducationHistory = education.String
	p.WorkHistory = work.String
	p.TimelineData = timeline.String
	p.HistoryLimit = models.DefaultHistoryLimit
	if historyLimit.Valid {
		p.HistoryLimit = int(historyLimit.Int64)
	}
	return &p, nil
}
