package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Zickles/tanzanite/internal/cases"
	"github.com/Zickles/tanzanite/internal/config"
)

// CreateCase allocates the next case number for the guild and persists the
// record in one transaction. Connections run with _txlock=immediate, so the
// write lock is held before the MAX(case_id) read and concurrent creations
// serialize with no collisions or gaps.
func (d *Database) CreateCase(guildID, userID, moderatorID string, kind cases.Type, reason string, source cases.Source) (*CaseRecord, error) {
	if reason == "" {
		reason = config.Get().Moderation.DefaultReason
	}

	tx, err := d.db.Begin()
	if err != nil {
		return nil, &cases.PersistenceError{Op: "create", Err: err}
	}
	defer tx.Rollback()

	var caseID int64
	err = tx.QueryRow(
		`SELECT COALESCE(MAX(case_id), 0) + 1 FROM mod_cases WHERE guild_id = ?`,
		guildID,
	).Scan(&caseID)
	if err != nil {
		return nil, &cases.PersistenceError{Op: "create", Err: err}
	}

	record := &CaseRecord{
		CaseID:      caseID,
		GuildID:     guildID,
		UserID:      userID,
		ModeratorID: moderatorID,
		Kind:        kind,
		Reason:      reason,
		Source:      source,
		CreatedAt:   time.Now().Unix(),
	}

	_, err = tx.Exec(
		`INSERT INTO mod_cases (guild_id, case_id, user_id, moderator_id, kind, reason, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.GuildID, record.CaseID, record.UserID, record.ModeratorID,
		record.Kind.String(), record.Reason, string(record.Source), record.CreatedAt,
	)
	if err != nil {
		return nil, &cases.PersistenceError{Op: "create", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &cases.PersistenceError{Op: "create", Err: err}
	}

	return record, nil
}

// FindCasesByUser walks a user's case history oldest-first, invoking fn for
// each record until it returns false. The walk is lazy over the underlying
// rows and can be restarted by calling again.
func (d *Database) FindCasesByUser(guildID, userID string, fn func(*CaseRecord) bool) error {
	rows, err := d.db.Query(
		`SELECT case_id, guild_id, user_id, moderator_id, kind, reason, source, created_at
		 FROM mod_cases WHERE guild_id = ? AND user_id = ? ORDER BY case_id ASC`,
		guildID, userID,
	)
	if err != nil {
		return &cases.PersistenceError{Op: "find", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		record, err := scanCase(rows)
		if err != nil {
			return &cases.PersistenceError{Op: "find", Err: err}
		}
		if !fn(record) {
			return nil
		}
	}

	if err := rows.Err(); err != nil {
		return &cases.PersistenceError{Op: "find", Err: err}
	}
	return nil
}

// GetCase retrieves a single case by its guild-scoped number.
func (d *Database) GetCase(guildID string, caseID int64) (*CaseRecord, error) {
	row := d.db.QueryRow(
		`SELECT case_id, guild_id, user_id, moderator_id, kind, reason, source, created_at
		 FROM mod_cases WHERE guild_id = ? AND case_id = ?`,
		guildID, caseID,
	)

	record, err := scanCase(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("case #%d not found in guild %s", caseID, guildID)
	}
	if err != nil {
		return nil, &cases.PersistenceError{Op: "get", Err: err}
	}
	return record, nil
}

// AmendReason updates the reason of an existing case. It is the only
// permitted mutation of a persisted case.
func (d *Database) AmendReason(guildID string, caseID int64, reason string) error {
	result, err := d.db.Exec(
		`UPDATE mod_cases SET reason = ? WHERE guild_id = ? AND case_id = ?`,
		reason, guildID, caseID,
	)
	if err != nil {
		return &cases.PersistenceError{Op: "amend", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return &cases.PersistenceError{Op: "amend", Err: err}
	}
	if affected == 0 {
		return fmt.Errorf("case #%d not found in guild %s", caseID, guildID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCase(row rowScanner) (*CaseRecord, error) {
	var record CaseRecord
	var kind, source string

	err := row.Scan(&record.CaseID, &record.GuildID, &record.UserID, &record.ModeratorID,
		&kind, &record.Reason, &source, &record.CreatedAt)
	if err != nil {
		return nil, err
	}

	record.Kind, err = cases.ParseType(kind)
	if err != nil {
		return nil, err
	}
	record.Source = cases.Source(source)
	return &record, nil
}
