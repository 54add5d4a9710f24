package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/ykvlv/birthday-bot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// --- Chat registry ---

func (r *SQLiteRepo) RegisterChat(ctx context.Context, chatID int64, defaultHour, defaultMinute int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO chats (chat_id, enabled, hour, minute)
		VALUES (?, 1, ?, ?)`,
		chatID, defaultHour, defaultMinute,
	)
	if err != nil {
		return fmt.Errorf("register chat: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) ChatExists(ctx context.Context, chatID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM chats WHERE chat_id = ? LIMIT 1`, chatID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("chat exists: %w", err)
	}
	return true, nil
}

func (r *SQLiteRepo) GetChat(ctx context.Context, chatID int64, defaultHour, defaultMinute int) (domain.ChatSetting, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT chat_id, enabled, hour, minute FROM chats WHERE chat_id = ?`, chatID)
	c, err := scanChat(row, defaultHour, defaultMinute)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ChatSetting{}, false, nil
	}
	if err != nil {
		return domain.ChatSetting{}, false, fmt.Errorf("get chat: %w", err)
	}
	return c, true, nil
}

func (r *SQLiteRepo) SetEnabled(ctx context.Context, chatID int64, enabled bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE chats SET enabled = ? WHERE chat_id = ?`, boolToInt(enabled), chatID)
	if err != nil {
		return fmt.Errorf("set enabled: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) SetTime(ctx context.Context, chatID int64, hour, minute int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE chats SET hour = ?, minute = ? WHERE chat_id = ?`, hour, minute, chatID)
	if err != nil {
		return fmt.Errorf("set time: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) ListAll(ctx context.Context, defaultHour, defaultMinute int) ([]domain.ChatSetting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT chat_id, enabled, hour, minute FROM chats ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var res []domain.ChatSetting
	for rows.Next() {
		c, err := scanChat(rows, defaultHour, defaultMinute)
		if err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		res = append(res, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// --- Birthdays ---

func (r *SQLiteRepo) AddBirthday(ctx context.Context, userID, chatID int64, name string, date domain.MonthDay) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO birthdays (user_id, chat_id, name, date)
		VALUES (?, ?, ?, ?)`,
		userID, chatID, name, date.Stored(),
	)
	if err != nil {
		return 0, fmt.Errorf("add birthday: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepo) ListForChat(ctx context.Context, chatID int64) ([]domain.Birthday, error) {
	return r.queryBirthdays(ctx, `
		SELECT id, user_id, chat_id, name, date
		FROM birthdays
		WHERE chat_id = ?
		ORDER BY date, id`,
		chatID,
	)
}

func (r *SQLiteRepo) ListForUser(ctx context.Context, chatID, userID int64) ([]domain.Birthday, error) {
	return r.queryBirthdays(ctx, `
		SELECT id, user_id, chat_id, name, date
		FROM birthdays
		WHERE chat_id = ? AND user_id = ?
		ORDER BY date, id`,
		chatID, userID,
	)
}

func (r *SQLiteRepo) TodayForChat(ctx context.Context, chatID int64, today time.Time) ([]domain.Birthday, error) {
	all, err := r.ListForChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return domain.FilterOn(all, today), nil
}

func (r *SQLiteRepo) DeleteBirthday(ctx context.Context, chatID, id int64) (bool, error) {
	return r.deleteRows(ctx, `DELETE FROM birthdays WHERE chat_id = ? AND id = ?`, chatID, id)
}

func (r *SQLiteRepo) DeleteUserBirthday(ctx context.Context, chatID, userID, id int64) (bool, error) {
	return r.deleteRows(ctx, `DELETE FROM birthdays WHERE chat_id = ? AND user_id = ? AND id = ?`, chatID, userID, id)
}

func (r *SQLiteRepo) queryBirthdays(ctx context.Context, query string, args ...any) ([]domain.Birthday, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list birthdays: %w", err)
	}
	defer rows.Close()

	var res []domain.Birthday
	for rows.Next() {
		b, err := scanBirthday(rows)
		if err != nil {
			return nil, fmt.Errorf("scan birthday: %w", err)
		}
		res = append(res, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *SQLiteRepo) deleteRows(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete birthday: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
