package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ykvlv/birthday-bot/internal/domain"
)

// PostgresRepo implements Repo on a PostgreSQL connection pool.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects, pings and migrates the database at databaseURL.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	scripts, err := migrationScripts("postgres")
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	for _, script := range scripts {
		if _, err := pool.Exec(ctx, script); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	return &PostgresRepo{pool: pool}, nil
}

// Close releases the pool. It never fails.
func (r *PostgresRepo) Close() error {
	r.pool.Close()
	return nil
}

// --- Chat registry ---

func (r *PostgresRepo) RegisterChat(ctx context.Context, chatID int64, defaultHour, defaultMinute int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chats (chat_id, enabled, hour, minute)
		VALUES ($1, 1, $2, $3)
		ON CONFLICT (chat_id) DO NOTHING`,
		chatID, defaultHour, defaultMinute,
	)
	if err != nil {
		return fmt.Errorf("register chat: %w", err)
	}
	return nil
}

func (r *PostgresRepo) ChatExists(ctx context.Context, chatID int64) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM chats WHERE chat_id = $1 LIMIT 1`, chatID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("chat exists: %w", err)
	}
	return true, nil
}

func (r *PostgresRepo) GetChat(ctx context.Context, chatID int64, defaultHour, defaultMinute int) (domain.ChatSetting, bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT chat_id, enabled, hour, minute FROM chats WHERE chat_id = $1`, chatID)
	c, err := scanChat(row, defaultHour, defaultMinute)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ChatSetting{}, false, nil
	}
	if err != nil {
		return domain.ChatSetting{}, false, fmt.Errorf("get chat: %w", err)
	}
	return c, true, nil
}

func (r *PostgresRepo) SetEnabled(ctx context.Context, chatID int64, enabled bool) error {
	_, err := r.pool.Exec(ctx, `UPDATE chats SET enabled = $1 WHERE chat_id = $2`, boolToInt(enabled), chatID)
	if err != nil {
		return fmt.Errorf("set enabled: %w", err)
	}
	return nil
}

func (r *PostgresRepo) SetTime(ctx context.Context, chatID int64, hour, minute int) error {
	_, err := r.pool.Exec(ctx, `UPDATE chats SET hour = $1, minute = $2 WHERE chat_id = $3`, hour, minute, chatID)
	if err != nil {
		return fmt.Errorf("set time: %w", err)
	}
	return nil
}

func (r *PostgresRepo) ListAll(ctx context.Context, defaultHour, defaultMinute int) ([]domain.ChatSetting, error) {
	rows, err := r.pool.Query(ctx, `SELECT chat_id, enabled, hour, minute FROM chats ORDER BY chat_id`)
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
	return res, rows.Err()
}

// --- Birthdays ---

func (r *PostgresRepo) AddBirthday(ctx context.Context, userID, chatID int64, name string, date domain.MonthDay) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO birthdays (user_id, chat_id, name, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		userID, chatID, name, date.Stored(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add birthday: %w", err)
	}
	return id, nil
}

func (r *PostgresRepo) ListForChat(ctx context.Context, chatID int64) ([]domain.Birthday, error) {
	return r.queryBirthdays(ctx, `
		SELECT id, user_id, chat_id, name, date
		FROM birthdays
		WHERE chat_id = $1
		ORDER BY date, id`,
		chatID,
	)
}

func (r *PostgresRepo) ListForUser(ctx context.Context, chatID, userID int64) ([]domain.Birthday, error) {
	return r.queryBirthdays(ctx, `
		SELECT id, user_id, chat_id, name, date
		FROM birthdays
		WHERE chat_id = $1 AND user_id = $2
		ORDER BY date, id`,
		chatID, userID,
	)
}

func (r *PostgresRepo) TodayForChat(ctx context.Context, chatID int64, today time.Time) ([]domain.Birthday, error) {
	all, err := r.ListForChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return domain.FilterOn(all, today), nil
}

func (r *PostgresRepo) DeleteBirthday(ctx context.Context, chatID, id int64) (bool, error) {
	return r.deleteRows(ctx, `DELETE FROM birthdays WHERE chat_id = $1 AND id = $2`, chatID, id)
}

func (r *PostgresRepo) DeleteUserBirthday(ctx context.Context, chatID, userID, id int64) (bool, error) {
	return r.deleteRows(ctx, `DELETE FROM birthdays WHERE chat_id = $1 AND user_id = $2 AND id = $3`, chatID, userID, id)
}

func (r *PostgresRepo) queryBirthdays(ctx context.Context, query string, args ...any) ([]domain.Birthday, error) {
	rows, err := r.pool.Query(ctx, query, args...)
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
	return res, rows.Err()
}

func (r *PostgresRepo) deleteRows(ctx context.Context, query string, args ...any) (bool, error) {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete birthday: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
