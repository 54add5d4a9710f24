package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only against a disposable database named by TEST_DATABASE_URL.
func TestPostgresRepo_RoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	repo, err := OpenPostgres(ctx, url)
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.pool.Exec(ctx, `TRUNCATE chats, birthdays`)
	require.NoError(t, err)

	require.NoError(t, repo.RegisterChat(ctx, -1, 9, 0))
	require.NoError(t, repo.RegisterChat(ctx, -1, 12, 0))
	require.NoError(t, repo.SetEnabled(ctx, -1, false))

	chats, err := repo.ListAll(ctx, 9, 0)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.False(t, chats[0].Enabled)
	assert.Equal(t, 9, chats[0].Hour)

	id, err := repo.AddBirthday(ctx, 5, -1, "Иван", md(t, time.February, 6))
	require.NoError(t, err)

	got, err := repo.TodayForChat(ctx, -1, time.Date(2027, time.February, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)

	ok, err := repo.DeleteUserBirthday(ctx, -1, 6, id)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DeleteBirthday(ctx, -1, id)
	require.NoError(t, err)
	assert.True(t, ok)
}
