package store

import "context"

// Open returns a PostgreSQL repository when databaseURL is set, otherwise
// the embedded SQLite database at sqlitePath.
func Open(ctx context.Context, databaseURL, sqlitePath string) (Repo, error) {
	if databaseURL != "" {
		return OpenPostgres(ctx, databaseURL)
	}
	return OpenSQLite(ctx, sqlitePath)
}
