package library

import (
	"context"
	"database/sql"
)

// RawExec exposes the retrying exec helper to tests.
func (s *Store) RawExec(ctx context.Context, query string) (sql.Result, error) {
	return s.exec(ctx, query)
}
