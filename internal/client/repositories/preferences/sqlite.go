package preferences

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/vitalsync/internal/dbx"
)

// SQLiteStore is the Store backed by a migrated SQLite database.
type SQLiteStore struct {
	db *sql.DB
	*SQLiteRepository
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, SQLiteRepository: NewSQLiteRepository(db)}
}

// Commit applies writes inside one transaction.
func (s *SQLiteStore) Commit(ctx context.Context, writes ...Write) error {
	if len(writes) == 0 {
		return nil
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		for _, w := range writes {
			if err := repo.apply(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
