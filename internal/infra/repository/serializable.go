package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxSerializationRetries = 3

// withSerializableScope wraps a conflict check plus write in one
// serializable transaction so two concurrent bookings for the same scope
// cannot both pass the check. Postgres aborts one of the transactions with
// SQLSTATE 40001; those are retried a bounded number of times.
func withSerializableScope(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < maxSerializationRetries; attempt++ {
		err = db.WithContext(ctx).Transaction(fn, &sql.TxOptions{
			Isolation: sql.LevelSerializable,
		})
		if !isSerializationFailure(err) {
			return err
		}
	}
	return err
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

// lockOverlapping selects at most one row matching the overlap predicate
// and locks it FOR UPDATE, so a concurrent writer touching the same slot
// blocks until this transaction commits. Postgres does not accept FOR
// UPDATE on aggregate queries, so the check must target rows, never a
// count. ErrRecordNotFound on the result means the slot is free.
func lockOverlapping(tx *gorm.DB, dest any, cond string, args ...any) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(cond, args...).
		Take(dest)
}
