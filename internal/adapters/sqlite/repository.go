package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/ports"
)

// DefaultDSN keeps the database in process memory; it is shared by every
// connection in the pool and disappears when the last one closes.
const DefaultDSN = "file:staffdesk?mode=memory&cache=shared"

const schema = `
CREATE TABLE IF NOT EXISTS records (
	kind     TEXT    NOT NULL,
	id       INTEGER NOT NULL,
	position INTEGER NOT NULL,
	payload  TEXT    NOT NULL,
	PRIMARY KEY (kind, id)
);
CREATE INDEX IF NOT EXISTS records_kind_position ON records (kind, position);
CREATE TABLE IF NOT EXISTS sequences (
	kind TEXT    PRIMARY KEY,
	next_id INTEGER NOT NULL
);
`

// bumpSeq raises the kind's next id to at least the given value.
const bumpSeq = `
INSERT INTO sequences (kind, next_id) VALUES (?, ?)
ON CONFLICT (kind) DO UPDATE SET next_id = MAX(next_id, excluded.next_id)`

// DB owns the connection pool shared by every collection.
type DB struct {
	db *sql.DB
}

// Open opens the database and applies the schema. An empty dsn uses DefaultDSN.
func Open(dsn string) (*DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// A shared-cache memory database vanishes with its last connection, and
	// concurrent writers on one cache fail with SQLITE_LOCKED. One pinned
	// connection avoids both.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error { return d.db.Close() }

// Ping backs the readiness probe.
func (d *DB) Ping(ctx context.Context) error { return d.db.PingContext(ctx) }

// Collection is a ports.Collection over the records table, one kind per value.
type Collection[T domain.Entity[T]] struct {
	db   *sql.DB
	kind domain.Kind
}

// NewCollection replaces any rows of kind with seed, in order.
func NewCollection[T domain.Entity[T]](ctx context.Context, d *DB, kind domain.Kind, seed []T) (*Collection[T], error) {
	c := &Collection[T]{db: d.db, kind: kind}
	err := c.tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE kind=?`, kind); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sequences WHERE kind=?`, kind); err != nil {
			return err
		}
		var top int64
		for i, rec := range seed {
			if rec.EntityID() <= 0 {
				return fmt.Errorf("seed %s: %w: %d", kind, domain.ErrInvalidID, rec.EntityID())
			}
			if err := c.insertRow(ctx, tx, rec, i); err != nil {
				return fmt.Errorf("seed %s %d: %w", kind, rec.EntityID(), err)
			}
			top = max(top, rec.EntityID())
		}
		_, err := tx.ExecContext(ctx, bumpSeq, kind, top+1)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Collection[T]) Add(ctx context.Context, rec T) (T, error) {
	var added T
	err := c.tx(ctx, func(tx *sql.Tx) error {
		var maxID, next sql.NullInt64
		var count int
		if err := tx.QueryRowContext(ctx,
			`SELECT MAX(id), COUNT(*) FROM records WHERE kind=?`, c.kind).Scan(&maxID, &count); err != nil {
			return err
		}
		err := tx.QueryRowContext(ctx, `SELECT next_id FROM sequences WHERE kind=?`, c.kind).Scan(&next)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		added = rec.WithID(max(next.Int64, maxID.Int64+1))
		if err := c.insertRow(ctx, tx, added, count); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, bumpSeq, c.kind, added.EntityID()+1)
		return err
	})
	return added, err
}

func (c *Collection[T]) Insert(ctx context.Context, rec T, index int) error {
	id := rec.EntityID()
	if id <= 0 {
		return fmt.Errorf("%s %d: %w", c.kind, id, domain.ErrInvalidID)
	}
	return c.tx(ctx, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM records WHERE kind=? AND id=?`, c.kind, id).Scan(&exists); err != nil {
			return err
		}
		if exists > 0 {
			return fmt.Errorf("%s %d: %w", c.kind, id, domain.ErrDuplicateID)
		}
		var count int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM records WHERE kind=?`, c.kind).Scan(&count); err != nil {
			return err
		}
		if index < 0 {
			index = 0
		}
		if index > count {
			index = count
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE records SET position=position+1 WHERE kind=? AND position>=?`, c.kind, index); err != nil {
			return err
		}
		if err := c.insertRow(ctx, tx, rec, index); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, bumpSeq, c.kind, id+1)
		return err
	})
}

func (c *Collection[T]) Replace(ctx context.Context, id int64, rec T) error {
	payload, err := json.Marshal(rec.WithID(id))
	if err != nil {
		return err
	}
	res, err := c.db.ExecContext(ctx,
		`UPDATE records SET payload=? WHERE kind=? AND id=?`, string(payload), c.kind, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s %d: %w", c.kind, id, domain.ErrNotFound)
	}
	return nil
}

// ReplaceAll updates every record in one transaction.
func (c *Collection[T]) ReplaceAll(ctx context.Context, recs []T) error {
	return c.tx(ctx, func(tx *sql.Tx) error {
		for _, rec := range recs {
			id := rec.EntityID()
			payload, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx,
				`UPDATE records SET payload=? WHERE kind=? AND id=?`, string(payload), c.kind, id)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("%s %d: %w", c.kind, id, domain.ErrNotFound)
			}
		}
		return nil
	})
}

func (c *Collection[T]) Remove(ctx context.Context, id int64) (ports.Removal[T], error) {
	var out ports.Removal[T]
	err := c.tx(ctx, func(tx *sql.Tx) error {
		var payload string
		var position int
		err := tx.QueryRowContext(ctx,
			`SELECT payload, position FROM records WHERE kind=? AND id=?`, c.kind, id).Scan(&payload, &position)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s %d: %w", c.kind, id, domain.ErrNotFound)
		}
		if err != nil {
			return err
		}
		rec, err := c.decode(payload)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM records WHERE kind=? AND id=?`, c.kind, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE records SET position=position-1 WHERE kind=? AND position>?`, c.kind, position); err != nil {
			return err
		}
		out = ports.Removal[T]{Record: rec, Index: position}
		return nil
	})
	return out, err
}

func (c *Collection[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	var payload string
	err := c.db.QueryRowContext(ctx,
		`SELECT payload FROM records WHERE kind=? AND id=?`, c.kind, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%s %d: %w", c.kind, id, domain.ErrNotFound)
	}
	if err != nil {
		return zero, err
	}
	return c.decode(payload)
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT payload FROM records WHERE kind=? ORDER BY position`, c.kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		rec, err := c.decode(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (c *Collection[T]) insertRow(ctx context.Context, tx *sql.Tx, rec T, position int) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO records (kind, id, position, payload) VALUES (?,?,?,?)`,
		c.kind, rec.EntityID(), position, string(payload))
	return err
}

func (c *Collection[T]) decode(payload string) (T, error) {
	var rec T
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return rec, fmt.Errorf("decode %s: %w", c.kind, err)
	}
	return rec.WithID(rec.EntityID()), nil
}

func (c *Collection[T]) tx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

var _ ports.Collection[domain.Employee] = (*Collection[domain.Employee])(nil)
