package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/workforce-scheduler/pkg/audit"
)

// auditLockKey is the transaction-scoped advisory lock serialising audit appends
const auditLockKey int64 = 0x61756469745f6c67

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func lastAuditHash(ctx context.Context, q rowQuerier) (string, error) {
	var hash string
	err := q.QueryRow(ctx, `SELECT hash FROM audit_log ORDER BY seq DESC LIMIT 1`).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query last audit hash: %w", err)
	}
	return hash, nil
}

// LastAuditHash returns the hash of the newest audit entry, or "" for an empty log
func (d *DB) LastAuditHash(ctx context.Context) (string, error) {
	return lastAuditHash(ctx, d.pool)
}

// AppendAuditEntry links entry to the newest audit entry and inserts it in one transaction.
// The advisory lock makes concurrent appenders queue behind each other.
func (d *DB) AppendAuditEntry(ctx context.Context, entry audit.Entry) (audit.Entry, error) {
	var stored audit.Entry
	err := pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, auditLockKey); err != nil {
			return fmt.Errorf("failed to lock audit log: %w", err)
		}

		prevHash, err := lastAuditHash(ctx, tx)
		if err != nil {
			return err
		}
		stored = audit.Link(prevHash, entry)

		_, err = tx.Exec(ctx, `
			INSERT INTO audit_log (id, organization_id, action, entity_id, payload, prev_hash, hash, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, stored.ID, stored.OrganizationID, stored.Action, stored.EntityID, stored.Payload, stored.PrevHash, stored.Hash, stored.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return audit.Entry{}, err
	}
	return stored, nil
}

// ListAuditEntries returns the whole audit log, oldest first
func (d *DB) ListAuditEntries(ctx context.Context) ([]audit.Entry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, organization_id, action, entity_id, payload, prev_hash, hash, created_at
		FROM audit_log
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.Action, &e.EntityID, &e.Payload, &e.PrevHash, &e.Hash, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit log: %w", err)
	}

	return entries, nil
}
