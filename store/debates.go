// File: debates.go
// Role: CRUD against debates and opinion_debates — the debate index and the
// global-debate (is_all) lifecycle singleton's durable backing.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DebateRecord is the durable subset of a debate's attributes.
type DebateRecord struct {
	ID        string
	Name      string
	Creator   string
	IsAll     bool
	CreatedAt int64
}

// InsertDebate persists a new debate row.
func (s *Store) InsertDebate(ctx context.Context, rec DebateRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO debates (id, name, creator, is_all, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Creator, rec.IsAll, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert debate %s: %w", rec.ID, err)
	}
	return nil
}

// RenameDebate updates a debate's display name.
func (s *Store) RenameDebate(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE debates SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("store: rename debate %s: %w", id, err)
	}
	return checkRowsAffected(res, id)
}

// DeleteDebate removes a debate row and its membership rows. Callers
// (debate.DeleteDebate) are responsible for rejecting deletion of the
// global debate before calling this.
func (s *Store) DeleteDebate(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM opinion_debates WHERE debate_id = ?`, id); err != nil {
		return fmt.Errorf("store: delete opinion_debates for debate %s: %w", id, err)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM debates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete debate %s: %w", id, err)
	}
	return checkRowsAffected(res, id)
}

// GetDebate returns the durable record for id.
func (s *Store) GetDebate(ctx context.Context, id string) (DebateRecord, error) {
	var rec DebateRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, creator, is_all, created_at FROM debates WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Creator, &rec.IsAll, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return DebateRecord{}, ErrNotFound
	}
	if err != nil {
		return DebateRecord{}, fmt.Errorf("store: get debate %s: %w", id, err)
	}
	return rec, nil
}

// GlobalDebate returns the is_all=true debate row, if one has been created.
func (s *Store) GlobalDebate(ctx context.Context) (DebateRecord, error) {
	var rec DebateRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, creator, is_all, created_at FROM debates WHERE is_all = TRUE LIMIT 1`,
	).Scan(&rec.ID, &rec.Name, &rec.Creator, &rec.IsAll, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return DebateRecord{}, ErrNotFound
	}
	if err != nil {
		return DebateRecord{}, fmt.Errorf("store: get global debate: %w", err)
	}
	return rec, nil
}

// QueryDebates returns debates whose name contains substr (case-sensitive
// substring match), ordered by name, truncated to limit when limit > 0.
func (s *Store) QueryDebates(ctx context.Context, substr string, limit int) ([]DebateRecord, error) {
	query := `SELECT id, name, creator, is_all, created_at FROM debates
		 WHERE name LIKE CONCAT('%', ?, '%') ORDER BY name`
	args := []any{substr}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query debates: %w", err)
	}
	defer rows.Close()

	var out []DebateRecord
	for rows.Next() {
		var rec DebateRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Creator, &rec.IsAll, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan debate: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CiteInDebate adds opinionID to debateID's membership, a no-op if already a
// member.
func (s *Store) CiteInDebate(ctx context.Context, opinionID, debateID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO opinion_debates (opinion_id, debate_id) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE opinion_id = opinion_id`, opinionID, debateID)
	if err != nil {
		return fmt.Errorf("store: cite opinion %s in debate %s: %w", opinionID, debateID, err)
	}
	return nil
}

// IsMember reports whether opinionID belongs to debateID.
func (s *Store) IsMember(ctx context.Context, opinionID, debateID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM opinion_debates WHERE opinion_id = ? AND debate_id = ?`,
		opinionID, debateID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("store: check membership %s/%s: %w", opinionID, debateID, err)
	}
	return count > 0, nil
}

// MembersOf returns the opinion IDs belonging to debateID.
func (s *Store) MembersOf(ctx context.Context, debateID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT opinion_id FROM opinion_debates WHERE debate_id = ?`, debateID)
	if err != nil {
		return nil, fmt.Errorf("store: members of %s: %w", debateID, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan member id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
