// File: links.go
// Role: CRUD against the links table — durable edge bookkeeping mirroring
// graph.Link's topology. Nothing in this module reads these rows back into
// the in-memory graph store.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// LinkRecord is the durable subset of a link's attributes.
type LinkRecord struct {
	ID        string
	From      string
	To        string
	LinkType  string
	Creator   string
	CreatedAt int64
}

// InsertLink persists a new link row.
func (s *Store) InsertLink(ctx context.Context, rec LinkRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO links (id, from_id, to_id, link_type, creator, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.From, rec.To, rec.LinkType, rec.Creator, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert link %s: %w", rec.ID, err)
	}
	return nil
}

// DeleteLink removes a link row.
func (s *Store) DeleteLink(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM links WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete link %s: %w", id, err)
	}
	return checkRowsAffected(res, id)
}

// GetLink returns the durable record for id.
func (s *Store) GetLink(ctx context.Context, id string) (LinkRecord, error) {
	var rec LinkRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, from_id, to_id, link_type, creator, created_at FROM links WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.From, &rec.To, &rec.LinkType, &rec.Creator, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return LinkRecord{}, ErrNotFound
	}
	if err != nil {
		return LinkRecord{}, fmt.Errorf("store: get link %s: %w", id, err)
	}
	return rec, nil
}

// ListLinksByOpinion returns every link row touching id, as either endpoint.
func (s *Store) ListLinksByOpinion(ctx context.Context, id string) ([]LinkRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, from_id, to_id, link_type, creator, created_at FROM links
		 WHERE from_id = ? OR to_id = ?`, id, id)
	if err != nil {
		return nil, fmt.Errorf("store: list links for %s: %w", id, err)
	}
	defer rows.Close()

	var out []LinkRecord
	for rows.Next() {
		var rec LinkRecord
		if err := rows.Scan(&rec.ID, &rec.From, &rec.To, &rec.LinkType, &rec.Creator, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan link: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
