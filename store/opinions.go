// File: opinions.go
// Role: CRUD against the opinions table — metadata only (content,
// logic_type, node_type, creator, created_at). Scores never appear here;
// they live exclusively in graph.Graph.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get-style methods when no row matches.
var ErrNotFound = errors.New("store: not found")

// OpinionRecord is the durable subset of an opinion's attributes.
type OpinionRecord struct {
	ID        string
	Content   string
	LogicType string
	NodeType  string
	Creator   string
	CreatedAt int64
}

// InsertOpinion persists a new opinion row.
func (s *Store) InsertOpinion(ctx context.Context, rec OpinionRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO opinions (id, content, logic_type, node_type, creator, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Content, rec.LogicType, rec.NodeType, rec.Creator, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: insert opinion %s: %w", rec.ID, err)
	}
	return nil
}

// UpdateOpinionContent patches an opinion's displayed content; scores are
// never part of this call.
func (s *Store) UpdateOpinionContent(ctx context.Context, id, content string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE opinions SET content = ? WHERE id = ?`, content, id)
	if err != nil {
		return fmt.Errorf("store: update opinion %s: %w", id, err)
	}
	return checkRowsAffected(res, id)
}

// DeleteOpinion removes an opinion row and its debate memberships.
func (s *Store) DeleteOpinion(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM opinion_debates WHERE opinion_id = ?`, id); err != nil {
		return fmt.Errorf("store: delete opinion_debates for %s: %w", id, err)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM opinions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete opinion %s: %w", id, err)
	}
	return checkRowsAffected(res, id)
}

// GetOpinion returns the durable record for id.
func (s *Store) GetOpinion(ctx context.Context, id string) (OpinionRecord, error) {
	var rec OpinionRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, content, logic_type, node_type, creator, created_at FROM opinions WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Content, &rec.LogicType, &rec.NodeType, &rec.Creator, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return OpinionRecord{}, ErrNotFound
	}
	if err != nil {
		return OpinionRecord{}, fmt.Errorf("store: get opinion %s: %w", id, err)
	}
	return rec, nil
}

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected for %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
