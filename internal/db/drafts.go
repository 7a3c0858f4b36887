package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-builder/internal/form"
)

const draftColumns = `id, owner, template_id, fields, active, created_at, updated_at`

// CreateDraft inserts a new draft.
func (db *DB) CreateDraft(ctx context.Context, d *form.Draft) error {
	fields, active, err := marshalDraftState(d)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO resume_drafts (`+draftColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.Owner, d.TemplateID, fields, active, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}
	return nil
}

// GetDraft retrieves a draft by ID scoped to owner. It returns nil, nil when
// no such draft exists.
func (db *DB) GetDraft(ctx context.Context, owner string, id uuid.UUID) (*form.Draft, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+draftColumns+` FROM resume_drafts WHERE id = $1 AND owner = $2`,
		id, owner,
	)
	d, err := scanDraft(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return d, nil
}

// ListDrafts returns owner's drafts, most recently updated first.
func (db *DB) ListDrafts(ctx context.Context, owner string) ([]*form.Draft, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+draftColumns+` FROM resume_drafts WHERE owner = $1 ORDER BY updated_at DESC`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	drafts := make([]*form.Draft, 0)
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

// SaveDraft overwrites a draft's editable state. The last write wins.
// It reports false when the draft does not exist.
func (db *DB) SaveDraft(ctx context.Context, d *form.Draft) (bool, error) {
	fields, active, err := marshalDraftState(d)
	if err != nil {
		return false, err
	}

	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = time.Now().UTC()
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE resume_drafts
		 SET template_id = $3, fields = $4, active = $5, updated_at = $6
		 WHERE id = $1 AND owner = $2`,
		d.ID, d.Owner, d.TemplateID, fields, active, d.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save draft: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteDraft removes a draft. It reports false when nothing was deleted.
func (db *DB) DeleteDraft(ctx context.Context, owner string, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM resume_drafts WHERE id = $1 AND owner = $2`,
		id, owner,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete draft: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func marshalDraftState(d *form.Draft) ([]byte, []byte, error) {
	fields := d.Fields
	if fields == nil {
		fields = map[string][]string{}
	}
	active := d.Active
	if active == nil {
		active = map[string]int{}
	}

	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal draft fields: %w", err)
	}
	activeJSON, err := json.Marshal(active)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal draft active state: %w", err)
	}
	return fieldsJSON, activeJSON, nil
}

func scanDraft(row pgx.Row) (*form.Draft, error) {
	var (
		d                      form.Draft
		fieldsJSON, activeJSON []byte
	)
	if err := row.Scan(&d.ID, &d.Owner, &d.TemplateID, &fieldsJSON, &activeJSON, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fieldsJSON, &d.Fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft fields: %w", err)
	}
	if err := json.Unmarshal(activeJSON, &d.Active); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft active state: %w", err)
	}
	if d.Fields == nil {
		d.Fields = map[string][]string{}
	}
	if d.Active == nil {
		d.Active = map[string]int{}
	}
	return &d, nil
}
