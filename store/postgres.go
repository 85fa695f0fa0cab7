package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/umaplan/models"
)

// Postgres keeps plans in the plan_states table through bun.
// Values must be valid JSON since the column is jsonb.
type Postgres struct {
	db     *bun.DB
	closer bool
}

// NewPostgres wraps an open connection. Close leaves db open unless owned is true.
func NewPostgres(db *bun.DB, owned bool) *Postgres {
	return &Postgres{db: db, closer: owned}
}

func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	rec := &models.PlanRecord{}
	err := p.db.NewSelect().Model(rec).
		Where("plan_key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("get %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return string(rec.State), nil
}

func (p *Postgres) Put(ctx context.Context, key, value string) error {
	if !json.Valid([]byte(value)) {
		return fmt.Errorf("put %q: value is not valid JSON", key)
	}
	rec := &models.PlanRecord{
		Key:       key,
		State:     json.RawMessage(value),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := p.db.NewInsert().Model(rec).
		On("CONFLICT (plan_key) DO UPDATE").
		Set("state = EXCLUDED.state").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	res, err := p.db.NewDelete().Model((*models.PlanRecord)(nil)).
		Where("plan_key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete %q: %w", key, ErrNotFound)
	}
	return nil
}

func (p *Postgres) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := p.db.NewSelect().
		Model((*models.PlanRecord)(nil)).
		Column("plan_key").
		OrderExpr("plan_key ASC").
		Scan(ctx, &keys)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

func (p *Postgres) Close() error {
	if p.closer {
		return p.db.Close()
	}
	return nil
}
