package store

import (
	"context"
	"database/sql"
	"time"
)

var ErrNotFound = sql.ErrNoRows

// CorrectionRepo caches bot corrections keyed by submission hash so a
// re-sent essay does not burn another upstream call. Only the bot binary
// uses it; the HTTP proxy stays stateless.
type CorrectionRepo struct{ DB *sql.DB }

func NewCorrectionRepo(db *sql.DB) *CorrectionRepo { return &CorrectionRepo{DB: db} }

type CorrectionRow struct {
	ID             int64
	CreatedAt      time.Time
	ChatID         int64
	SubmissionHash string
	TaskKind       string
	Engine         string
	Model          string
	Correction     string
}

// FindByHash returns the freshest correction for (hash, engine, model).
// With maxAge > 0 stale rows count as not found.
func (r *CorrectionRepo) FindByHash(ctx context.Context, hash, engine, model string, maxAge time.Duration) (*CorrectionRow, error) {
	const q = `
select id, created_at,
       coalesce(chat_id,0) as chat_id,
       submission_hash, task_kind, engine, model,
       correction
from corrections
where submission_hash = $1 and engine = $2 and model = $3
order by created_at desc
limit 1`
	row := r.DB.QueryRowContext(ctx, q, hash, engine, model)

	var out CorrectionRow
	if err := row.Scan(&out.ID, &out.CreatedAt, &out.ChatID, &out.SubmissionHash,
		&out.TaskKind, &out.Engine, &out.Model, &out.Correction); err != nil {
		return nil, err
	}
	if maxAge > 0 && time.Since(out.CreatedAt) > maxAge {
		return nil, ErrNotFound
	}
	return &out, nil
}

func (r *CorrectionRepo) Save(ctx context.Context, row CorrectionRow) (int64, error) {
	const q = `
insert into corrections (created_at, chat_id, submission_hash, task_kind, engine, model, correction)
values (now(), $1, $2, $3, $4, $5, $6)
returning id`
	var id int64
	err := r.DB.QueryRowContext(ctx, q,
		row.ChatID, row.SubmissionHash, row.TaskKind, row.Engine, row.Model, row.Correction).Scan(&id)
	return id, err
}
