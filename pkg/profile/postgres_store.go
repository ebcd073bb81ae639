package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by Postgres.
// Panics if pool is nil to fail fast during initialization.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	if pool == nil {
		panic("profile: pgx pool is required")
	}
	return &postgresStore{pool: pool}
}

const profileColumns = `id, account_id, name, target_audience, content_goal,
	tone_of_voice, keywords, created_at, updated_at`

func scanProfile(row pgx.Row) (*NicheProfile, error) {
	var p NicheProfile
	err := row.Scan(
		&p.ID,
		&p.AccountID,
		&p.Name,
		&p.TargetAudience,
		&p.ContentGoal,
		&p.ToneOfVoice,
		&p.Keywords,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *postgresStore) Create(ctx context.Context, p *NicheProfile) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO niche_profiles (id, account_id, name, target_audience,
			content_goal, tone_of_voice, keywords, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.AccountID, p.Name, p.TargetAudience,
		string(p.ContentGoal), string(p.ToneOfVoice), p.Keywords,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (s *postgresStore) Get(ctx context.Context, id uuid.UUID) (*NicheProfile, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM niche_profiles WHERE id = $1`, id)

	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	return p, err
}

func (s *postgresStore) ListByAccount(ctx context.Context, accountID string) ([]*NicheProfile, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM niche_profiles
		 WHERE account_id = $1 ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*NicheProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *postgresStore) Update(ctx context.Context, p *NicheProfile) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE niche_profiles
		 SET name = $2, target_audience = $3, content_goal = $4,
		     tone_of_voice = $5, keywords = $6, updated_at = $7
		 WHERE id = $1`,
		p.ID, p.Name, p.TargetAudience, string(p.ContentGoal),
		string(p.ToneOfVoice), p.Keywords, p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, id uuid.UUID, accountID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM niche_profiles WHERE id = $1 AND account_id = $2`,
		id, accountID)
	return err
}
