package content

import (
	"context"
	"encoding/json"
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
		panic("content: pgx pool is required")
	}
	return &postgresStore{pool: pool}
}

const contentColumns = `id, account_id, profile_id, content_type, input_data,
	generated_text, rating, created_at`

func scanContent(row pgx.Row) (*GeneratedContent, error) {
	var c GeneratedContent
	var contentType string
	var inputData []byte
	err := row.Scan(
		&c.ID,
		&c.AccountID,
		&c.ProfileID,
		&contentType,
		&inputData,
		&c.Text,
		&c.Rating,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Type, err = ParseContentType(contentType)
	if err != nil {
		return nil, err
	}
	if len(inputData) > 0 {
		if err := json.Unmarshal(inputData, &c.Input); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (s *postgresStore) Create(ctx context.Context, c *GeneratedContent) error {
	inputData, err := json.Marshal(c.Input)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO generated_content (id, account_id, profile_id, content_type,
			input_data, generated_text, rating, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.AccountID, c.ProfileID, string(c.Type),
		inputData, c.Text, c.Rating, c.CreatedAt,
	)
	return err
}

func (s *postgresStore) Get(ctx context.Context, id uuid.UUID) (*GeneratedContent, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+contentColumns+` FROM generated_content WHERE id = $1`, id)

	c, err := scanContent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrContentNotFound
	}
	return c, err
}

func (s *postgresStore) ListByAccount(ctx context.Context, accountID string) ([]*GeneratedContent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+contentColumns+` FROM generated_content
		 WHERE account_id = $1 ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*GeneratedContent
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *postgresStore) SetRating(ctx context.Context, id uuid.UUID, rating int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE generated_content SET rating = $2 WHERE id = $1`, id, rating)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrContentNotFound
	}
	return nil
}
