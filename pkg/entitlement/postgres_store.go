package entitlement

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresStore implements AccountStore on top of a pgx connection pool.
//
// Every mutation is a single conditional UPDATE so the check and the write
// happen in one statement on the database side. The service may run as many
// stateless instances; nothing here relies on in-process state.
type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates an AccountStore backed by Postgres.
// Panics if pool is nil to fail fast during initialization.
func NewPostgresStore(pool *pgxpool.Pool) AccountStore {
	if pool == nil {
		panic("entitlement: pgx pool is required")
	}
	return &postgresStore{pool: pool}
}

const accountColumns = `id, plan, credits_remaining, last_credits_reset,
	billing_customer_id, billing_subscription_id, created_at, updated_at`

func scanAccount(row pgx.Row) (*Account, error) {
	var acc Account
	var plan string
	err := row.Scan(
		&acc.ID,
		&plan,
		&acc.CreditsRemaining,
		&acc.LastCreditsReset,
		&acc.BillingCustomerID,
		&acc.BillingSubscriptionID,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	acc.Plan, err = ParsePlan(plan)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *postgresStore) Get(ctx context.Context, id string) (*Account, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	return acc, err
}

func (s *postgresStore) GetByBillingCustomerID(ctx context.Context, customerID string) (*Account, error) {
	if customerID == "" {
		return nil, ErrAccountNotFound
	}

	row := s.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE billing_customer_id = $1`, customerID)

	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	return acc, err
}

func (s *postgresStore) Create(ctx context.Context, account *Account) error {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO accounts (id, plan, credits_remaining, last_credits_reset,
			billing_customer_id, billing_subscription_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO NOTHING`,
		account.ID,
		string(account.Plan),
		account.CreditsRemaining,
		account.LastCreditsReset,
		account.BillingCustomerID,
		account.BillingSubscriptionID,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return errors.Join(ErrFailedToStoreAccount, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountAlreadyExists
	}
	return nil
}

// ConsumeCredit relies on the WHERE clause to test and decrement in one
// statement; two concurrent calls on a one-credit balance serialize on the
// row lock and only the first matches the guard.
func (s *postgresStore) ConsumeCredit(ctx context.Context, id string) (*Account, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE accounts
		 SET credits_remaining = credits_remaining - 1, updated_at = now()
		 WHERE id = $1 AND credits_remaining > 0
		 RETURNING `+accountColumns, id)

	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// Guard failed: distinguish a drained balance from a missing row.
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrCreditsExhausted
	}
	return acc, err
}

func (s *postgresStore) ResetCredits(ctx context.Context, id string, credits int, now, weekStart time.Time) (*Account, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE accounts
		 SET credits_remaining = $2, last_credits_reset = $3, updated_at = now()
		 WHERE id = $1 AND last_credits_reset < $4
		 RETURNING `+accountColumns,
		id, credits, now.UTC(), weekStart.UTC())

	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// Already reset this week (or by a concurrent request): no-op.
		return s.Get(ctx, id)
	}
	return acc, err
}

func (s *postgresStore) SetSubscription(ctx context.Context, id string, plan Plan, credits int, customerID, subscriptionID string) (*Account, error) {
	// NULLIF/COALESCE keeps the stored customer reference when the caller
	// passes an empty one, e.g. a downgrade that should preserve the link.
	row := s.pool.QueryRow(ctx,
		`UPDATE accounts
		 SET plan = $2,
		     credits_remaining = $3,
		     billing_customer_id = COALESCE(NULLIF($4, ''), billing_customer_id),
		     billing_subscription_id = $5,
		     updated_at = now()
		 WHERE id = $1
		 RETURNING `+accountColumns,
		id, string(plan), credits, customerID, subscriptionID)

	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	return acc, err
}

func (s *postgresStore) LinkBillingCustomer(ctx context.Context, id, customerID string) (*Account, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE accounts
		 SET billing_customer_id = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+accountColumns,
		id, customerID)

	acc, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	return acc, err
}
