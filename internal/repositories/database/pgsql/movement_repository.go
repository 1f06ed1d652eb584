package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ec-banking/backoffice/internal/apperrors"
	"github.com/ec-banking/backoffice/internal/core/domain"
	portsrepo "github.com/ec-banking/backoffice/internal/core/ports/repositories"
	"github.com/ec-banking/backoffice/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMovementRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountCommitSupport
}

// newPgxMovementRepository creates a new repository for movement data. The
// account repository is needed because the movement commit unit updates the
// account's cached balance in the same transaction as the movement insert.
func newPgxMovementRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountCommitSupport) portsrepo.MovementRepository {
	return &PgxMovementRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.MovementRepository = (*PgxMovementRepository)(nil)

func toModelMovement(d domain.Movement) models.Movement {
	return models.Movement{
		MovementID:       d.MovementID,
		AccountID:        d.AccountID,
		MovementType:     models.MovementType(d.MovementType),
		Amount:           d.Amount,
		ResultingBalance: d.ResultingBalance,
		Timestamp:        d.Timestamp,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:       m.MovementID,
		AccountID:        m.AccountID,
		MovementType:     domain.MovementType(m.MovementType),
		Amount:           m.Amount,
		ResultingBalance: m.ResultingBalance,
		Timestamp:        m.Timestamp,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const movementColumns = `movement_id, account_id, movement_type, amount, resulting_balance, ts, seq, created_at, last_updated_at`

func scanMovement(row pgx.Row) (models.Movement, error) {
	var m models.Movement
	err := row.Scan(
		&m.MovementID,
		&m.AccountID,
		&m.MovementType,
		&m.Amount,
		&m.ResultingBalance,
		&m.Timestamp,
		&m.Seq,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func collectMovements(rows pgx.Rows) ([]domain.Movement, error) {
	movements := make([]domain.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, mapStoreError("scan movement row", err)
		}
		movements = append(movements, toDomainMovement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("iterate movement rows", err)
	}
	return movements, nil
}

// FindMovementByID retrieves a single movement.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE movement_id = $1;`

	m, err := scanMovement(r.Pool.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, mapStoreError("find movement "+movementID, err)
	}
	mov := toDomainMovement(m)
	return &mov, nil
}

// FindMovementsByAccountID retrieves every movement for an account, ordered
// by timestamp ascending with the insertion counter breaking ties.
func (r *PgxMovementRepository) FindMovementsByAccountID(ctx context.Context, accountID string) ([]domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE account_id = $1 ORDER BY ts ASC, seq ASC;`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, mapStoreError("list movements for account "+accountID, err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

// FindMovementsByAccountIDAndDateRange retrieves an account's movements
// within [from, to].
func (r *PgxMovementRepository) FindMovementsByAccountIDAndDateRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE account_id = $1 AND ts >= $2 AND ts <= $3
		ORDER BY ts ASC, seq ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, mapStoreError("list movements in range for account "+accountID, err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

// FindDebitsByAccountIDOnDay retrieves the account's DEBIT movements within
// the local calendar day containing `day`.
func (r *PgxMovementRepository) FindDebitsByAccountIDOnDay(ctx context.Context, accountID string, day time.Time) ([]domain.Movement, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE account_id = $1 AND movement_type = $2 AND ts >= $3 AND ts < $4
		ORDER BY ts ASC, seq ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, models.Debit, startOfDay, endOfDay)
	if err != nil {
		return nil, mapStoreError("list today's debits for account "+accountID, err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

// SaveMovement commits a movement as one logical unit: the movement insert
// and the account's cached-balance update happen in a single transaction,
// with the account row locked for the duration. Any failure inside the unit
// is reported as apperrors.ErrCommitFailed.
func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrCommitFailed, err)
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, movement.AccountID); err != nil {
		return fmt.Errorf("%w: lock account %s: %v", apperrors.ErrCommitFailed, movement.AccountID, err)
	}

	m := toModelMovement(movement)
	query := `
		INSERT INTO movements (movement_id, account_id, movement_type, amount, resulting_balance, ts, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, query,
		m.MovementID,
		m.AccountID,
		m.MovementType,
		m.Amount,
		m.ResultingBalance,
		m.Timestamp,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert movement %s: %v", apperrors.ErrCommitFailed, m.MovementID, err)
	}

	if err := r.accountRepo.UpdateAccountBalanceInTx(ctx, tx, movement.AccountID, movement.ResultingBalance, movement.LastUpdatedAt); err != nil {
		return fmt.Errorf("%w: update balance for account %s: %v", apperrors.ErrCommitFailed, movement.AccountID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit movement %s: %v", apperrors.ErrCommitFailed, m.MovementID, err)
	}
	return nil
}

// DeleteMovement removes a movement. Administrative use only.
func (r *PgxMovementRepository) DeleteMovement(ctx context.Context, movementID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM movements WHERE movement_id = $1;`, movementID)
	if err != nil {
		return mapStoreError("delete movement "+movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
