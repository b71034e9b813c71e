package baseline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BaselineRepo interface {
	// Upsert creates or overwrites the amount for a weekday name.
	Upsert(ctx context.Context, day string, amount decimal.Decimal) error
	// Get returns the stored amount for a weekday name and whether one exists.
	Get(ctx context.Context, day string) (decimal.Decimal, bool, error)
	GetAll(ctx context.Context) ([]Baseline, error)
}

type BaselineRepoImpl struct {
	db *sql.DB
}

func NewBaselineRepo(db *sql.DB) *BaselineRepoImpl {
	return &BaselineRepoImpl{db: db}
}

func (r *BaselineRepoImpl) Upsert(ctx context.Context, day string, amount decimal.Decimal) error {
	query := "INSERT INTO weekday_baseline (day, amount) VALUES ($1, $2) " +
		"ON CONFLICT (day) DO UPDATE SET amount = excluded.amount"

	_, err := r.db.ExecContext(ctx, query, day, amount)
	if err != nil {
		err := fmt.Errorf("could not upsert baseline for %s: %w", day, err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *BaselineRepoImpl) Get(ctx context.Context, day string) (decimal.Decimal, bool, error) {
	query := "SELECT amount FROM weekday_baseline WHERE day = $1"

	var amount decimal.Decimal
	err := r.db.QueryRowContext(ctx, query, day).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		err := fmt.Errorf("could not query baseline for %s: %w", day, err)
		log.Error(err)
		return decimal.Zero, false, err
	}
	return amount, true, nil
}

func (r *BaselineRepoImpl) GetAll(ctx context.Context) ([]Baseline, error) {
	query := "SELECT day, amount FROM weekday_baseline"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query baselines: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	baselines := make([]Baseline, 0, len(SalesDays))
	for rows.Next() {
		var b Baseline
		if err := rows.Scan(&b.Day, &b.Amount); err != nil {
			err := fmt.Errorf("could not scan baseline: %w", err)
			log.Error(err)
			return nil, err
		}
		baselines = append(baselines, b)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return baselines, nil
}
