package distribution

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type DistributionRepo interface {
	Upsert(ctx context.Context, day string, percent decimal.Decimal) error
	GetAll(ctx context.Context) ([]DayWeight, error)
}

type DistributionRepoImpl struct {
	db *sql.DB
}

func NewDistributionRepo(db *sql.DB) *DistributionRepoImpl {
	return &DistributionRepoImpl{db: db}
}

func (r *DistributionRepoImpl) Upsert(ctx context.Context, day string, percent decimal.Decimal) error {
	query := "INSERT INTO day_weight (day, percent) VALUES ($1, $2) " +
		"ON CONFLICT (day) DO UPDATE SET percent = excluded.percent"

	_, err := r.db.ExecContext(ctx, query, day, percent)
	if err != nil {
		err := fmt.Errorf("could not upsert day weight for %s: %w", day, err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *DistributionRepoImpl) GetAll(ctx context.Context) ([]DayWeight, error) {
	query := "SELECT day, percent FROM day_weight"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query day weights: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	weights := make([]DayWeight, 0, 6)
	for rows.Next() {
		var w DayWeight
		if err := rows.Scan(&w.Day, &w.Percent); err != nil {
			err := fmt.Errorf("could not scan day weight: %w", err)
			log.Error(err)
			return nil, err
		}
		weights = append(weights, w)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return weights, nil
}
