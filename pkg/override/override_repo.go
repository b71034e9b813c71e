package override

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/storecast/storecast/internal/utils"
)

type OverrideRepo interface {
	// Put creates or replaces the override for its date, resetting applied to false.
	Put(ctx context.Context, override Override) error
	// Delete removes the override for a date. Returns false when no row existed.
	Delete(ctx context.Context, date time.Time) (bool, error)
	// GetAll returns every override ordered by date ascending.
	GetAll(ctx context.Context) ([]Override, error)
	// GetByDate returns the override for a date, if any.
	GetByDate(ctx context.Context, date time.Time) (*Override, error)
	// GetUnappliedInRange returns unapplied overrides with date in [start, end]
	// inclusive, ordered by date ascending.
	GetUnappliedInRange(ctx context.Context, start time.Time, end time.Time) ([]Override, error)
	// MarkApplied flips applied to true for a date. The update is conditional on
	// applied = false, so re-marking is a no-op and two concurrent appliers
	// cannot both observe the flip.
	MarkApplied(ctx context.Context, date time.Time) error
}

type OverrideRepoImpl struct {
	db  *sql.DB
	loc *time.Location
}

func NewOverrideRepo(db *sql.DB, loc *time.Location) *OverrideRepoImpl {
	return &OverrideRepoImpl{db: db, loc: loc}
}

func (r *OverrideRepoImpl) Put(ctx context.Context, override Override) error {
	query := "INSERT INTO sales_override (date, amount, applied) VALUES ($1, $2, FALSE) " +
		"ON CONFLICT (date) DO UPDATE SET amount = excluded.amount, applied = FALSE"

	_, err := r.db.ExecContext(ctx, query, utils.FormatDate(override.Date), override.Amount)
	if err != nil {
		err := fmt.Errorf("could not store override: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *OverrideRepoImpl) Delete(ctx context.Context, date time.Time) (bool, error) {
	query := "DELETE FROM sales_override WHERE date = $1"

	result, err := r.db.ExecContext(ctx, query, utils.FormatDate(date))
	if err != nil {
		err := fmt.Errorf("could not delete override: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not read affected rows: %w", err)
		log.Error(err)
		return false, err
	}
	return affected > 0, nil
}

func (r *OverrideRepoImpl) GetAll(ctx context.Context) ([]Override, error) {
	query := "SELECT date, amount, applied FROM sales_override ORDER BY date ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query overrides: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return r.scanOverrides(rows)
}

func (r *OverrideRepoImpl) GetByDate(ctx context.Context, date time.Time) (*Override, error) {
	query := "SELECT date, amount, applied FROM sales_override WHERE date = $1"

	rows, err := r.db.QueryContext(ctx, query, utils.FormatDate(date))
	if err != nil {
		err := fmt.Errorf("could not query override: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	overrides, err := r.scanOverrides(rows)
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return nil, nil
	}
	return &overrides[0], nil
}

func (r *OverrideRepoImpl) GetUnappliedInRange(ctx context.Context, start time.Time, end time.Time) ([]Override, error) {
	// Dates are stored as "2006-01-02" strings, which order lexicographically,
	// so the range comparison is a calendar-date comparison regardless of DST.
	query := "SELECT date, amount, applied FROM sales_override " +
		"WHERE applied = FALSE AND date >= $1 AND date <= $2 ORDER BY date ASC"

	rows, err := r.db.QueryContext(ctx, query, utils.FormatDate(start), utils.FormatDate(end))
	if err != nil {
		err := fmt.Errorf("could not query unapplied overrides: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return r.scanOverrides(rows)
}

func (r *OverrideRepoImpl) MarkApplied(ctx context.Context, date time.Time) error {
	query := "UPDATE sales_override SET applied = TRUE WHERE date = $1 AND applied = FALSE"

	_, err := r.db.ExecContext(ctx, query, utils.FormatDate(date))
	if err != nil {
		err := fmt.Errorf("could not mark override applied: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *OverrideRepoImpl) scanOverrides(rows *sql.Rows) ([]Override, error) {
	overrides := make([]Override, 0, 10)
	for rows.Next() {
		var override Override
		var dateString string
		var amount decimal.Decimal

		if err := rows.Scan(&dateString, &amount, &override.Applied); err != nil {
			err := fmt.Errorf("could not scan override: %w", err)
			log.Error(err)
			return nil, err
		}
		date, err := utils.ParseDate(dateString, r.loc)
		if err != nil {
			err := fmt.Errorf("could not parse override date from database")
			log.Error(err)
			return nil, err
		}
		override.Date = date
		override.Amount = amount
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return overrides, nil
}
