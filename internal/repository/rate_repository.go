package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/wealthos/wealth-os-backend/internal/model"
)

// RateRepository provides data access methods for the exchange_rate table.
type RateRepository struct {
	db *sql.DB
}

// NewRateRepository creates a new RateRepository with the provided database connection.
func NewRateRepository(db *sql.DB) *RateRepository {
	return &RateRepository{db: db}
}

// GetRates retrieves every stored exchange rate ordered by pair and date.
// The analytics rate table indexes them in memory; the full history is
// small enough to load per request.
func (r *RateRepository) GetRates() ([]model.ExchangeRate, error) {
	query := `
		SELECT id, from_currency, to_currency, date, rate, source
		FROM exchange_rate
		ORDER BY from_currency, to_currency, date ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange_rate table: %w", err)
	}
	defer rows.Close()

	rates := []model.ExchangeRate{}
	for rows.Next() {
		var rate model.ExchangeRate
		var dateStr string
		var source sql.NullString

		if err := rows.Scan(&rate.ID, &rate.FromCurrency, &rate.ToCurrency, &dateStr, &rate.Rate, &source); err != nil {
			return nil, fmt.Errorf("failed to scan exchange_rate table results: %w", err)
		}
		rate.Source = source.String
		rate.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange_rate table: %w", err)
	}
	return rates, nil
}

// UpsertRate inserts a rate observation, replacing any existing row for the
// same pair and date.
func (r *RateRepository) UpsertRate(rate model.ExchangeRate) error {
	if rate.ID == "" {
		rate.ID = uuid.NewString()
	}

	query := `
		INSERT INTO exchange_rate (id, from_currency, to_currency, date, rate, source)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (from_currency, to_currency, date)
		DO UPDATE SET rate = excluded.rate, source = excluded.source
	`
	_, err := r.db.Exec(query,
		rate.ID, rate.FromCurrency, rate.ToCurrency,
		rate.Date.Format("2006-01-02"), rate.Rate, rate.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to insert into exchange_rate table: %w", err)
	}
	return nil
}
