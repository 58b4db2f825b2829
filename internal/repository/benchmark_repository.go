package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
)

// BenchmarkRepository provides data access methods for the benchmark_level
// table.
type BenchmarkRepository struct {
	db *sql.DB
}

// NewBenchmarkRepository creates a new BenchmarkRepository with the provided database connection.
func NewBenchmarkRepository(db *sql.DB) *BenchmarkRepository {
	return &BenchmarkRepository{db: db}
}

// GetLevels retrieves every stored level for a benchmark symbol ordered by
// date. Returns apperrors.ErrBenchmarkNotFound when the symbol has no data.
func (r *BenchmarkRepository) GetLevels(symbol string) ([]model.BenchmarkPoint, error) {
	query := `
		SELECT id, symbol, name, date, level
		FROM benchmark_level
		WHERE symbol = ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmark_level table: %w", err)
	}
	defer rows.Close()

	points := []model.BenchmarkPoint{}
	for rows.Next() {
		var p model.BenchmarkPoint
		var dateStr string
		var name sql.NullString

		if err := rows.Scan(&p.ID, &p.Symbol, &name, &dateStr, &p.Level); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark_level table results: %w", err)
		}
		p.Name = name.String
		p.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating benchmark_level table: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrBenchmarkNotFound, symbol)
	}
	return points, nil
}

// GetSymbols returns the distinct benchmark symbols with stored data.
func (r *BenchmarkRepository) GetSymbols() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT symbol FROM benchmark_level ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmark_level table: %w", err)
	}
	defer rows.Close()

	symbols := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan benchmark_level table results: %w", err)
		}
		symbols = append(symbols, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating benchmark_level table: %w", err)
	}
	return symbols, nil
}

// UpsertLevels inserts a batch of benchmark observations inside one
// database transaction, replacing existing rows for the same symbol and
// date.
func (r *BenchmarkRepository) UpsertLevels(points []model.BenchmarkPoint) error {
	if len(points) == 0 {
		return nil
	}

	dbTx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`
		INSERT INTO benchmark_level (id, symbol, name, date, level)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (symbol, date)
		DO UPDATE SET level = excluded.level, name = excluded.name
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare benchmark_level insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if _, err := stmt.Exec(p.ID, p.Symbol, p.Name, p.Date.Format("2006-01-02"), p.Level); err != nil {
			return fmt.Errorf("failed to insert into benchmark_level table: %w", err)
		}
	}

	return dbTx.Commit()
}
