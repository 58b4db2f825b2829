package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wealthos/wealth-os-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction
// table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions retrieves all transactions for the given investment IDs
// dated on or before asOf, sorted by date ascending and grouped by
// investment ID. If investmentIDs is empty, returns an empty map.
//
// Returning a map keyed by investment ID lets callers aggregate by
// investment, entity, or portfolio after retrieval.
func (r *TransactionRepository) GetTransactions(investmentIDs []string, asOf time.Time) (map[string][]model.Transaction, error) {
	if len(investmentIDs) == 0 {
		return make(map[string][]model.Transaction), nil
	}

	placeholders := make([]string, len(investmentIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	query := `
		SELECT id, investment_id, date, type, quantity, price_per_unit, amount, currency, notes, created_at
		FROM "transaction"
		WHERE investment_id IN (` + strings.Join(placeholders, ",") + `)
		AND date <= ?
		ORDER BY date ASC
	`

	args := make([]any, 0, len(investmentIDs)+1)
	for _, id := range investmentIDs {
		args = append(args, id)
	}
	args = append(args, asOf.Format("2006-01-02"))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	byInvestment := make(map[string][]model.Transaction)
	for rows.Next() {
		var t model.Transaction
		var txType, dateStr, createdAtStr string
		var notes sql.NullString

		err := rows.Scan(
			&t.ID, &t.InvestmentID, &dateStr, &txType,
			&t.Quantity, &t.PricePerUnit, &t.Amount, &t.Currency,
			&notes, &createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.Type = model.TransactionType(txType)
		t.Notes = notes.String
		t.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		byInvestment[t.InvestmentID] = append(byInvestment[t.InvestmentID], t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}
	return byInvestment, nil
}

// GetOldestTransactionDate returns the date of the earliest transaction
// across the given investment IDs. Returns the zero time when the set is
// empty or holds no transactions.
func (r *TransactionRepository) GetOldestTransactionDate(investmentIDs []string) time.Time {
	if len(investmentIDs) == 0 {
		return time.Time{}
	}

	placeholders := make([]string, len(investmentIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	query := `
		SELECT MIN(date)
		FROM "transaction"
		WHERE investment_id IN (` + strings.Join(placeholders, ",") + `)
	`

	args := make([]any, 0, len(investmentIDs))
	for _, id := range investmentIDs {
		args = append(args, id)
	}

	var oldest sql.NullString
	if err := r.db.QueryRow(query, args...).Scan(&oldest); err != nil || !oldest.Valid {
		return time.Time{}
	}

	date, err := ParseTime(oldest.String)
	if err != nil {
		return time.Time{}
	}
	return date
}

// CreateTransactions inserts a batch of transactions inside one database
// transaction, assigning IDs where none are set. All rows commit or none do.
func (r *TransactionRepository) CreateTransactions(txs []model.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`
		INSERT INTO "transaction" (id, investment_id, date, type, quantity, price_per_unit, amount, currency, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare transaction insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txs {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		_, err := stmt.Exec(
			t.ID, t.InvestmentID, t.Date.Format("2006-01-02"), string(t.Type),
			t.Quantity, t.PricePerUnit, t.Amount, t.Currency, t.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert into transaction table: %w", err)
		}
	}

	return dbTx.Commit()
}
