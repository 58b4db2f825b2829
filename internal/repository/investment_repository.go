package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
)

// InvestmentRepository provides data access methods for the investment
// table. When an encryption key is configured, cost basis and current value
// are stored as fernet tokens and the plain columns stay NULL; rows written
// before encryption was enabled remain readable.
type InvestmentRepository struct {
	db     *sql.DB
	cipher *model.ValueCipher
}

// NewInvestmentRepository creates a new InvestmentRepository with the
// provided database connection and value cipher.
func NewInvestmentRepository(db *sql.DB, cipher *model.ValueCipher) *InvestmentRepository {
	return &InvestmentRepository{db: db, cipher: cipher}
}

const investmentColumns = `
	id, entity_id, name, symbol, asset_class, currency, quantity,
	cost_basis, current_value, cost_basis_enc, current_value_enc,
	current_price, purchase_date, last_price_at, is_active, created_at
`

// GetInvestments retrieves all investments, optionally filtered to active
// positions, ordered by name.
func (r *InvestmentRepository) GetInvestments(activeOnly bool) ([]model.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investment`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}
	for rows.Next() {
		inv, err := r.scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}
	return investments, nil
}

// GetInvestmentsByEntity retrieves all active investments belonging to one entity.
func (r *InvestmentRepository) GetInvestmentsByEntity(entityID string) ([]model.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investment WHERE entity_id = ? AND is_active = 1 ORDER BY name ASC`

	rows, err := r.db.Query(query, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}
	for rows.Next() {
		inv, err := r.scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}
	return investments, nil
}

// GetInvestment retrieves one investment by ID. Returns
// apperrors.ErrInvestmentNotFound when no row matches.
func (r *InvestmentRepository) GetInvestment(investmentID string) (model.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investment WHERE id = ?`

	row := r.db.QueryRow(query, investmentID)
	inv, err := r.scanInvestment(row)
	if err == sql.ErrNoRows {
		return model.Investment{}, apperrors.ErrInvestmentNotFound
	}
	if err != nil {
		return model.Investment{}, err
	}
	return inv, nil
}

// CreateInvestment inserts a new investment, assigning an ID when none is set.
func (r *InvestmentRepository) CreateInvestment(inv model.Investment) (model.Investment, error) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}

	costBasis, currentValue, costEnc, valueEnc, err := r.encodeValues(inv)
	if err != nil {
		return model.Investment{}, err
	}

	query := `
		INSERT INTO investment (
			id, entity_id, name, symbol, asset_class, currency, quantity,
			cost_basis, current_value, cost_basis_enc, current_value_enc,
			current_price, purchase_date, last_price_at, is_active, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
	`
	_, err = r.db.Exec(query,
		inv.ID, inv.EntityID, inv.Name, inv.Symbol, string(inv.AssetClass), inv.Currency, inv.Quantity,
		costBasis, currentValue, costEnc, valueEnc,
		inv.CurrentPrice, inv.PurchaseDate.Format("2006-01-02"), nullableTime(inv.LastPriceAt), inv.IsActive,
	)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to insert into investment table: %w", err)
	}
	return inv, nil
}

// UpdatePrice stores a freshly fetched price and the value it implies,
// stamping last_price_at.
func (r *InvestmentRepository) UpdatePrice(investmentID string, price, currentValue float64) error {
	var valuePlain sql.NullFloat64
	var valueEnc sql.NullString

	if r.cipher.Enabled() {
		token, err := r.cipher.EncryptAmount(currentValue)
		if err != nil {
			return fmt.Errorf("failed to encrypt current value: %w", err)
		}
		valueEnc = sql.NullString{String: token, Valid: true}
	} else {
		valuePlain = sql.NullFloat64{Float64: currentValue, Valid: true}
	}

	query := `
		UPDATE investment
		SET current_price = ?, current_value = ?, current_value_enc = ?, last_price_at = datetime('now')
		WHERE id = ?
	`
	result, err := r.db.Exec(query, price, valuePlain, valueEnc, investmentID)
	if err != nil {
		return fmt.Errorf("failed to update investment table: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrInvestmentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *InvestmentRepository) scanInvestment(row rowScanner) (model.Investment, error) {
	var inv model.Investment
	var assetClass, purchaseDateStr, createdAtStr string
	var lastPriceAtStr sql.NullString
	var costBasis, currentValue, currentPrice sql.NullFloat64
	var costEnc, valueEnc sql.NullString

	err := row.Scan(
		&inv.ID, &inv.EntityID, &inv.Name, &inv.Symbol, &assetClass, &inv.Currency, &inv.Quantity,
		&costBasis, &currentValue, &costEnc, &valueEnc,
		&currentPrice, &purchaseDateStr, &lastPriceAtStr, &inv.IsActive, &createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Investment{}, err
	}
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to scan investment table results: %w", err)
	}

	inv.AssetClass = model.AssetClass(assetClass)
	inv.CurrentPrice = currentPrice.Float64

	inv.CostBasis, err = r.decodeValue(costBasis, costEnc)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to decode cost basis: %w", err)
	}
	inv.CurrentValue, err = r.decodeValue(currentValue, valueEnc)
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to decode current value: %w", err)
	}

	inv.PurchaseDate, err = ParseTime(purchaseDateStr)
	if err != nil {
		return model.Investment{}, err
	}
	if lastPriceAtStr.Valid {
		inv.LastPriceAt, err = ParseTime(lastPriceAtStr.String)
		if err != nil {
			return model.Investment{}, err
		}
	}
	inv.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Investment{}, err
	}
	return inv, nil
}

func (r *InvestmentRepository) encodeValues(inv model.Investment) (costBasis, currentValue sql.NullFloat64, costEnc, valueEnc sql.NullString, err error) {
	if !r.cipher.Enabled() {
		costBasis = sql.NullFloat64{Float64: inv.CostBasis, Valid: true}
		currentValue = sql.NullFloat64{Float64: inv.CurrentValue, Valid: true}
		return
	}

	var token string
	if token, err = r.cipher.EncryptAmount(inv.CostBasis); err != nil {
		err = fmt.Errorf("failed to encrypt cost basis: %w", err)
		return
	}
	costEnc = sql.NullString{String: token, Valid: true}

	if token, err = r.cipher.EncryptAmount(inv.CurrentValue); err != nil {
		err = fmt.Errorf("failed to encrypt current value: %w", err)
		return
	}
	valueEnc = sql.NullString{String: token, Valid: true}
	return
}

func (r *InvestmentRepository) decodeValue(plain sql.NullFloat64, enc sql.NullString) (float64, error) {
	if enc.Valid {
		return r.cipher.DecryptAmount(enc.String)
	}
	return plain.Float64, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
