package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wealthos/wealth-os-backend/internal/model"
)

// MakeID generates a UUID string for use in tests.
func MakeID() string {
	return uuid.New().String()
}

// EntityBuilder provides a fluent interface for creating test entities.
//
// Example usage:
//
//	entity := testutil.NewEntity().WithName("HoldCo").Build(t, db)
type EntityBuilder struct {
	ID           string
	Name         string
	EntityType   string
	BaseCurrency string
	Description  string
}

// NewEntity creates an EntityBuilder with sensible defaults.
func NewEntity() *EntityBuilder {
	return &EntityBuilder{
		ID:           MakeID(),
		Name:         "Test Entity",
		EntityType:   "corporation",
		BaseCurrency: "CAD",
	}
}

// WithID sets a custom ID.
func (b *EntityBuilder) WithID(id string) *EntityBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *EntityBuilder) WithName(name string) *EntityBuilder {
	b.Name = name
	return b
}

// WithType sets a custom entity type.
func (b *EntityBuilder) WithType(entityType string) *EntityBuilder {
	b.EntityType = entityType
	return b
}

// Build creates the entity in the database and returns it.
func (b *EntityBuilder) Build(t *testing.T, db *sql.DB) model.Entity {
	t.Helper()

	query := `
		INSERT INTO entity (id, name, entity_type, base_currency, description)
		VALUES (?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, b.ID, b.Name, b.EntityType, b.BaseCurrency, b.Description); err != nil {
		t.Fatalf("Failed to create test entity: %v", err)
	}

	return model.Entity{
		ID:           b.ID,
		Name:         b.Name,
		EntityType:   b.EntityType,
		BaseCurrency: b.BaseCurrency,
		Description:  b.Description,
	}
}

// CreateEntity creates an entity with the given name and default values.
func CreateEntity(t *testing.T, db *sql.DB, name string) model.Entity {
	t.Helper()
	return NewEntity().WithName(name).Build(t, db)
}

// InvestmentBuilder provides a fluent interface for creating test
// investments. Values are stored unencrypted.
type InvestmentBuilder struct {
	ID           string
	EntityID     string
	Name         string
	Symbol       string
	AssetClass   model.AssetClass
	Currency     string
	Quantity     float64
	CostBasis    float64
	CurrentValue float64
	PurchaseDate time.Time
	IsActive     bool
}

// NewInvestment creates an InvestmentBuilder with sensible defaults.
func NewInvestment(entityID string) *InvestmentBuilder {
	return &InvestmentBuilder{
		ID:           MakeID(),
		EntityID:     entityID,
		Name:         "Test Investment",
		AssetClass:   model.AssetPublicEquity,
		Currency:     "CAD",
		Quantity:     100,
		CostBasis:    10000,
		CurrentValue: 12000,
		PurchaseDate: time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
	}
}

// WithID sets a custom ID.
func (b *InvestmentBuilder) WithID(id string) *InvestmentBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *InvestmentBuilder) WithName(name string) *InvestmentBuilder {
	b.Name = name
	return b
}

// WithSymbol sets a ticker symbol.
func (b *InvestmentBuilder) WithSymbol(symbol string) *InvestmentBuilder {
	b.Symbol = symbol
	return b
}

// WithAssetClass sets the asset class.
func (b *InvestmentBuilder) WithAssetClass(ac model.AssetClass) *InvestmentBuilder {
	b.AssetClass = ac
	return b
}

// WithCurrency sets the investment currency.
func (b *InvestmentBuilder) WithCurrency(currency string) *InvestmentBuilder {
	b.Currency = currency
	return b
}

// WithValues sets cost basis and current value.
func (b *InvestmentBuilder) WithValues(costBasis, currentValue float64) *InvestmentBuilder {
	b.CostBasis = costBasis
	b.CurrentValue = currentValue
	return b
}

// WithPurchaseDate sets the purchase date.
func (b *InvestmentBuilder) WithPurchaseDate(d time.Time) *InvestmentBuilder {
	b.PurchaseDate = d
	return b
}

// Inactive marks the investment as closed.
func (b *InvestmentBuilder) Inactive() *InvestmentBuilder {
	b.IsActive = false
	return b
}

// Build creates the investment in the database and returns it.
func (b *InvestmentBuilder) Build(t *testing.T, db *sql.DB) model.Investment {
	t.Helper()

	query := `
		INSERT INTO investment (id, entity_id, name, symbol, asset_class, currency, quantity, cost_basis, current_value, purchase_date, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query,
		b.ID, b.EntityID, b.Name, b.Symbol, string(b.AssetClass), b.Currency,
		b.Quantity, b.CostBasis, b.CurrentValue, b.PurchaseDate.Format("2006-01-02"), b.IsActive,
	)
	if err != nil {
		t.Fatalf("Failed to create test investment: %v", err)
	}

	return model.Investment{
		ID:           b.ID,
		EntityID:     b.EntityID,
		Name:         b.Name,
		Symbol:       b.Symbol,
		AssetClass:   b.AssetClass,
		Currency:     b.Currency,
		Quantity:     b.Quantity,
		CostBasis:    b.CostBasis,
		CurrentValue: b.CurrentValue,
		PurchaseDate: b.PurchaseDate,
		IsActive:     b.IsActive,
	}
}

// CreateTransaction creates a transaction row for an investment.
func CreateTransaction(t *testing.T, db *sql.DB, investmentID string, txType model.TransactionType, date time.Time, amount float64, currency string) model.Transaction {
	t.Helper()

	tx := model.Transaction{
		ID:           MakeID(),
		InvestmentID: investmentID,
		Date:         date,
		Type:         txType,
		Amount:       amount,
		Currency:     currency,
	}

	query := `
		INSERT INTO "transaction" (id, investment_id, date, type, quantity, price_per_unit, amount, currency, notes)
		VALUES (?, ?, ?, ?, 0, 0, ?, ?, '')
	`
	if _, err := db.Exec(query, tx.ID, tx.InvestmentID, tx.Date.Format("2006-01-02"), string(tx.Type), tx.Amount, tx.Currency); err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}
	return tx
}

// CreateRate creates an exchange rate row.
func CreateRate(t *testing.T, db *sql.DB, from, to string, date time.Time, rate float64) model.ExchangeRate {
	t.Helper()

	r := model.ExchangeRate{
		ID:           MakeID(),
		FromCurrency: from,
		ToCurrency:   to,
		Date:         date,
		Rate:         rate,
		Source:       "manual",
	}

	query := `
		INSERT INTO exchange_rate (id, from_currency, to_currency, date, rate, source)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := db.Exec(query, r.ID, r.FromCurrency, r.ToCurrency, r.Date.Format("2006-01-02"), r.Rate, r.Source); err != nil {
		t.Fatalf("Failed to create test exchange rate: %v", err)
	}
	return r
}

// CreateBenchmarkPoint creates a benchmark level row.
func CreateBenchmarkPoint(t *testing.T, db *sql.DB, symbol string, date time.Time, level float64) model.BenchmarkPoint {
	t.Helper()

	p := model.BenchmarkPoint{
		ID:     MakeID(),
		Symbol: symbol,
		Date:   date,
		Level:  level,
	}

	query := `
		INSERT INTO benchmark_level (id, symbol, name, date, level)
		VALUES (?, ?, '', ?, ?)
	`
	if _, err := db.Exec(query, p.ID, p.Symbol, p.Date.Format("2006-01-02"), p.Level); err != nil {
		t.Fatalf("Failed to create test benchmark point: %v", err)
	}
	return p
}
