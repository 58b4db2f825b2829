package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
	"github.com/wealthos/wealth-os-backend/internal/repository"
)

// csvHeaders is the required transaction CSV header row, in order.
var csvHeaders = []string{
	"investment_id", "date", "type", "amount", "currency", "quantity", "price_per_unit", "notes",
}

// ImportResult summarizes a CSV import run. Rejected rows carry the line
// number and reason; accepted rows are committed atomically.
type ImportResult struct {
	Imported int      `json:"imported"`
	Rejected []string `json:"rejected,omitempty"`
}

// ImportService loads transaction batches from CSV files. Amounts are
// parsed exactly as decimals before conversion to float64 storage, so
// "10.10" never arrives as 10.099999.
type ImportService struct {
	investmentRepo  *repository.InvestmentRepository
	transactionRepo *repository.TransactionRepository
}

// NewImportService creates a new ImportService with the provided dependencies.
func NewImportService(
	investmentRepo *repository.InvestmentRepository,
	transactionRepo *repository.TransactionRepository,
) *ImportService {
	return &ImportService{
		investmentRepo:  investmentRepo,
		transactionRepo: transactionRepo,
	}
}

// ImportTransactions parses and persists a transaction CSV. The header row
// must match the expected columns exactly. Rows that fail validation are
// rejected individually; valid rows are inserted in one database
// transaction.
func (s *ImportService) ImportTransactions(r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidCSVHeaders, err)
	}
	if err := validateHeaders(header); err != nil {
		return ImportResult{}, err
	}

	knownInvestments, err := s.knownInvestmentIDs()
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{}
	var txs []model.Transaction

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Rejected = append(result.Rejected, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		tx, err := s.parseRow(record, knownInvestments)
		if err != nil {
			result.Rejected = append(result.Rejected, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		txs = append(txs, tx)
	}

	if err := s.transactionRepo.CreateTransactions(txs); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToImportTransactions, err)
	}

	result.Imported = len(txs)
	log.Printf("transaction import: %d imported, %d rejected", result.Imported, len(result.Rejected))
	return result, nil
}

func validateHeaders(header []string) error {
	if len(header) != len(csvHeaders) {
		return fmt.Errorf("%w: expected %d columns, got %d", apperrors.ErrInvalidCSVHeaders, len(csvHeaders), len(header))
	}
	for i, want := range csvHeaders {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("%w: column %d must be %q", apperrors.ErrInvalidCSVHeaders, i+1, want)
		}
	}
	return nil
}

func (s *ImportService) knownInvestmentIDs() (map[string]bool, error) {
	investments, err := s.investmentRepo.GetInvestments(false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveInvestments, err)
	}
	known := make(map[string]bool, len(investments))
	for _, inv := range investments {
		known[inv.ID] = true
	}
	return known, nil
}

func (s *ImportService) parseRow(record []string, knownInvestments map[string]bool) (model.Transaction, error) {
	investmentID := strings.TrimSpace(record[0])
	if !knownInvestments[investmentID] {
		return model.Transaction{}, fmt.Errorf("%w: %s", apperrors.ErrInvestmentNotFound, investmentID)
	}

	date, err := repository.ParseTime(strings.TrimSpace(record[1]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidDate, record[1])
	}

	txType := model.TransactionType(strings.TrimSpace(record[2]))
	if !knownTransactionType(txType) {
		return model.Transaction{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidTransactionType, record[2])
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[3]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q: %w", record[3], err)
	}
	if amount.IsNegative() {
		return model.Transaction{}, fmt.Errorf("amount %s must be unsigned; type carries the direction", amount)
	}

	currency := strings.ToUpper(strings.TrimSpace(record[4]))
	if len(currency) != 3 {
		return model.Transaction{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidCurrency, record[4])
	}

	quantity := decimal.Zero
	if strings.TrimSpace(record[5]) != "" {
		quantity, err = decimal.NewFromString(strings.TrimSpace(record[5]))
		if err != nil {
			return model.Transaction{}, fmt.Errorf("invalid quantity %q: %w", record[5], err)
		}
		if quantity.IsNegative() {
			return model.Transaction{}, apperrors.ErrNegativeQuantity
		}
	}

	pricePerUnit := decimal.Zero
	if strings.TrimSpace(record[6]) != "" {
		pricePerUnit, err = decimal.NewFromString(strings.TrimSpace(record[6]))
		if err != nil {
			return model.Transaction{}, fmt.Errorf("invalid price_per_unit %q: %w", record[6], err)
		}
	}

	amountF, _ := amount.Float64()
	quantityF, _ := quantity.Float64()
	priceF, _ := pricePerUnit.Float64()

	return model.Transaction{
		ID:           uuid.NewString(),
		InvestmentID: investmentID,
		Date:         date,
		Type:         txType,
		Quantity:     quantityF,
		PricePerUnit: priceF,
		Amount:       amountF,
		Currency:     currency,
		Notes:        strings.TrimSpace(record[7]),
	}, nil
}

func knownTransactionType(t model.TransactionType) bool {
	for _, known := range model.AllTransactionTypes() {
		if t == known {
			return true
		}
	}
	return false
}
