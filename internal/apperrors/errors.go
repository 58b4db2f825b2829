package apperrors

import "errors"

// Engine computation errors. Each failure is scoped to the specific
// computation that triggered it; there is no fatal/process-level class.
var (
	// ErrRateNotFound indicates no exchange rate exists for a currency pair
	// on or before the requested date. Missing rates are never defaulted to
	// 1:1 because a silent fallback corrupts downstream aggregates.
	ErrRateNotFound = errors.New("exchange rate not found for currency pair and date")

	// ErrBenchmarkDataGap indicates a benchmark series has no point on or
	// before one side of the requested window.
	ErrBenchmarkDataGap = errors.New("benchmark series has no data for requested date")

	// ErrIRRNotConverged indicates the money-weighted return solver hit its
	// iteration cap. The failure is reported, never approximated; a wrong
	// IRR is worse than none.
	ErrIRRNotConverged = errors.New("IRR calculation did not converge")

	// ErrInsufficientCashFlows indicates a series with fewer than two flows,
	// or flows all of one sign, for which IRR is undefined.
	ErrInsufficientCashFlows = errors.New("insufficient cash flows for IRR")

	// ErrZeroCostBasis indicates simple return is undefined because the cost
	// basis is zero. Undefined, not zero.
	ErrZeroCostBasis = errors.New("simple return undefined for zero cost basis")

	// ErrInvalidShockValue indicates a scenario shock outside [-1.0, +inf).
	// Out-of-range shocks are rejected, not clamped.
	ErrInvalidShockValue = errors.New("shock value must be >= -1.0")

	// ErrDataUnavailable indicates the market-data collaborator could not
	// produce a price or rate for a specific symbol. The affected holding
	// fails closed; other holdings remain computable.
	ErrDataUnavailable = errors.New("market data unavailable")
)

// Domain entity errors represent missing or invalid entities in the system.
var (
	// ErrEntityNotFound indicates that an entity with the given ID does not exist.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrInvestmentNotFound indicates that an investment with the given ID does not exist.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrScenarioNotFound indicates that no preset scenario exists for the given key.
	ErrScenarioNotFound = errors.New("scenario not found")

	// ErrBenchmarkNotFound indicates that no benchmark series exists for the given symbol.
	ErrBenchmarkNotFound = errors.New("benchmark not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidDate indicates a date parameter that is missing or not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date parameter")

	// ErrInvalidCurrency indicates a currency code that is not three letters.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrInvalidAssetClass indicates an asset class outside the closed enumeration.
	ErrInvalidAssetClass = errors.New("unknown asset class")

	// ErrInvalidTransactionType indicates a transaction type outside the known set.
	ErrInvalidTransactionType = errors.New("unknown transaction type")

	// ErrNegativeQuantity indicates an investment or transaction quantity below zero.
	ErrNegativeQuantity = errors.New("quantity cannot be negative")

	// ErrInvalidCSVHeaders indicates an import file whose header row does not
	// match the expected transaction columns.
	ErrInvalidCSVHeaders = errors.New("invalid CSV headers")
)

// Operation failure errors represent system-level failures when retrieving
// or processing data.
var (
	ErrFailedToRetrieveEntities     = errors.New("failed to retrieve entities")
	ErrFailedToRetrieveInvestments  = errors.New("failed to retrieve investments")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveRates        = errors.New("failed to retrieve exchange rates")
	ErrFailedToRetrieveBenchmark    = errors.New("failed to retrieve benchmark series")
	ErrFailedToImportTransactions   = errors.New("failed to import transactions")
	ErrFailedToRefreshMarketData    = errors.New("failed to refresh market data")
	ErrAdvisorUnavailable           = errors.New("advisor is not configured")
)
