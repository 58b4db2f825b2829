package marketdata

import "time"

// chartResponse maps the Yahoo Finance chart API response format. The
// structure nests metadata, unix timestamps, and parallel price arrays
// under chart.result; chart.error carries an optional API-level error.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency     string `json:"currency"`
				Symbol       string `json:"symbol"`
				ExchangeName string `json:"exchangeName"`
				LongName     string `json:"longName"`
				ShortName    string `json:"shortName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					Close  []float64 `json:"close"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// PriceChart is the parsed, application-facing view of a chart response:
// symbol metadata plus one PricePoint per trading day.
type PriceChart struct {
	Symbol   string       `json:"symbol"`
	Currency string       `json:"currency"`
	Name     string       `json:"name"`
	Points   []PricePoint `json:"points"`
}

// PricePoint is one trading day's closing data.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// Latest returns the most recent point, or false for an empty chart.
func (c PriceChart) Latest() (PricePoint, bool) {
	if len(c.Points) == 0 {
		return PricePoint{}, false
	}
	return c.Points[len(c.Points)-1], true
}

// krakenResponse maps the Kraken public Ticker API response. Result keys
// are Kraken's internal pair names; c holds [price, lot volume] and o the
// 24h open.
type krakenResponse struct {
	Error  []string `json:"error"`
	Result map[string]struct {
		Close []string `json:"c"`
		Open  string   `json:"o"`
	} `json:"result"`
}
