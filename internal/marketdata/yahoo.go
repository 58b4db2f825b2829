package marketdata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooClient fetches daily price charts from the Yahoo Finance chart API.
// It serves equities and ETFs, FX pairs (e.g. "USDCAD=X"), and benchmark
// indices (e.g. "^GSPC") through the same endpoint.
type YahooClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewYahooClient creates a chart client with default HTTP settings.
func NewYahooClient() *YahooClient {
	return &YahooClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultYahooBaseURL,
	}
}

// FetchRecent fetches the last five trading days of daily data for a
// symbol. Used to pick up the latest available close without caring about
// weekends or holidays.
func (c *YahooClient) FetchRecent(symbol string) (PriceChart, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, symbol)
	return c.fetchChart(symbol, url)
}

// FetchRange fetches daily data for a symbol between two dates inclusive.
// Used for backfilling benchmark levels and exchange-rate history.
func (c *YahooClient) FetchRange(symbol string, start, end time.Time) (PriceChart, error) {
	url := fmt.Sprintf(
		"%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL, symbol, start.Unix(), end.Unix(),
	)
	return c.fetchChart(symbol, url)
}

func (c *YahooClient) fetchChart(symbol, url string) (PriceChart, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return PriceChart{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PriceChart{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return PriceChart{}, err
	}

	var response chartResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return PriceChart{}, err
	}
	if response.Chart.Error != nil {
		return PriceChart{}, fmt.Errorf("yahoo error for %s: %s", symbol, *response.Chart.Error)
	}
	if len(response.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return parseChart(response)
}

// parseChart flattens the raw response into a PriceChart, validating that
// timestamps and close prices are present and aligned.
func parseChart(response chartResponse) (PriceChart, error) {
	result := response.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}
	if len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	points := make([]PricePoint, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		points[i] = PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: result.Indicators.Quote[0].Close[i],
		}
	}

	name := result.Meta.LongName
	if name == "" {
		name = result.Meta.ShortName
	}
	return PriceChart{
		Symbol:   result.Meta.Symbol,
		Currency: result.Meta.Currency,
		Name:     name,
		Points:   points,
	}, nil
}
