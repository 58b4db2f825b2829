package marketdata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultKrakenBaseURL = "https://api.kraken.com"

// krakenPairs maps common crypto tickers to Kraken's legacy pair names.
// Symbols not listed fall back to "<SYMBOL>USD".
var krakenPairs = map[string]string{
	"BTC":   "XXBTZUSD",
	"ETH":   "XETHZUSD",
	"XRP":   "XXRPZUSD",
	"LTC":   "XLTCZUSD",
	"DOT":   "DOTUSD",
	"ADA":   "ADAUSD",
	"SOL":   "SOLUSD",
	"DOGE":  "XDGUSD",
	"LINK":  "LINKUSD",
	"MATIC": "MATICUSD",
	"AVAX":  "AVAXUSD",
	"UNI":   "UNIUSD",
}

// KrakenClient fetches spot crypto prices from the Kraken public Ticker
// API. All prices are quoted in USD.
type KrakenClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewKrakenClient creates a ticker client with default HTTP settings.
func NewKrakenClient() *KrakenClient {
	return &KrakenClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultKrakenBaseURL,
	}
}

// FetchTicker returns the current USD price for a crypto symbol such as
// "BTC" or "ETH".
func (c *KrakenClient) FetchTicker(symbol string) (float64, error) {
	upper := strings.ToUpper(symbol)
	pair, ok := krakenPairs[upper]
	if !ok {
		pair = upper + "USD"
	}

	url := fmt.Sprintf("%s/0/public/Ticker?pair=%s", c.baseURL, pair)
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var response krakenResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return 0, err
	}
	if len(response.Error) > 0 {
		return 0, fmt.Errorf("kraken error for %s: %s", upper, strings.Join(response.Error, "; "))
	}

	for _, ticker := range response.Result {
		if len(ticker.Close) == 0 {
			break
		}
		price, err := strconv.ParseFloat(ticker.Close[0], 64)
		if err != nil {
			return 0, fmt.Errorf("kraken price for %s: %w", upper, err)
		}
		return price, nil
	}
	return 0, fmt.Errorf("no ticker data returned for %s", upper)
}
