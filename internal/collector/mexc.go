package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"SignalSentry/internal/model"
)

// intervalMap translates config intervals to MEXC contract API kline names.
var intervalMap = map[string]string{
	"1m":  "Min1",
	"5m":  "Min5",
	"15m": "Min15",
	"30m": "Min30",
	"60m": "Min60",
	"1h":  "Min60",
	"4h":  "Hour4",
	"1d":  "Day1",
	"1D":  "Day1",
}

func mexcInterval(interval string) string {
	if v, ok := intervalMap[interval]; ok {
		return v
	}
	return "Min15"
}

// MexcFetcher implements Fetcher against the MEXC USDT-M contract REST API.
type MexcFetcher struct {
	BaseURL string
	Client  *http.Client
	limiter *rate.Limiter
}

// NewMexcFetcher creates a fetcher with optional proxy support and a cap on
// request rate.
func NewMexcFetcher(baseURL, proxyURL string, requestsPerSecond float64) *MexcFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 8
	}
	return &MexcFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

func (f *MexcFetcher) Name() string { return "mexc" }

func (f *MexcFetcher) getJSON(endpoint string, out interface{}) error {
	if err := f.limiter.Wait(context.Background()); err != nil {
		return err
	}
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type mexcContract struct {
	Symbol     string `json:"symbol"`
	QuoteCoin  string `json:"quoteCoin"`
	SettleCoin string `json:"settleCoin"`
	State      *int   `json:"state"`
}

// FetchContracts lists the USDT-quoted, USDT-settled contracts in normal
// trading state, sorted and deduplicated.
func (f *MexcFetcher) FetchContracts() ([]string, error) {
	var result struct {
		Data []mexcContract `json:"data"`
	}
	endpoint := fmt.Sprintf("%s/api/v1/contract/detail", f.BaseURL)
	if err := f.getJSON(endpoint, &result); err != nil {
		return nil, fmt.Errorf("fetch contracts: %w", err)
	}

	seen := make(map[string]bool)
	var symbols []string
	for _, c := range result.Data {
		if c.QuoteCoin != "USDT" || c.SettleCoin != "USDT" {
			continue
		}
		if c.State != nil && *c.State != 0 {
			continue
		}
		if c.Symbol == "" || seen[c.Symbol] {
			continue
		}
		seen[c.Symbol] = true
		symbols = append(symbols, c.Symbol)
	}
	sort.Strings(symbols)
	return symbols, nil
}

// toFloat tolerates the numeric-or-string volume fields the ticker endpoint
// returns.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return parsed
	case json.Number:
		parsed, _ := n.Float64()
		return parsed
	default:
		return 0
	}
}

// FetchTopByVolume ranks the allowed symbols by 24h volume and keeps the
// first topN.
func (f *MexcFetcher) FetchTopByVolume(allowed []string, topN int) ([]string, error) {
	var result struct {
		Data []map[string]interface{} `json:"data"`
	}
	endpoint := fmt.Sprintf("%s/api/v1/contract/ticker", f.BaseURL)
	if err := f.getJSON(endpoint, &result); err != nil {
		return nil, fmt.Errorf("fetch tickers: %w", err)
	}

	allowedSet := make(map[string]bool, len(allowed))
	for _, s := range allowed {
		allowedSet[s] = true
	}

	type symVol struct {
		symbol string
		volume float64
	}
	var vols []symVol
	for _, item := range result.Data {
		sym, _ := item["symbol"].(string)
		if !allowedSet[sym] {
			continue
		}
		vol := toFloat(item["volume24"])
		if vol == 0 {
			vol = toFloat(item["amount24"])
		}
		if vol == 0 {
			vol = toFloat(item["turnover24h"])
		}
		vols = append(vols, symVol{sym, vol})
	}
	sort.SliceStable(vols, func(i, j int) bool { return vols[i].volume > vols[j].volume })
	if topN > 0 && len(vols) > topN {
		vols = vols[:topN]
	}

	symbols := make([]string, len(vols))
	for i, v := range vols {
		symbols[i] = v.symbol
	}
	return symbols, nil
}

// FetchKlines returns the last `lookback` bars for the symbol, oldest first.
// The kline endpoint reports parallel arrays with timestamps in seconds.
func (f *MexcFetcher) FetchKlines(symbol, interval string, lookback int) (*model.Series, error) {
	var result struct {
		Success bool `json:"success"`
		Data    struct {
			Time  []int64   `json:"time"`
			Open  []float64 `json:"open"`
			High  []float64 `json:"high"`
			Low   []float64 `json:"low"`
			Close []float64 `json:"close"`
		} `json:"data"`
	}
	endpoint := fmt.Sprintf("%s/api/v1/contract/kline/%s?interval=%s",
		f.BaseURL, url.PathEscape(symbol), mexcInterval(interval))
	if err := f.getJSON(endpoint, &result); err != nil {
		return nil, fmt.Errorf("fetch klines %s: %w", symbol, err)
	}
	if !result.Success {
		return nil, fmt.Errorf("fetch klines %s: api reported failure", symbol)
	}

	d := result.Data
	n := len(d.Close)
	if len(d.Time) < n {
		n = len(d.Time)
	}
	if len(d.High) < n {
		n = len(d.High)
	}
	if len(d.Low) < n {
		n = len(d.Low)
	}
	start := 0
	if lookback > 0 && n > lookback {
		start = n - lookback
	}

	series := &model.Series{Symbol: symbol}
	for i := start; i < n; i++ {
		open := 0.0
		if i < len(d.Open) {
			open = d.Open[i]
		}
		series.Bars = append(series.Bars, model.Candle{
			Open:      open,
			High:      d.High[i],
			Low:       d.Low[i],
			Close:     d.Close[i],
			CloseTime: time.Unix(d.Time[i], 0),
		})
	}
	return series, nil
}
