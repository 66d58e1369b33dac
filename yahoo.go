package foliotrack

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// lookbackDays is the window scanned backwards when a symbol has no close on
// the requested date (week-ends, holidays, halted listings).
const lookbackDays = 14

const yahooChartURL = "https://query2.finance.yahoo.com/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d"

// YahooSource fetches daily closes from the Yahoo Finance v8 chart API.
// It implements PriceSource. Responses are cached on disk with a daily
// expiry so repeated valuations do not hammer the endpoint.
type YahooSource struct {
	client *http.Client
}

// NewYahooSource returns a price source backed by Yahoo Finance.
func NewYahooSource() *YahooSource {
	return &YahooSource{
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: &diskCache{base: http.DefaultTransport},
		},
	}
}

// PriceAt implements PriceSource. It returns the close on the given date or
// the most recent close within the preceding lookbackDays; anything else,
// including transport failures, is reported as ErrPriceUnavailable.
func (y *YahooSource) PriceAt(ctx context.Context, symbol string, on Date) (Money, error) {
	history, err := y.chart(ctx, symbol, on.Add(-lookbackDays), on)
	if err != nil {
		return Money{}, fmt.Errorf("no price for %s on %s (%v): %w", symbol, on, err, ErrPriceUnavailable)
	}
	price, ok := history.AsOf(on)
	if !ok || !price.IsPositive() {
		return Money{}, fmt.Errorf("no close for %s within %d days before %s: %w", symbol, lookbackDays, on, ErrPriceUnavailable)
	}
	return price, nil
}

// PriceSeries implements PriceSource. Gaps (non-trading days) are left in
// the series; the valuation engine forward-fills them.
func (y *YahooSource) PriceSeries(ctx context.Context, symbol string, from, to Date) (*PriceHistory, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is after %s", from, to)
	}
	return y.chart(ctx, symbol, from, to)
}

// chart fetches and parses the daily chart of symbol over [from, to].
func (y *YahooSource) chart(ctx context.Context, symbol string, from, to Date) (*PriceHistory, error) {
	// period2 is exclusive, push it past the end of the last day.
	addr := fmt.Sprintf(yahooChartURL, url.PathEscape(symbol), from.Unix(), to.Add(1).Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "foliotrack/1.0")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseChart(body)
}

// parseChart extracts the (timestamp, close) pairs from a v8 chart response.
// NULL closes (gap days) are skipped rather than recorded as zero.
func parseChart(data []byte) (*PriceHistory, error) {
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("invalid chart response: %w", err)
	}

	timestamps, err := jsonpathSlice("$.chart.result[0].timestamp", jobj)
	if err != nil {
		return nil, err
	}
	closes, err := jsonpathSlice("$.chart.result[0].indicators.quote[0].close", jobj)
	if err != nil {
		return nil, err
	}
	if len(timestamps) != len(closes) {
		return nil, fmt.Errorf("mismatched chart data: %d timestamps, %d closes", len(timestamps), len(closes))
	}

	history := &PriceHistory{}
	for i, jts := range timestamps {
		ts, ok := jts.(float64)
		if !ok {
			return nil, fmt.Errorf("timestamp %d is not a number: %v", i, jts)
		}
		price, ok := closes[i].(float64)
		if !ok {
			continue // null close, no trade that day
		}
		history.Append(DateOf(time.Unix(int64(ts), 0).UTC()), M(price))
	}
	return history, nil
}

// jsonpathSlice evaluates a jsonpath expression expected to yield an array.
func jsonpathSlice(path string, jobj any) ([]any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing chart response at %q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("chart response at %q is not an array: %T", path, jval)
	}
	return jlist, nil
}

// diskCache implements a simple disk cache for HTTP responses.
// The cache key includes the current day, so entries expire daily.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s %s", Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if cached, err := c.get(key, req); err == nil {
		return cached, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to the disk cache.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(os.TempDir(), key))
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

var _ PriceSource = (*YahooSource)(nil)
