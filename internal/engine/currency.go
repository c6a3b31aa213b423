package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jask/jaskwallet/internal/database/repository"
)

const (
	keyCurrencyCode = "currency.code"
	keyCurrencyRate = "currency.rate"
	keyCurrencyDate = "currency.date"

	nativeCurrency = "eth"
	priceCoinID    = "ethereum"
)

// CurrencyRateController tracks the ETH conversion rate for the selected
// fiat currency.
type CurrencyRateController struct {
	settings    *repository.SettingsRepo
	client      *http.Client
	rateURL     string
	defaultCode string
}

func NewCurrencyRateController(settings *repository.SettingsRepo, client *http.Client, rateURL, defaultCode string) *CurrencyRateController {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if defaultCode == "" {
		defaultCode = "usd"
	}
	return &CurrencyRateController{settings: settings, client: client, rateURL: rateURL, defaultCode: defaultCode}
}

func (c *CurrencyRateController) CurrentCurrency(ctx context.Context) (string, error) {
	code, ok, err := c.settings.Get(ctx, keyCurrencyCode)
	if err != nil {
		return "", err
	}
	if !ok || code == "" {
		return c.defaultCode, nil
	}
	return code, nil
}

// SetCurrentCurrency changes the fiat currency and forgets the stale rate.
func (c *CurrencyRateController) SetCurrentCurrency(ctx context.Context, code string) error {
	if err := c.settings.Set(ctx, keyCurrencyCode, strings.ToLower(code)); err != nil {
		return err
	}
	if err := c.settings.Delete(ctx, keyCurrencyRate); err != nil {
		return err
	}
	return c.settings.Delete(ctx, keyCurrencyDate)
}

type priceResponse map[string]map[string]float64

// Refresh fetches the current rate from the price API and stores it.
func (c *CurrencyRateController) Refresh(ctx context.Context) (float64, error) {
	if c.rateURL == "" {
		return 0, fmt.Errorf("engine: no rate url configured")
	}
	code, err := c.CurrentCurrency(ctx)
	if err != nil {
		return 0, err
	}
	u, err := url.Parse(c.rateURL)
	if err != nil {
		return 0, fmt.Errorf("invalid rate url: %w", err)
	}
	q := u.Query()
	q.Set("ids", priceCoinID)
	q.Set("vs_currencies", code)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to get rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to get rate: status %d", resp.StatusCode)
	}
	var pr priceResponse
	if err := jsonAPI.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return 0, fmt.Errorf("failed to decode rate: %w", err)
	}
	rate, ok := pr[priceCoinID][code]
	if !ok {
		return 0, fmt.Errorf("no %s rate in response", code)
	}

	if err := c.settings.Set(ctx, keyCurrencyRate, strconv.FormatFloat(rate, 'f', -1, 64)); err != nil {
		return 0, err
	}
	now := time.Now().Unix()
	if err := c.settings.Set(ctx, keyCurrencyDate, strconv.FormatInt(now, 10)); err != nil {
		return 0, err
	}
	log.Debugf("Conversion rate %s/%s = %v", nativeCurrency, code, rate)
	return rate, nil
}

func (c *CurrencyRateController) State(ctx context.Context) (CurrencyRateState, error) {
	code, err := c.CurrentCurrency(ctx)
	if err != nil {
		return CurrencyRateState{}, err
	}
	st := CurrencyRateState{CurrentCurrency: code, NativeCurrency: nativeCurrency}
	if raw, ok, err := c.settings.Get(ctx, keyCurrencyRate); err != nil {
		return CurrencyRateState{}, err
	} else if ok {
		if st.ConversionRate, err = strconv.ParseFloat(raw, 64); err != nil {
			return CurrencyRateState{}, fmt.Errorf("bad stored rate %q: %w", raw, err)
		}
	}
	if raw, ok, err := c.settings.Get(ctx, keyCurrencyDate); err != nil {
		return CurrencyRateState{}, err
	} else if ok {
		st.ConversionDate, _ = strconv.ParseInt(raw, 10, 64)
	}
	return st, nil
}
