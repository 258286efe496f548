package kernel

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// Currency is an ISO 4217 code from the set of currencies vehicles may quote in.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CAD Currency = "CAD"
	AUD Currency = "AUD"
	CHF Currency = "CHF"
	CNY Currency = "CNY"
	INR Currency = "INR"
	BRL Currency = "BRL"
	RUB Currency = "RUB"
	KRW Currency = "KRW"
	SGD Currency = "SGD"
	NZD Currency = "NZD"
	MXN Currency = "MXN"
	HKD Currency = "HKD"
	SEK Currency = "SEK"
	NOK Currency = "NOK"
	DKK Currency = "DKK"
	PLN Currency = "PLN"

	// DefaultCurrency is used when a vehicle quotes without naming a currency.
	DefaultCurrency = USD
)

func currencySymbols() map[Currency]string {
	return map[Currency]string{
		USD: "$", EUR: "€", GBP: "£", JPY: "¥", CAD: "$",
		AUD: "$", CHF: "CHF", CNY: "¥", INR: "₹", BRL: "R$",
		RUB: "₽", KRW: "₩", SGD: "$", NZD: "$", MXN: "$",
		HKD: "$", SEK: "kr", NOK: "kr", DKK: "kr", PLN: "zł",
	}
}

// ParseCurrency accepts a supported code in any letter case. An empty code yields DefaultCurrency.
func ParseCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}

	c := Currency(code)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Currency) Validate() error {
	if _, ok := currencySymbols()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not supported", string(c)))
	}
	return nil
}

// Symbol falls back to "$" for unknown codes.
func (c Currency) Symbol() string {
	if s, ok := currencySymbols()[c]; ok {
		return s
	}
	return "$"
}

func (c Currency) String() string {
	return string(c)
}

// Format renders an amount the way it is shown in status notes, e.g. "351.00 USD".
func (c Currency) Format(amount float64) string {
	return fmt.Sprintf("%.2f %s", amount, string(c))
}
