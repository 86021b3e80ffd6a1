package comps

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for DateSold.
const DateLayout = "2006-01-02"

// ErrInvalidRecord is returned when a sale cannot produce a price per square foot.
var ErrInvalidRecord = errors.New("invalid comparable sale")

// HomeType classifies the subject and its comps.
type HomeType string

const (
	SingleFamily HomeType = "Single Family"
	MultiUnit    HomeType = "Attached / Multi-unit"
	Manufactured HomeType = "Manufactured"
	LandLots     HomeType = "Land / Lots"
)

// HomeTypes lists the supported home types in display order.
var HomeTypes = []HomeType{SingleFamily, MultiUnit, Manufactured, LandLots}

// ComparableSale is a recently sold property used as a pricing reference.
// Excluded is the only field callers are expected to flip.
type ComparableSale struct {
	ID           string  `json:"id" jsonschema:"stable identifier of the sale"`
	Address      string  `json:"address,omitempty" jsonschema:"street address"`
	Bedrooms     float64 `json:"bedrooms,omitempty" jsonschema:"number of bedrooms"`
	Bathrooms    float64 `json:"bathrooms,omitempty" jsonschema:"number of bathrooms (halves allowed)"`
	Sqft         float64 `json:"sqft" jsonschema:"living area in square feet, must be positive"`
	DaysOnMarket int     `json:"daysOnMarket" jsonschema:"days the listing spent on market"`
	SalesPrice   float64 `json:"salesPrice" jsonschema:"closed sale price in dollars"`
	PricePerSqft float64 `json:"pricePerSqft,omitempty" jsonschema:"salesPrice / sqft rounded to cents (derived)"`
	DateSold     string  `json:"dateSold,omitempty" jsonschema:"sale date as YYYY-MM-DD"`
	DaysAgo      int     `json:"daysAgo,omitempty" jsonschema:"whole days between dateSold and the time the record was produced"`
	Excluded     bool    `json:"excluded,omitempty" jsonschema:"true to leave the sale out of statistics and ARV"`
}

// Subject is the property being evaluated.
type Subject struct {
	Address   string   `json:"address,omitempty"`
	Bedrooms  float64  `json:"bedrooms,omitempty"`
	Bathrooms float64  `json:"bathrooms,omitempty"`
	Sqft      float64  `json:"sqft" jsonschema:"living area in square feet; 0 means unknown"`
	YearBuilt int      `json:"yearBuilt,omitempty"`
	HomeType  HomeType `json:"homeType,omitempty"`
	LotSize   string   `json:"lotSize,omitempty"`
}

// NewComparableSale builds a sale record, deriving PricePerSqft and DaysAgo.
func NewComparableSale(id, address string, beds, baths, sqft float64, dom int, price float64, sold time.Time, now time.Time) (ComparableSale, error) {
	c := ComparableSale{
		ID:           id,
		Address:      address,
		Bedrooms:     beds,
		Bathrooms:    baths,
		Sqft:         sqft,
		DaysOnMarket: dom,
		SalesPrice:   price,
		DateSold:     sold.Format(DateLayout),
	}
	if err := c.Normalize(now); err != nil {
		return ComparableSale{}, err
	}
	return c, nil
}

// Normalize validates the record and recomputes its derived fields.
// PricePerSqft is never trusted from input.
func (c *ComparableSale) Normalize(now time.Time) error {
	if c.Sqft <= 0 {
		return fmt.Errorf("%w: %s: sqft must be positive, got %v", ErrInvalidRecord, c.ID, c.Sqft)
	}
	if c.SalesPrice < 0 {
		return fmt.Errorf("%w: %s: negative sales price %v", ErrInvalidRecord, c.ID, c.SalesPrice)
	}
	if c.DaysOnMarket < 0 {
		return fmt.Errorf("%w: %s: negative days on market %d", ErrInvalidRecord, c.ID, c.DaysOnMarket)
	}
	c.PricePerSqft = PricePerSqft(c.SalesPrice, c.Sqft)

	if c.DateSold != "" {
		sold, err := c.SoldOn()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidRecord, c.ID, err)
		}
		if !now.IsZero() {
			c.DaysAgo = DaysAgo(sold, now)
		}
	}
	if c.DaysAgo < 0 {
		c.DaysAgo = 0
	}
	return nil
}

// SoldOn parses DateSold. RFC 3339 timestamps are accepted and truncated to the date.
func (c ComparableSale) SoldOn() (time.Time, error) {
	s := strings.TrimSpace(c.DateSold)
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse dateSold %q: %w", c.DateSold, err)
	}
	return t, nil
}

// PricePerSqft returns price/sqft rounded to cents, or 0 when sqft is not positive.
func PricePerSqft(price, sqft float64) float64 {
	if sqft <= 0 {
		return 0
	}
	return RoundCents(price / sqft)
}

// RoundCents rounds half away from zero to two decimal places.
func RoundCents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// DaysAgo returns the number of whole days elapsed between sold and now, floored.
func DaysAgo(sold, now time.Time) int {
	d := now.Sub(sold)
	if d < 0 {
		return 0
	}
	return int(math.Floor(d.Hours() / 24))
}

// Refresh returns a copy of sales with DaysAgo recomputed against now.
// Records whose DateSold cannot be parsed keep their previous age.
func Refresh(sales []ComparableSale, now time.Time) []ComparableSale {
	out := make([]ComparableSale, len(sales))
	for i, c := range sales {
		if sold, err := c.SoldOn(); err == nil {
			c.DaysAgo = DaysAgo(sold, now)
		}
		out[i] = c
	}
	return out
}

// Active returns the non-excluded subset, preserving order.
func Active(sales []ComparableSale) []ComparableSale {
	active := make([]ComparableSale, 0, len(sales))
	for _, c := range sales {
		if !c.Excluded {
			active = append(active, c)
		}
	}
	return active
}

// ToggleExcluded returns a copy of sales with the Excluded flag of id flipped.
// The boolean reports whether id was found.
func ToggleExcluded(sales []ComparableSale, id string) ([]ComparableSale, bool) {
	out := make([]ComparableSale, len(sales))
	copy(out, sales)
	found := false
	for i := range out {
		if out[i].ID == id {
			out[i].Excluded = !out[i].Excluded
			found = true
		}
	}
	return out, found
}

// MergeExcluded returns a copy of sales with the given ids excluded as well.
// Records already flagged as excluded stay excluded.
func MergeExcluded(sales []ComparableSale, ids []string) []ComparableSale {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[strings.TrimSpace(id)] = true
	}
	out := make([]ComparableSale, len(sales))
	for i, c := range sales {
		c.Excluded = c.Excluded || set[c.ID]
		out[i] = c
	}
	return out
}
