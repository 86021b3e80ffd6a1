package comps

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// RangeMode controls how bedroom and bathroom counts are matched against the subject.
type RangeMode string

const (
	RangeExact RangeMode = "exact"
	RangePM1   RangeMode = "pm1"
	RangePM2   RangeMode = "pm2"
	RangeAll   RangeMode = "all"
)

// SqftMode selects between a window around the subject and an absolute range.
type SqftMode string

const (
	SqftRelative SqftMode = "relative"
	SqftAbsolute SqftMode = "absolute"
)

// MaxTimePeriodDays is the oldest sale age the analysis ever considers.
const MaxTimePeriodDays = 180

// Filters narrows a comp set to sales that resemble the subject.
type Filters struct {
	RadiusMiles        float64   `json:"radiusMiles"`
	HomeType           HomeType  `json:"homeType,omitempty"`
	BedroomMode        RangeMode `json:"bedroomMode"`
	BathroomMode       RangeMode `json:"bathroomMode"`
	SqftMode           SqftMode  `json:"sqftMode"`
	SqftRelativeOffset float64   `json:"sqftRelativeOffset"`
	SqftAbsoluteMin    float64   `json:"sqftAbsoluteMin"`
	SqftAbsoluteMax    float64   `json:"sqftAbsoluteMax"`
	MinSalePrice       *float64  `json:"minSalePrice,omitempty"`
	TimePeriodDays     int       `json:"timePeriodDays"`
}

// DefaultFilters mirrors the defaults a fresh search starts with.
func DefaultFilters() Filters {
	return Filters{
		RadiusMiles:        1,
		HomeType:           SingleFamily,
		BedroomMode:        RangeExact,
		BathroomMode:       RangeExact,
		SqftMode:           SqftRelative,
		SqftRelativeOffset: 250,
		SqftAbsoluteMin:    0,
		SqftAbsoluteMax:    10000,
		TimePeriodDays:     MaxTimePeriodDays,
	}
}

// Validate reports filter settings that cannot be applied.
func (f Filters) Validate() error {
	for _, m := range []RangeMode{f.BedroomMode, f.BathroomMode} {
		switch m {
		case RangeExact, RangePM1, RangePM2, RangeAll, "":
		default:
			return fmt.Errorf("unknown range mode %q", m)
		}
	}
	switch f.SqftMode {
	case SqftRelative, SqftAbsolute, "":
	default:
		return fmt.Errorf("unknown sqft mode %q", f.SqftMode)
	}
	if f.SqftMode == SqftAbsolute && f.SqftAbsoluteMax < f.SqftAbsoluteMin {
		return fmt.Errorf("sqft range inverted: min %v > max %v", f.SqftAbsoluteMin, f.SqftAbsoluteMax)
	}
	if f.TimePeriodDays < 0 {
		return fmt.Errorf("time period must not be negative, got %d", f.TimePeriodDays)
	}
	return nil
}

// Apply returns the sales that pass every filter relative to subject.
// RadiusMiles and HomeType are acquisition-side criteria and are not applied here.
func Apply(sales []ComparableSale, subject Subject, f Filters) []ComparableSale {
	period := f.TimePeriodDays
	if period <= 0 || period > MaxTimePeriodDays {
		period = MaxTimePeriodDays
	}

	out := make([]ComparableSale, 0, len(sales))
	for _, c := range sales {
		if c.DaysAgo > period {
			continue
		}
		if !withinRange(c.Bedrooms, subject.Bedrooms, f.BedroomMode) {
			continue
		}
		if !withinRange(c.Bathrooms, subject.Bathrooms, f.BathroomMode) {
			continue
		}
		if !withinSqft(c.Sqft, subject.Sqft, f) {
			continue
		}
		if f.MinSalePrice != nil && c.SalesPrice < *f.MinSalePrice {
			continue
		}
		out = append(out, c)
	}
	return out
}

func withinRange(value, target float64, mode RangeMode) bool {
	diff := math.Abs(value - target)
	switch mode {
	case RangePM1:
		return diff <= 1
	case RangePM2:
		return diff <= 2
	case RangeAll, "":
		return true
	default:
		return diff == 0
	}
}

func withinSqft(sqft, subject float64, f Filters) bool {
	if f.SqftMode == SqftAbsolute {
		return sqft >= f.SqftAbsoluteMin && sqft <= f.SqftAbsoluteMax
	}
	if subject <= 0 {
		return true
	}
	return math.Abs(sqft-subject) <= f.SqftRelativeOffset
}

// InputType classifies a free-form property lookup string.
type InputType string

const (
	InputAddress InputType = "address"
	InputURL     InputType = "url"
	InputParcel  InputType = "parcel"
)

var (
	urlPattern    = regexp.MustCompile(`(?i)^https?://`)
	parcelPattern = regexp.MustCompile(`^\d{3,}[-.\s]?\d*[-.\s]?\d*$`)
)

// DetectInputType decides whether s is a listing URL, a parcel number or a street address.
func DetectInputType(s string) InputType {
	trimmed := strings.TrimSpace(s)
	if urlPattern.MatchString(trimmed) {
		return InputURL
	}
	if parcelPattern.MatchString(trimmed) {
		return InputParcel
	}
	return InputAddress
}
