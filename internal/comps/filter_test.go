package comps

import "testing"

func filterFixture() []ComparableSale {
	return []ComparableSale{
		{ID: "exact", Bedrooms: 3, Bathrooms: 2, Sqft: 1500, SalesPrice: 300000, DaysAgo: 20},
		{ID: "plus1", Bedrooms: 4, Bathrooms: 2.5, Sqft: 1800, SalesPrice: 340000, DaysAgo: 50},
		{ID: "minus2", Bedrooms: 1, Bathrooms: 1, Sqft: 900, SalesPrice: 150000, DaysAgo: 90},
		{ID: "stale", Bedrooms: 3, Bathrooms: 2, Sqft: 1500, SalesPrice: 290000, DaysAgo: 200},
	}
}

func ids(sales []ComparableSale) []string {
	out := make([]string, len(sales))
	for i, c := range sales {
		out[i] = c.ID
	}
	return out
}

func TestApply(t *testing.T) {
	subject := Subject{Bedrooms: 3, Bathrooms: 2, Sqft: 1500}
	minPrice := 200000.0

	tests := []struct {
		name     string
		mutate   func(*Filters)
		expected []string
	}{
		{"Defaults", func(*Filters) {}, []string{"exact"}},
		{"PlusMinusOne", func(f *Filters) {
			f.BedroomMode, f.BathroomMode = RangePM1, RangePM1
		}, []string{"exact"}},
		{"PlusMinusOneWideSqft", func(f *Filters) {
			f.BedroomMode, f.BathroomMode, f.SqftRelativeOffset = RangePM1, RangePM1, 250
			f.SqftMode = SqftAbsolute
			f.SqftAbsoluteMin, f.SqftAbsoluteMax = 0, 2000
		}, []string{"exact", "plus1"}},
		{"AllRooms", func(f *Filters) {
			f.BedroomMode, f.BathroomMode = RangeAll, RangeAll
			f.SqftMode = SqftAbsolute
		}, []string{"exact", "plus1", "minus2"}},
		{"MinPrice", func(f *Filters) {
			f.BedroomMode, f.BathroomMode = RangeAll, RangeAll
			f.SqftMode = SqftAbsolute
			f.MinSalePrice = &minPrice
		}, []string{"exact", "plus1"}},
		{"ShortPeriod", func(f *Filters) {
			f.BedroomMode, f.BathroomMode = RangeAll, RangeAll
			f.SqftMode = SqftAbsolute
			f.TimePeriodDays = 60
		}, []string{"exact", "plus1"}},
		{"PeriodCappedAt180", func(f *Filters) {
			f.TimePeriodDays = 365
		}, []string{"exact"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilters()
			tt.mutate(&f)
			got := ids(Apply(filterFixture(), subject, f))
			if len(got) != len(tt.expected) {
				t.Fatalf("Apply() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Apply() = %v, want %v", got, tt.expected)
					break
				}
			}
		})
	}
}

func TestFilters_Validate(t *testing.T) {
	f := DefaultFilters()
	if err := f.Validate(); err != nil {
		t.Errorf("default filters invalid: %v", err)
	}

	f.BedroomMode = "pm3"
	if err := f.Validate(); err == nil {
		t.Error("expected error for unknown bedroom mode")
	}

	f = DefaultFilters()
	f.SqftMode = SqftAbsolute
	f.SqftAbsoluteMin, f.SqftAbsoluteMax = 3000, 1000
	if err := f.Validate(); err == nil {
		t.Error("expected error for inverted sqft range")
	}
}

func TestDetectInputType(t *testing.T) {
	tests := []struct {
		input    string
		expected InputType
	}{
		{"https://www.redfin.com/TN/Nashville/home/123", InputURL},
		{"  HTTP://example.com ", InputURL},
		{"123-456-789", InputParcel},
		{"08205001100", InputParcel},
		{"123 Main St, Nashville, TN", InputAddress},
		{"12 Oak", InputAddress},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DetectInputType(tt.input); got != tt.expected {
				t.Errorf("DetectInputType(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}
