package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"flip-mcp/internal/calculator"
	"flip-mcp/internal/comps"
	"flip-mcp/internal/stats"
)

// Deal is a self-contained analysis request, as read from a deal file or tool call.
type Deal struct {
	Name       string                 `json:"name,omitempty" jsonschema:"label for the deal"`
	Subject    comps.Subject          `json:"subject" jsonschema:"property being evaluated; sqft drives the ARV"`
	Comps      []comps.ComparableSale `json:"comps" jsonschema:"comparable sales"`
	StatMode   string                 `json:"statMode,omitempty" jsonschema:"median (default) or average"`
	BucketMode string                 `json:"bucketMode,omitempty" jsonschema:"exclusive (default) or cumulative"`
	Exclude    []string               `json:"exclude,omitempty" jsonschema:"comp ids to leave out, in addition to comps already flagged excluded"`
	Filters    *comps.Filters         `json:"filters,omitempty" jsonschema:"optional similarity filters applied before analysis"`
	Inputs     *calculator.Params     `json:"inputs,omitempty" jsonschema:"cost assumptions; omitted means defaults"`
}

// ReadDeal loads a deal from a JSON file.
func ReadDeal(path string) (Deal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Deal{}, fmt.Errorf("read deal: %w", err)
	}
	var d Deal
	if err := json.Unmarshal(data, &d); err != nil {
		return Deal{}, fmt.Errorf("decode deal %s: %w", path, err)
	}
	return d, nil
}

// Workspace validates the deal and builds its workspace. Comps are normalized
// against now so PricePerSqft is always derived. Invalid comps are an error.
func (d Deal) Workspace(defaults calculator.Inputs, now time.Time) (Workspace, error) {
	statMode, err := stats.ParseStatMode(d.StatMode)
	if err != nil {
		return Workspace{}, err
	}
	bucketMode, err := stats.ParseBucketMode(d.BucketMode)
	if err != nil {
		return Workspace{}, err
	}

	sales := make([]comps.ComparableSale, len(d.Comps))
	for i, c := range d.Comps {
		if err := c.Normalize(now); err != nil {
			return Workspace{}, err
		}
		sales[i] = c
	}

	if d.Filters != nil {
		if err := d.Filters.Validate(); err != nil {
			return Workspace{}, fmt.Errorf("invalid filters: %w", err)
		}
		sales = comps.Apply(sales, d.Subject, *d.Filters)
	}

	in := defaults
	if d.Inputs != nil {
		in = d.Inputs.Inputs()
	}

	w := New(d.Subject, sales, in).
		WithStatMode(statMode).
		WithBucketMode(bucketMode)
	if len(d.Exclude) > 0 {
		w = w.Exclude(d.Exclude)
	}
	return w, nil
}

// WithModeDefaults fills unset modes from configured defaults.
func (d Deal) WithModeDefaults(statMode stats.StatMode, bucketMode stats.BucketMode) Deal {
	if d.StatMode == "" {
		d.StatMode = string(statMode)
	}
	if d.BucketMode == "" {
		d.BucketMode = string(bucketMode)
	}
	return d
}
