// Package analysis ties comps, statistics and the offer solver into a single
// recomputation pipeline. A Workspace is an immutable value: every change
// returns a new Workspace whose ARV has been re-derived from its comps.
package analysis

import (
	"flip-mcp/internal/calculator"
	"flip-mcp/internal/comps"
	"flip-mcp/internal/stats"
)

// Workspace is a consistent snapshot of everything a deal analysis depends on.
type Workspace struct {
	subject    comps.Subject
	sales      []comps.ComparableSale
	statMode   stats.StatMode
	bucketMode stats.BucketMode
	inputs     calculator.Inputs
}

// New creates a workspace and derives its initial ARV.
func New(subject comps.Subject, sales []comps.ComparableSale, inputs calculator.Inputs) Workspace {
	w := Workspace{
		subject:    subject,
		sales:      clone(sales),
		statMode:   stats.StatMedian,
		bucketMode: stats.BucketExclusive,
		inputs:     inputs,
	}
	return w.recompute()
}

func clone(sales []comps.ComparableSale) []comps.ComparableSale {
	out := make([]comps.ComparableSale, len(sales))
	copy(out, sales)
	return out
}

func (w Workspace) recompute() Workspace {
	derived := stats.ComputeArv(w.sales, w.subject.Sqft, w.statMode)
	w.inputs.Arv = w.inputs.Arv.Refresh(derived)
	return w
}

// WithComps replaces the comp set.
func (w Workspace) WithComps(sales []comps.ComparableSale) Workspace {
	w.sales = clone(sales)
	return w.recompute()
}

// WithSubject replaces the subject property.
func (w Workspace) WithSubject(subject comps.Subject) Workspace {
	w.subject = subject
	return w.recompute()
}

// WithStatMode switches between median and average price per square foot.
func (w Workspace) WithStatMode(mode stats.StatMode) Workspace {
	w.statMode = mode
	return w.recompute()
}

// WithBucketMode switches the time bucket partitioning. ARV is unaffected.
func (w Workspace) WithBucketMode(mode stats.BucketMode) Workspace {
	w.bucketMode = mode
	return w
}

// ToggleExcluded flips the exclusion flag of the comp with the given id.
// The boolean reports whether the comp exists.
func (w Workspace) ToggleExcluded(id string) (Workspace, bool) {
	sales, found := comps.ToggleExcluded(w.sales, id)
	if !found {
		return w, false
	}
	w.sales = sales
	return w.recompute(), true
}

// Exclude marks ids as excluded in addition to any comps already flagged.
func (w Workspace) Exclude(ids []string) Workspace {
	w.sales = comps.MergeExcluded(w.sales, ids)
	return w.recompute()
}

// WithInputs replaces the cost assumptions. The ARV tag of in decides whether
// the supplied value is kept (Manual) or re-derived (Auto).
func (w Workspace) WithInputs(in calculator.Inputs) Workspace {
	w.inputs = in
	return w.recompute()
}

// OverrideArv pins the ARV to a user-supplied value.
func (w Workspace) OverrideArv(v float64) Workspace {
	w.inputs.Arv = calculator.ManualArv(v)
	return w
}

// ResetArv drops any override and re-derives the ARV from comps.
func (w Workspace) ResetArv() Workspace {
	w.inputs.Arv = calculator.AutoArv(0)
	return w.recompute()
}

// Subject returns the subject property.
func (w Workspace) Subject() comps.Subject { return w.subject }

// Comps returns a copy of the comp set.
func (w Workspace) Comps() []comps.ComparableSale { return clone(w.sales) }

// StatMode returns the active ARV statistic.
func (w Workspace) StatMode() stats.StatMode { return w.statMode }

// BucketMode returns the active bucket partitioning.
func (w Workspace) BucketMode() stats.BucketMode { return w.bucketMode }

// Inputs returns the cost assumptions, ARV included.
func (w Workspace) Inputs() calculator.Inputs { return w.inputs }

// Arv returns the current ARV.
func (w Workspace) Arv() calculator.Arv { return w.inputs.Arv }
