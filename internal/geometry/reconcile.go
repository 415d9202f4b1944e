package geometry

import "github.com/olehluchkiv/svgpie/internal/dataset"

// Diff is the keyed difference between the rendered labels and a new
// dataset. Enter and Update follow the new dataset order; Exit follows the
// previous one.
type Diff struct {
	Enter  []string
	Update []string
	Exit   []string
}

// Empty reports whether nothing entered or left.
func (d Diff) Empty() bool {
	return len(d.Enter) == 0 && len(d.Exit) == 0
}

// Reconciler remembers the labels currently rendered.
type Reconciler struct {
	order []string
	keys  map[string]bool
}

func NewReconciler() *Reconciler {
	return &Reconciler{keys: make(map[string]bool)}
}

// Reconcile diffs records against the rendered labels and records the new
// set as rendered. Duplicate labels collapse to their first occurrence.
func (r *Reconciler) Reconcile(records []dataset.Record) Diff {
	var d Diff
	next := make(map[string]bool, len(records))
	order := make([]string, 0, len(records))
	for _, rec := range records {
		if next[rec.Label] {
			continue
		}
		next[rec.Label] = true
		order = append(order, rec.Label)
		if r.keys[rec.Label] {
			d.Update = append(d.Update, rec.Label)
		} else {
			d.Enter = append(d.Enter, rec.Label)
		}
	}
	for _, label := range r.order {
		if !next[label] {
			d.Exit = append(d.Exit, label)
		}
	}
	r.order = order
	r.keys = next
	return d
}

// Labels returns the rendered labels in sweep order.
func (r *Reconciler) Labels() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
