package dataset

import "sort"

// Order returns a copy of records. When byValue is set the copy is sorted by
// descending value, ties keep their input order, and Other is always last.
func Order(records []Record, byValue bool) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	if !byValue {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsOther() != b.IsOther() {
			return b.IsOther()
		}
		return a.Value > b.Value
	})
	return out
}
