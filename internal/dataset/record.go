package dataset

// OtherLabel is the reserved label of the aggregate slice. It holds the
// percent remainder and any grouped small values, and is never sorted.
const OtherLabel = "Other"

// Record is one value/label pair rendered as a pie slice.
type Record struct {
	Value float64 `json:"value" yaml:"value"`
	Label string  `json:"label" yaml:"label"`
}

// IsOther reports whether the record is the aggregate slice.
func (r Record) IsOther() bool {
	return r.Label == OtherLabel
}

// Sum returns the total of all record values.
func Sum(records []Record) float64 {
	var sum float64
	for _, r := range records {
		sum += r.Value
	}
	return sum
}

// IndexOfOther returns the position of the Other record, or -1.
func IndexOfOther(records []Record) int {
	for i, r := range records {
		if r.IsOther() {
			return i
		}
	}
	return -1
}
