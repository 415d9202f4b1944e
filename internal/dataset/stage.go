package dataset

// DefaultGroupThreshold is the share of the total below which a record is
// folded into Other when grouping is enabled.
const DefaultGroupThreshold = 0.03

// groupMinRecords is the dataset length that must be exceeded before
// grouping runs.
const groupMinRecords = 2

// Stage is one post-processing step over a normalized dataset. Stages own
// the slice they are given and may return it modified.
type Stage interface {
	Apply(records []Record) []Record
}

// PercentStage treats values as percentages and adds the remainder to 100
// as Other. Datasets already at or above 100 are left alone.
type PercentStage struct{}

func (PercentStage) Apply(records []Record) []Record {
	sum := Sum(records)
	if sum >= 100 {
		return records
	}
	return addOther(records, 100-sum)
}

// GroupStage folds records smaller than Threshold of the total into Other.
// The total is Base when set, otherwise the sum of the records it is given.
type GroupStage struct {
	Threshold float64
	Base      float64
}

func NewGroupStage(threshold float64) GroupStage {
	if threshold <= 0 {
		threshold = DefaultGroupThreshold
	}
	return GroupStage{Threshold: threshold}
}

func (g GroupStage) Apply(records []Record) []Record {
	if len(records) <= groupMinRecords {
		return records
	}
	base := g.Base
	if base <= 0 {
		base = Sum(records)
	}
	limit := base * g.Threshold

	kept := records[:0:0]
	var grouped float64
	for _, r := range records {
		if !r.IsOther() && r.Value < limit {
			grouped += r.Value
			continue
		}
		kept = append(kept, r)
	}
	if grouped <= 0 {
		return kept
	}
	return addOther(kept, grouped)
}

// addOther adds v to the existing Other record, or appends a new one.
func addOther(records []Record, v float64) []Record {
	if i := IndexOfOther(records); i >= 0 {
		records[i].Value += v
		return records
	}
	return append(records, Record{Value: v, Label: OtherLabel})
}
