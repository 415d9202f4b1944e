package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrNoData is returned when a payload carries no usable values.
var ErrNoData = errors.New("no data")

// ErrInvalidValue is returned for negative, NaN or infinite values.
var ErrInvalidValue = errors.New("invalid value")

// Options controls post-processing applied after the payload is resolved.
type Options struct {
	Percents       bool
	Group          bool
	GroupThreshold float64 // fraction of the sum; 0 means DefaultGroupThreshold
}

// Stages returns the post-processing pipeline selected by opts, in order.
// sum is the total of the input records; grouping measures against it so a
// percent remainder does not raise the threshold.
func (o Options) Stages(sum float64) []Stage {
	var stages []Stage
	if o.Percents {
		stages = append(stages, PercentStage{})
	}
	if o.Group {
		g := NewGroupStage(o.GroupThreshold)
		g.Base = sum
		stages = append(stages, g)
	}
	return stages
}

// Normalize resolves a payload into a fresh ordered list of records and runs
// the post-processing stages over it. The result never aliases p.
func Normalize(p Payload, opts Options) ([]Record, error) {
	records, err := resolve(p)
	if err != nil {
		return nil, err
	}
	for i, r := range records {
		if err := checkValue(r.Value); err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, r.Label, err)
		}
	}
	for _, s := range opts.Stages(Sum(records)) {
		records = s.Apply(records)
	}
	return records, nil
}

func resolve(p Payload) ([]Record, error) {
	switch v := p.(type) {
	case Scalar:
		return scalarRecords(v), nil
	case *Scalar:
		if v == nil {
			return nil, ErrNoData
		}
		return scalarRecords(*v), nil
	case ParallelArrays:
		return parallelRecords(v)
	case *ParallelArrays:
		if v == nil {
			return nil, ErrNoData
		}
		return parallelRecords(*v)
	case RecordArray:
		if len(v) == 0 {
			return nil, ErrNoData
		}
		out := make([]Record, len(v))
		copy(out, v)
		return out, nil
	default:
		return nil, ErrNoData
	}
}

// scalarRecords pairs the value with its complement to 100. The complement
// is clamped at zero so the dataset always has two records.
func scalarRecords(s Scalar) []Record {
	return []Record{
		{Value: s.Value, Label: s.Label},
		{Value: math.Max(0, 100-s.Value), Label: OtherLabel},
	}
}

func parallelRecords(p ParallelArrays) ([]Record, error) {
	if len(p.Values) == 0 {
		return nil, ErrNoData
	}
	if len(p.Values) == 1 {
		s := Scalar{Value: p.Values[0], Label: "1"}
		if len(p.Labels) > 0 {
			s.Label = p.Labels[0]
		}
		return scalarRecords(s), nil
	}
	out := make([]Record, len(p.Values))
	for i, v := range p.Values {
		label := strconv.Itoa(i + 1)
		if i < len(p.Labels) {
			label = p.Labels[i]
		}
		out[i] = Record{Value: v, Label: label}
	}
	return out, nil
}

func checkValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v is not finite", ErrInvalidValue, v)
	}
	if v < 0 {
		return fmt.Errorf("%w: %v is negative", ErrInvalidValue, v)
	}
	return nil
}
