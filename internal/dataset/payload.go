package dataset

// Payload is the caller-supplied data for an update. It is one of Scalar,
// ParallelArrays or RecordArray.
type Payload interface {
	isPayload()
}

// Scalar is a lone value. It is rendered against its complement to 100.
type Scalar struct {
	Value float64
	Label string
}

// ParallelArrays holds values with an optional parallel list of labels.
// Labels may be shorter than Values.
type ParallelArrays struct {
	Values []float64
	Labels []string
}

// RecordArray is a ready list of records.
type RecordArray []Record

func (Scalar) isPayload()         {}
func (ParallelArrays) isPayload() {}
func (RecordArray) isPayload()    {}
