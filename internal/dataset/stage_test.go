package dataset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestGroupStage_FoldsSmallValues(t *testing.T) {
	in := []Record{{50, "a"}, {1, "b"}, {47, "c"}, {2, "d"}}
	got := NewGroupStage(0).Apply(in)

	// limit is 3% of 100
	want := []Record{{50, "a"}, {47, "c"}, {3, OtherLabel}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupStage_MergesIntoExistingOther(t *testing.T) {
	in := []Record{{60, "a"}, {1, "b"}, {39, OtherLabel}}
	got := NewGroupStage(0).Apply(in)

	want := []Record{{60, "a"}, {40, OtherLabel}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupStage_SkipsShortDatasets(t *testing.T) {
	in := []Record{{99, "a"}, {1, "b"}}
	got := NewGroupStage(0).Apply(in)
	assert.Equal(t, []Record{{99, "a"}, {1, "b"}}, got)
}

func TestGroupStage_Idempotent(t *testing.T) {
	in := []Record{{50, "a"}, {1, "b"}, {45, "c"}, {2, "d"}, {2, "e"}}
	stage := NewGroupStage(0)

	once := stage.Apply(in)
	again := make([]Record, len(once))
	copy(again, once)
	twice := stage.Apply(again)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("grouping twice changed the dataset (-once +twice):\n%s", diff)
	}
}

func TestGroupStage_CustomThreshold(t *testing.T) {
	in := []Record{{80, "a"}, {8, "b"}, {12, "c"}}
	got := NewGroupStage(0.1).Apply(in)

	want := []Record{{80, "a"}, {12, "c"}, {8, OtherLabel}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestPercentStage(t *testing.T) {
	assert.Equal(t, []Record{{100, "a"}}, PercentStage{}.Apply([]Record{{100, "a"}}))
	assert.Equal(t, []Record{{120, "a"}}, PercentStage{}.Apply([]Record{{120, "a"}}))
	assert.Equal(t, []Record{{25, "a"}, {75, OtherLabel}}, PercentStage{}.Apply([]Record{{25, "a"}}))
}

func TestGroupStage_Base(t *testing.T) {
	in := func() []Record { return []Record{{30, "a"}, {19, "b"}, {2, "c"}, {49, OtherLabel}} }

	got := GroupStage{Threshold: DefaultGroupThreshold, Base: 51}.Apply(in())
	if diff := cmp.Diff(in(), got); diff != "" {
		t.Errorf("Apply() with base mismatch (-want +got):\n%s", diff)
	}

	got = NewGroupStage(0).Apply(in())
	want := []Record{{30, "a"}, {19, "b"}, {51, OtherLabel}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply() without base mismatch (-want +got):\n%s", diff)
	}
}
