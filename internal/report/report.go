// Package report prints a chart scene as a text table.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/olehluchkiv/svgpie/internal/chart"
	"github.com/olehluchkiv/svgpie/internal/tooltip"
)

// Header lists the table columns.
var Header = []string{"Label", "Value", "Share", "Start", "End", "Color", "State"}

// Rows returns one row per segment. Angles are in degrees and the share is
// relative to the sum of all segment values.
func Rows(scene chart.Scene) [][]string {
	var sum float64
	for _, s := range scene.Segments {
		sum += s.Value
	}
	rows := make([][]string, 0, len(scene.Segments))
	for _, s := range scene.Segments {
		share := 0.0
		if sum > 0 {
			share = s.Value / sum * 100
		}
		rows = append(rows, []string{
			s.Label,
			tooltip.FormatValue(s.Value, scene.Percents),
			strconv.FormatFloat(share, 'f', 1, 64) + "%",
			degrees(s.Angles.Start),
			degrees(s.Angles.End),
			s.Color,
			s.State,
		})
	}
	return rows
}

// Write renders the segment table of scene to w.
func Write(w io.Writer, scene chart.Scene) error {
	table := tablewriter.NewTable(w)
	table.Header(Header)
	if err := table.Bulk(Rows(scene)); err != nil {
		return fmt.Errorf("failed to add rows to table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

func degrees(rad float64) string {
	return strconv.FormatFloat(rad*180/math.Pi, 'f', 1, 64)
}
