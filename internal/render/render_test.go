package render

import (
	"bytes"
	"encoding/xml"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/svgpie/internal/chart"
	"github.com/olehluchkiv/svgpie/internal/geometry"
)

func TestArcPath(t *testing.T) {
	tests := []struct {
		name   string
		radii  geometry.Radii
		angles geometry.Angles
		want   string
	}{
		{
			"quarter wedge",
			geometry.Radii{Outer: 100},
			geometry.Angles{Start: 0, End: math.Pi / 2},
			"M0,-100A100,100,0,0,1,100,0L0,0Z",
		},
		{
			"half donut",
			geometry.Radii{Inner: 50, Outer: 100},
			geometry.Angles{Start: 0, End: math.Pi},
			"M0,-100A100,100,0,0,1,0,100L0,50A50,50,0,0,0,0,-50Z",
		},
		{
			"large arc flag",
			geometry.Radii{Outer: 10},
			geometry.Angles{Start: 0, End: 3 * math.Pi / 2},
			"M0,-10A10,10,0,1,1,-10,0L0,0Z",
		},
		{
			"full circle",
			geometry.Radii{Outer: 10},
			geometry.Angles{Start: 0, End: geometry.FullCircle},
			"M0,-10A10,10,0,1,1,0,10A10,10,0,1,1,0,-10Z",
		},
		{
			"full ring",
			geometry.Radii{Inner: 5, Outer: 10},
			geometry.Angles{Start: 0, End: geometry.FullCircle},
			"M0,-10A10,10,0,1,1,0,10A10,10,0,1,1,0,-10ZM0,-5A5,5,0,1,0,0,5A5,5,0,1,0,0,-5Z",
		},
		{
			"empty span",
			geometry.Radii{Outer: 10},
			geometry.Angles{Start: 1, End: 1},
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ArcPath(tt.radii, tt.angles))
		})
	}
}

func TestNum(t *testing.T) {
	assert.Equal(t, "0", num(-0.0001))
	assert.Equal(t, "12.5", num(12.5))
	assert.Equal(t, "3.142", num(math.Pi))
	assert.Equal(t, "100", num(100))
}

func testScene() chart.Scene {
	return chart.Scene{
		Selector: "#pie",
		Size:     geometry.Size{Width: 200, Height: 100},
		Segments: []chart.Segment{
			{
				Label:  "Go & friends",
				Value:  60,
				Color:  "#1f77b4",
				Angles: geometry.Angles{Start: 0, End: math.Pi},
				Radii:  geometry.Radii{Inner: 25, Outer: 50},
				State:  "steady",
			},
			{
				Label:  "Other",
				Value:  40,
				Color:  "#ff7f0e",
				Angles: geometry.Angles{Start: math.Pi, End: geometry.FullCircle},
				Radii:  geometry.Radii{Inner: 25, Outer: 50},
				State:  "steady",
				Other:  true,
			},
			{
				Label:  "collapsed",
				Color:  "#000000",
				Angles: geometry.Angles{Start: geometry.FullCircle, End: geometry.FullCircle},
				Radii:  geometry.Radii{Inner: 25, Outer: 50},
			},
		},
		Total:      100,
		Percents:   true,
		ShowLabels: true,
		ShowTotal:  true,
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testScene(), Options{Titles: true, Stroke: "#fff"}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Contains(t, out, `id="pie"`)
	assert.Contains(t, out, `viewBox="0 0 200 100"`)
	assert.Contains(t, out, `transform="translate(100,50)"`)
	assert.Contains(t, out, `data-label="Go &amp; friends"`)
	assert.Contains(t, out, `class="slice slice-other"`)
	assert.Contains(t, out, `<title>Go &amp; friends: 60%</title>`)
	assert.Contains(t, out, `<text class="total"`)
	assert.Contains(t, out, `>100%</text>`)
	assert.NotContains(t, out, `data-label="collapsed"`, "empty slices are not drawn")

	var doc struct {
		Paths []struct {
			D string `xml:"d,attr"`
		} `xml:"g>path"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.Paths, 2)
}

func TestString_NoDecorations(t *testing.T) {
	scene := testScene()
	scene.ShowLabels = false
	scene.ShowTotal = false

	out, err := String(scene, Options{})
	require.NoError(t, err)
	assert.NotContains(t, out, "<text")
	assert.NotContains(t, out, "<title>")
	assert.NotContains(t, out, "stroke=")
}

func TestElementID(t *testing.T) {
	assert.Equal(t, "pie", elementID("#pie"))
	assert.Equal(t, "", elementID(".pie"))
	assert.Equal(t, "", elementID("#a .b"))
}
