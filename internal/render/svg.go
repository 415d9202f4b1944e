// Package render draws a chart scene as a standalone SVG document.
package render

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/olehluchkiv/svgpie/internal/chart"
	"github.com/olehluchkiv/svgpie/internal/tooltip"
)

const svgNS = "http://www.w3.org/2000/svg"

// Options controls optional SVG decorations.
type Options struct {
	Titles bool   // add a <title> per slice for native hover text
	Stroke string // slice separator color; empty means none
}

// svgDoc is the SVG root element.
type svgDoc struct {
	XMLName xml.Name `xml:"svg"`
	Xmlns   string   `xml:"xmlns,attr"`
	ID      string   `xml:"id,attr,omitempty"`
	Class   string   `xml:"class,attr"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Group   group    `xml:"g"`
}

type group struct {
	Transform string `xml:"transform,attr"`
	Paths     []path `xml:"path"`
	Texts     []text `xml:"text"`
}

type path struct {
	Class  string  `xml:"class,attr"`
	D      string  `xml:"d,attr"`
	Fill   string  `xml:"fill,attr"`
	Stroke string  `xml:"stroke,attr,omitempty"`
	Label  string  `xml:"data-label,attr"`
	State  string  `xml:"data-state,attr"`
	Title  *string `xml:"title"`
}

type text struct {
	Class  string `xml:"class,attr"`
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Anchor string `xml:"text-anchor,attr"`
	Base   string `xml:"dominant-baseline,attr"`
	Value  string `xml:",chardata"`
}

// Write encodes scene as an SVG document.
func Write(w io.Writer, scene chart.Scene, opts Options) error {
	doc := build(scene, opts)
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing svg header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding svg: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("flushing svg: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// String renders scene and returns the document, without the XML header.
func String(scene chart.Scene, opts Options) (string, error) {
	out, err := xml.MarshalIndent(build(scene, opts), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding svg: %w", err)
	}
	return string(out), nil
}

func build(scene chart.Scene, opts Options) svgDoc {
	cx, cy := scene.Size.Width/2, scene.Size.Height/2
	doc := svgDoc{
		Xmlns:   svgNS,
		ID:      elementID(scene.Selector),
		Class:   "svgpie",
		Width:   num(scene.Size.Width),
		Height:  num(scene.Size.Height),
		ViewBox: fmt.Sprintf("0 0 %s %s", num(scene.Size.Width), num(scene.Size.Height)),
		Group: group{
			Transform: fmt.Sprintf("translate(%s,%s)", num(cx), num(cy)),
		},
	}

	for _, s := range scene.Segments {
		d := ArcPath(s.Radii, s.Angles)
		if d == "" {
			continue
		}
		p := path{
			Class:  sliceClass(s),
			D:      d,
			Fill:   s.Color,
			Stroke: opts.Stroke,
			Label:  s.Label,
			State:  s.State,
		}
		if opts.Titles {
			title := s.Label + ": " + tooltip.FormatValue(s.Value, scene.Percents)
			p.Title = &title
		}
		doc.Group.Paths = append(doc.Group.Paths, p)

		if scene.ShowLabels {
			doc.Group.Texts = append(doc.Group.Texts, text{
				Class:  "slice-label",
				X:      num(s.CentroidX),
				Y:      num(s.CentroidY),
				Anchor: "middle",
				Base:   "middle",
				Value:  s.Label,
			})
		}
	}

	if scene.ShowTotal && len(scene.Segments) > 0 {
		doc.Group.Texts = append(doc.Group.Texts, text{
			Class:  "total",
			X:      "0",
			Y:      "0",
			Anchor: "middle",
			Base:   "middle",
			Value:  tooltip.FormatValue(scene.Total, scene.Percents),
		})
	}
	return doc
}

func sliceClass(s chart.Segment) string {
	if s.Other {
		return "slice slice-other"
	}
	return "slice"
}

// elementID turns a "#id" selector into an element id. Other selectors
// carry no id.
func elementID(selector string) string {
	id, ok := strings.CutPrefix(selector, "#")
	if !ok || strings.ContainsAny(id, " .#[>:") {
		return ""
	}
	return id
}
