package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/svgpie/internal/chart"
	"github.com/olehluchkiv/svgpie/internal/config"
	"github.com/olehluchkiv/svgpie/internal/render"
	"github.com/olehluchkiv/svgpie/internal/tooltip"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, opts ...config.Option) *httptest.Server {
	t.Helper()
	cfg := config.New(append([]config.Option{config.WithTransition(0)}, opts...)...)
	c, err := chart.New("#pie", cfg, testLogger())
	require.NoError(t, err)
	s, err := New(c, render.Options{Titles: true}, testLogger())
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestData_UpdatesChart(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/api/data", `[{"value": 30, "label": "a"}, {"value": 70, "label": "b"}]`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	scene := decode[chart.Scene](t, resp)
	require.Len(t, scene.Segments, 2)
	assert.Equal(t, "a", scene.Segments[0].Label)
	assert.InDelta(t, 100, scene.Total, 1e-9)

	resp = get(t, ts.URL+"/api/segments")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	scene = decode[chart.Scene](t, resp)
	assert.Len(t, scene.Segments, 2)
	assert.Equal(t, "#pie", scene.Selector)
}

func TestData_ScalarPayload(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/api/data", `25`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	scene := decode[chart.Scene](t, resp)
	require.Len(t, scene.Segments, 2)
	assert.True(t, scene.Segments[1].Other)
	assert.InDelta(t, 75, scene.Segments[1].Value, 1e-9)
}

func TestData_RejectsBadPayloads(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusOK, post(t, ts.URL+"/api/data", `{"values": [1, 2]}`).StatusCode)

	for name, body := range map[string]string{
		"empty":    ``,
		"null":     `null`,
		"no rows":  `[]`,
		"negative": `[{"value": -1, "label": "a"}]`,
		"garbage":  `{"values": "x"`,
	} {
		t.Run(name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/data", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, decode[map[string]string](t, resp)["error"])
		})
	}

	// The last good dataset survives rejected updates.
	scene := decode[chart.Scene](t, get(t, ts.URL+"/api/segments"))
	assert.Len(t, scene.Segments, 2)
}

func TestSVG(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts.URL+"/api/data", `{"values": [1, 3], "labels": ["x", "y"]}`)

	resp := get(t, ts.URL+"/chart.svg?width=300")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "false", resp.Header.Get(animatingHeader))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `width="300"`)
	assert.Contains(t, string(body), `data-label="x"`)
	assert.Contains(t, string(body), `data-label="y"`)
}

func TestSVG_InvalidSize(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, get(t, ts.URL+"/chart.svg?width=abc").StatusCode)
	assert.Equal(t, http.StatusBadRequest, get(t, ts.URL+"/chart.svg?width=0").StatusCode)
	assert.Equal(t, http.StatusBadRequest, get(t, ts.URL+"/chart.svg?width=100&height=-1").StatusCode)
}

func TestSVG_ResizeKeepsDataset(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts.URL+"/api/data", `[{"value": 1, "label": "a"}, {"value": 1, "label": "b"}]`)

	get(t, ts.URL+"/chart.svg?width=200&height=100")
	scene := decode[chart.Scene](t, get(t, ts.URL+"/api/segments"))
	require.Len(t, scene.Segments, 2)
	assert.InDelta(t, 50, scene.Segments[0].Radii.Outer, 1e-9)
	assert.InDelta(t, 200, scene.Size.Width, 1e-9)
}

func TestPointer(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts.URL+"/api/data", `[{"value": 30, "label": "a"}, {"value": 70, "label": "b"}]`)

	tt := decode[tooltip.Tooltip](t, post(t, ts.URL+"/api/pointer", `{"event": "enter", "label": "a"}`))
	assert.True(t, tt.Visible)
	assert.Equal(t, "a", tt.Label)
	assert.Equal(t, "30", tt.Text)

	tt = decode[tooltip.Tooltip](t, post(t, ts.URL+"/api/pointer",
		`{"event": "move", "x": 50, "y": 60, "box": {"width": 40, "height": 20}, "padding": 5}`))
	assert.True(t, tt.Visible)
	assert.InDelta(t, 50+tooltip.Margin, tt.Left, 1e-9)
	assert.InDelta(t, 60+tooltip.Margin, tt.Top, 1e-9)

	tt = decode[tooltip.Tooltip](t, post(t, ts.URL+"/api/pointer", `{"event": "leave"}`))
	assert.False(t, tt.Visible)
}

func TestPointer_UnknownSlice(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts.URL+"/api/data", `[{"value": 1, "label": "a"}]`)

	tt := decode[tooltip.Tooltip](t, post(t, ts.URL+"/api/pointer", `{"event": "enter", "label": "zzz"}`))
	assert.False(t, tt.Visible)
}

func TestPointer_BadEvent(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, post(t, ts.URL+"/api/pointer", `{"event": "click"}`).StatusCode)
	assert.Equal(t, http.StatusBadRequest, post(t, ts.URL+"/api/pointer", `not json`).StatusCode)
}

func TestPage(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts.URL+"/api/data", `[{"value": 1, "label": "<b>"}]`)

	resp := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, "<svg")
	assert.Contains(t, page, `id="tooltip"`)
	assert.Contains(t, page, `data-label="&lt;b&gt;"`)
	assert.NotContains(t, page, `data-label="<b>"`)
}

func TestPage_NoTooltip(t *testing.T) {
	ts := newTestServer(t, config.WithTooltip(false))
	body, err := io.ReadAll(get(t, ts.URL+"/").Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), `id="tooltip"`)
}

func TestReport(t *testing.T) {
	ts := newTestServer(t)
	post(t, ts.URL+"/api/data", `[{"value": 1, "label": "alpha"}, {"value": 3, "label": "beta"}]`)

	resp := get(t, ts.URL+"/report.txt")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "alpha")
	assert.Contains(t, string(body), "beta")
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusMethodNotAllowed, get(t, ts.URL+"/api/data").StatusCode)
	assert.Equal(t, http.StatusNotFound, get(t, ts.URL+"/nope").StatusCode)
}
