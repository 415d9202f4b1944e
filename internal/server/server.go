package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/olehluchkiv/svgpie/internal/chart"
	"github.com/olehluchkiv/svgpie/internal/dataset"
	"github.com/olehluchkiv/svgpie/internal/geometry"
	"github.com/olehluchkiv/svgpie/internal/render"
	"github.com/olehluchkiv/svgpie/internal/report"
	"github.com/olehluchkiv/svgpie/internal/tooltip"
)

// maxBody caps request bodies.
const maxBody = 1 << 20

// animatingHeader tells the page whether to keep polling for frames.
const animatingHeader = "X-Svgpie-Animating"

// Server exposes one chart over HTTP. The chart itself is single-owner, so
// every handler holds mu while touching it.
type Server struct {
	mu     sync.Mutex
	chart  *chart.Chart
	opts   render.Options
	tmpl   *template.Template
	logger *slog.Logger
}

// New wraps c for serving.
func New(c *chart.Chart, opts render.Options, logger *slog.Logger) (*Server, error) {
	tmpl, err := template.New("chart").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML template: %w", err)
	}
	return &Server{
		chart:  c,
		opts:   opts,
		tmpl:   tmpl,
		logger: logger.With("component", "server"),
	}, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /chart.svg", s.handleSVG)
	mux.HandleFunc("GET /report.txt", s.handleReport)
	mux.HandleFunc("GET /api/segments", s.handleSegments)
	mux.HandleFunc("POST /api/data", s.handleData)
	mux.HandleFunc("POST /api/pointer", s.handlePointer)
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request received", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// frame resizes the chart when the request carries a size and returns the
// current scene.
func (s *Server) frame(r *http.Request) (chart.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.URL.Query().Has("width") {
		width, err := strconv.ParseFloat(r.URL.Query().Get("width"), 64)
		if err != nil || width <= 0 {
			return chart.Scene{}, fmt.Errorf("invalid width %q", r.URL.Query().Get("width"))
		}
		var height float64
		if h := r.URL.Query().Get("height"); h != "" {
			height, err = strconv.ParseFloat(h, 64)
			if err != nil || height < 0 {
				return chart.Scene{}, fmt.Errorf("invalid height %q", h)
			}
		}
		size := geometry.ContainerSize(width, height)
		size.Padding = s.chart.Size().Padding
		s.chart.Resize(size)
	}
	return s.chart.Frame(), nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	scene, err := s.frame(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	svg, err := render.String(scene, s.opts)
	if err != nil {
		s.logger.Error("failed to render svg", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := struct {
		Selector string
		SVG      template.HTML
		Tooltip  bool
	}{
		Selector: scene.Selector,
		SVG:      template.HTML(svg),
		Tooltip:  s.chart.Config().ShowTooltip,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render template", "error", err)
	}
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	scene, err := s.frame(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	if err := render.Write(&buf, scene, s.opts); err != nil {
		s.logger.Error("failed to render svg", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(animatingHeader, strconv.FormatBool(scene.Animating))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	scene, err := s.frame(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := report.Write(w, scene); err != nil {
		s.logger.Error("failed to write report", "error", err)
	}
}

func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	scene, err := s.frame(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, scene)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("reading body: %w", err))
		return
	}
	p, err := dataset.DecodePayload(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	err = s.chart.Update(p)
	scene := s.chart.Frame()
	s.mu.Unlock()

	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dataset.ErrNoData) || errors.Is(err, dataset.ErrInvalidValue) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, err)
		return
	}
	s.logger.Info("dataset updated", "segments", len(scene.Segments))
	s.writeJSON(w, http.StatusOK, scene)
}

// pointerEvent is the body of POST /api/pointer.
type pointerEvent struct {
	Event   string      `json:"event"` // enter, move or leave
	Label   string      `json:"label"`
	X       float64     `json:"x"`
	Y       float64     `json:"y"`
	Box     tooltip.Box `json:"box"`
	Padding float64     `json:"padding"`
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	var ev pointerEvent
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&ev); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decoding pointer event: %w", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch ev.Event {
	case "enter":
		s.chart.PointerEnter(ev.Label)
	case "move":
		s.chart.PointerMove(tooltip.Point{X: ev.X, Y: ev.Y}, ev.Box, ev.Padding)
	case "leave":
		s.chart.PointerLeave()
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown pointer event %q", ev.Event))
		return
	}
	s.writeJSON(w, http.StatusOK, s.chart.Tooltip())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("request failed", "status", status, "error", err)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Serve listens on port until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, s *Server, port int, openBrowser bool, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	url := fmt.Sprintf("http://localhost:%d", port)
	logger.Info("starting HTTP server", "addr", url)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown error: %w", err)
		}
		return nil
	})

	if openBrowser {
		openInBrowser(url, logger)
	}
	return g.Wait()
}

// openInBrowser opens the given URL in the default system browser.
func openInBrowser(url string, logger *slog.Logger) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		logger.Warn("unsupported platform for opening browser", "os", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		logger.Warn("failed to open browser", "error", err)
	}
}
