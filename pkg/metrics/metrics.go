// Package metrics counts what the annotation loop does and exposes it to
// Prometheus.
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds loop counters. All fields are safe for concurrent use.
type Metrics struct {
	FramesRead    atomic.Uint64
	CaptureGaps   atomic.Uint64
	FramesShown   atomic.Uint64
	FacesDetected atomic.Uint64
	Toggles       atomic.Uint64
	Errors        atomic.Uint64

	// Duration of the most recent detection pass
	DetectLatencyUs atomic.Uint64

	// 1 while the grayscale toggle is on
	Grayscale atomic.Uint64

	registry *prometheus.Registry
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	FramesRead      uint64  `json:"frames_read"`
	CaptureGaps     uint64  `json:"capture_gaps"`
	FramesShown     uint64  `json:"frames_shown"`
	FacesDetected   uint64  `json:"faces_detected"`
	Toggles         uint64  `json:"toggles"`
	Errors          uint64  `json:"errors"`
	DetectLatencyMs float64 `json:"detect_latency_ms"`
}

// New creates a Metrics instance with its own Prometheus registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}
	m.register()
	return m
}

func (m *Metrics) register() {
	counters := []struct {
		name string
		help string
		v    *atomic.Uint64
	}{
		{"facecam_frames_read_total", "Frames acquired from the capture source", &m.FramesRead},
		{"facecam_capture_gaps_total", "Empty frames that triggered a capture backoff", &m.CaptureGaps},
		{"facecam_frames_shown_total", "Frames handed to the display", &m.FramesShown},
		{"facecam_faces_detected_total", "Face rectangles returned by the detector", &m.FacesDetected},
		{"facecam_grayscale_toggles_total", "Grayscale toggle key presses", &m.Toggles},
		{"facecam_errors_total", "Fatal collaborator failures", &m.Errors},
	}
	for _, c := range counters {
		v := c.v
		m.registry.MustRegister(prometheus.NewCounterFunc(
			prometheus.CounterOpts{Name: c.name, Help: c.help},
			func() float64 { return float64(v.Load()) },
		))
	}

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "facecam_detect_latency_seconds",
			Help: "Duration of the most recent detection pass",
		},
		func() float64 { return float64(m.DetectLatencyUs.Load()) / 1e6 },
	))

	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "facecam_grayscale_mode",
			Help: "1 while frames are displayed in grayscale",
		},
		func() float64 { return float64(m.Grayscale.Load()) },
	))
}

// ObserveDetect records a detection pass.
func (m *Metrics) ObserveDetect(faces int, took time.Duration) {
	m.FacesDetected.Add(uint64(faces))
	m.DetectLatencyUs.Store(uint64(took.Microseconds()))
}

// SetGrayscale records the toggle state.
func (m *Metrics) SetGrayscale(on bool) {
	if on {
		m.Grayscale.Store(1)
	} else {
		m.Grayscale.Store(0)
	}
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		FramesRead:      m.FramesRead.Load(),
		CaptureGaps:     m.CaptureGaps.Load(),
		FramesShown:     m.FramesShown.Load(),
		FacesDetected:   m.FacesDetected.Load(),
		Toggles:         m.Toggles.Load(),
		Errors:          m.Errors.Load(),
		DetectLatencyMs: float64(m.DetectLatencyUs.Load()) / 1e3,
	}
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
