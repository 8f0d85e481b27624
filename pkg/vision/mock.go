package vision

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"
	"time"
)

// MockFrame is a pixel-less frame for tests.
type MockFrame struct {
	W, H   int
	Ch     int
	Closes int
}

// NewMockFrame returns a 3-channel mock frame.
func NewMockFrame(w, h int) *MockFrame {
	return &MockFrame{W: w, H: h, Ch: 3}
}

func (f *MockFrame) Size() image.Point { return image.Pt(f.W, f.H) }
func (f *MockFrame) Channels() int     { return f.Ch }
func (f *MockFrame) Empty() bool       { return f.W == 0 || f.H == 0 }
func (f *MockFrame) Dims() int         { return 2 }

func (f *MockFrame) Close() error {
	f.Closes++
	return nil
}

// ScriptedSource replays a fixed list of frames. A nil entry is delivered as
// an empty frame. After the script ends Read returns Err, or io.EOF.
type ScriptedSource struct {
	Frames   []Frame
	Props    Properties
	Err      error
	CloseErr error

	mu     sync.Mutex
	reads  int
	closes int
}

func (s *ScriptedSource) Read() (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reads >= len(s.Frames) {
		if s.Err != nil {
			return nil, s.Err
		}
		return nil, io.EOF
	}
	f := s.Frames[s.reads]
	s.reads++
	if f == nil {
		return &MockFrame{}, nil
	}
	return f, nil
}

func (s *ScriptedSource) Properties() Properties { return s.Props }

func (s *ScriptedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return s.CloseErr
}

// Reads returns how many times Read was called successfully.
func (s *ScriptedSource) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// Closes returns how many times Close was called.
func (s *ScriptedSource) Closes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

// Shot records a frame handed to a display or detector.
type Shot struct {
	Size     image.Point
	Channels int
}

func shotOf(f Frame) Shot {
	return Shot{Size: f.Size(), Channels: f.Channels()}
}

// StubDetector returns Rects for every call and records its inputs.
type StubDetector struct {
	Rects []image.Rectangle
	Err   error

	mu     sync.Mutex
	inputs []Shot
	params []DetectParams
	closes int
}

func (d *StubDetector) Detect(f Frame, p DetectParams) ([]image.Rectangle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inputs = append(d.inputs, shotOf(f))
	d.params = append(d.params, p)
	if d.Err != nil {
		return nil, d.Err
	}
	return append([]image.Rectangle(nil), d.Rects...), nil
}

func (d *StubDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closes++
	return nil
}

// Inputs returns the frames Detect was called with.
func (d *StubDetector) Inputs() []Shot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Shot(nil), d.inputs...)
}

// Params returns the parameters Detect was called with.
func (d *StubDetector) Params() []DetectParams {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DetectParams(nil), d.params...)
}

// Calls returns how many times Detect ran.
func (d *StubDetector) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.inputs)
}

// RecordingDisplay records shown frames and replays scripted keys. Once the
// script is exhausted PollKey returns NoKey.
type RecordingDisplay struct {
	Keys     []Key
	ShowErr  error
	CloseErr error

	mu     sync.Mutex
	shown  []Shot
	polls  []time.Duration
	closes int
}

func (d *RecordingDisplay) Show(f Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ShowErr != nil {
		return d.ShowErr
	}
	d.shown = append(d.shown, shotOf(f))
	return nil
}

func (d *RecordingDisplay) PollKey(timeout time.Duration) (Key, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.polls = append(d.polls, timeout)
	if len(d.Keys) == 0 {
		return NoKey, nil
	}
	k := d.Keys[0]
	d.Keys = d.Keys[1:]
	return k, nil
}

func (d *RecordingDisplay) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closes++
	return d.CloseErr
}

// Shown returns the frames passed to Show.
func (d *RecordingDisplay) Shown() []Shot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Shot(nil), d.shown...)
}

// Polls returns the timeouts PollKey was called with.
func (d *RecordingDisplay) Polls() []time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]time.Duration(nil), d.polls...)
}

// Closes returns how many times Close was called.
func (d *RecordingDisplay) Closes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closes
}

// PlacedText is a PutText call seen by MockRenderer.
type PlacedText struct {
	Text   string
	Origin image.Point
	Style  TextStyle
	Target Shot
}

// DrawnRect is a Rectangle or BlendRect call seen by MockRenderer.
type DrawnRect struct {
	Rect      image.Rectangle
	Color     color.RGBA
	Thickness int
	Keep      float64
	Target    Shot
}

// MockRenderer records drawing calls. Text is measured as 10px per rune and
// LineHeight (default 20) tall.
type MockRenderer struct {
	LineHeight func(text string) int
	Err        error

	mu     sync.Mutex
	ops    []string
	texts  []PlacedText
	rects  []DrawnRect
	blends []DrawnRect
}

func (r *MockRenderer) record(op string) error {
	r.ops = append(r.ops, op)
	return r.Err
}

func (r *MockRenderer) TextSize(text string, style TextStyle) (image.Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := 20
	if r.LineHeight != nil {
		h = r.LineHeight(text)
	}
	return image.Pt(10*len([]rune(text)), h), r.Err
}

func (r *MockRenderer) PutText(f Frame, text string, org image.Point, style TextStyle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, PlacedText{Text: text, Origin: org, Style: style, Target: shotOf(f)})
	return r.record("text")
}

func (r *MockRenderer) Rectangle(f Frame, rect image.Rectangle, c color.RGBA, thickness int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rects = append(r.rects, DrawnRect{Rect: rect, Color: c, Thickness: thickness, Target: shotOf(f)})
	return r.record("rect")
}

func (r *MockRenderer) BlendRect(f Frame, rect image.Rectangle, c color.RGBA, keep float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blends = append(r.blends, DrawnRect{Rect: rect, Color: c, Keep: keep, Target: shotOf(f)})
	return r.record("blend")
}

func (r *MockRenderer) Grayscale(f Frame) (Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("gray"); err != nil {
		return nil, err
	}
	sz := f.Size()
	return &MockFrame{W: sz.X, H: sz.Y, Ch: 1}, nil
}

func (r *MockRenderer) Resize(f Frame, fx, fy float64) (Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("resize"); err != nil {
		return nil, err
	}
	sz := f.Size()
	return &MockFrame{
		W:  int(math.Round(float64(sz.X) * fx)),
		H:  int(math.Round(float64(sz.Y) * fy)),
		Ch: f.Channels(),
	}, nil
}

func (r *MockRenderer) EncodeJPEG(f Frame, quality int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.record("jpeg"); err != nil {
		return nil, err
	}
	sz := f.Size()
	return []byte(fmt.Sprintf("jpeg %dx%dx%d q%d", sz.X, sz.Y, f.Channels(), quality)), nil
}

// Ops returns the drawing operations in call order.
func (r *MockRenderer) Ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

// Texts returns the PutText calls.
func (r *MockRenderer) Texts() []PlacedText {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]PlacedText(nil), r.texts...)
}

// Rects returns the Rectangle calls.
func (r *MockRenderer) Rects() []DrawnRect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DrawnRect(nil), r.rects...)
}

// Blends returns the BlendRect calls.
func (r *MockRenderer) Blends() []DrawnRect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]DrawnRect(nil), r.blends...)
}

// MockLoader hands out mock frames of a fixed size.
type MockLoader struct {
	W, H  int
	Err   error
	Paths []string
}

func (l *MockLoader) Load(path string, gray bool) (Frame, error) {
	l.Paths = append(l.Paths, path)
	if l.Err != nil {
		return nil, l.Err
	}
	ch := 3
	if gray {
		ch = 1
	}
	return &MockFrame{W: l.W, H: l.H, Ch: ch}, nil
}

func (l *MockLoader) Decode(data []byte) (Frame, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	return NewMockFrame(l.W, l.H), nil
}
