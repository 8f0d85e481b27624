package web

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/teslashibe/go-facecam/pkg/vision"
)

// RemoteConfig configures a RemoteSource.
type RemoteConfig struct {
	URL         string        `yaml:"url" json:"url"` // e.g. ws://host:8080/ws/camera
	ReadTimeout time.Duration `yaml:"read_timeout" json:"read_timeout"`
}

// RemoteSource reads JPEG frames from another instance's /ws/camera feed.
type RemoteSource struct {
	cfg    RemoteConfig
	conn   *websocket.Conn
	loader vision.Loader
	logger *slog.Logger

	mu      sync.Mutex
	pending vision.Frame
	props   vision.Properties
	closed  bool
}

// DialRemote connects to cfg.URL and waits for the first frame to learn
// the resolution.
func DialRemote(ctx context.Context, cfg RemoteConfig, loader vision.Loader, logger *slog.Logger) (*RemoteSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 10 * time.Second
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.URL, err)
	}

	r := &RemoteSource{cfg: cfg, conn: conn, loader: loader, logger: logger}
	first, err := r.next()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("first frame from %s: %w", cfg.URL, err)
	}
	if vision.IsEmpty(first) {
		first.Close()
		conn.Close()
		return nil, fmt.Errorf("first frame from %s: %w", cfg.URL, vision.ErrEmptyImage)
	}

	sz := first.Size()
	r.pending = first
	r.props = vision.Properties{Width: sz.X, Height: sz.Y}
	logger.Info("remote source connected", "url", cfg.URL, "width", sz.X, "height", sz.Y)
	return r, nil
}

// Read returns the next frame. A frame that fails to decode comes back
// empty so the loop treats it as a capture gap. A normal close from the
// sender ends the stream with io.EOF.
func (r *RemoteSource) Read() (vision.Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, vision.ErrClosed
	}
	if f := r.pending; f != nil {
		r.pending = nil
		return f, nil
	}
	return r.next()
}

func (r *RemoteSource) next() (vision.Frame, error) {
	for {
		r.conn.SetReadDeadline(time.Now().Add(r.cfg.ReadTimeout))
		typ, data, err := r.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read remote frame: %w", err)
		}
		if typ != websocket.BinaryMessage {
			continue
		}

		f, err := r.loader.Decode(data)
		if err != nil {
			r.logger.Warn("undecodable remote frame", "bytes", len(data), "err", err)
			return emptyFrame{}, nil
		}
		return f, nil
	}
}

func (r *RemoteSource) Properties() vision.Properties {
	return r.props
}

// Close says goodbye to the sender and drops the connection.
func (r *RemoteSource) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if r.pending != nil {
		r.pending.Close()
		r.pending = nil
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := r.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		r.logger.Debug("remote close handshake failed", "err", err)
	}
	return r.conn.Close()
}

type emptyFrame struct{}

func (emptyFrame) Size() image.Point { return image.Point{} }
func (emptyFrame) Channels() int     { return 0 }
func (emptyFrame) Empty() bool       { return true }
func (emptyFrame) Close() error      { return nil }
