package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEnv(t *testing.T) {
	t.Setenv("FACECAM_DEVICE", "")
	t.Setenv("FACECAM_WEB_PORT", "")
	if Device() != DefaultDevice {
		t.Errorf("Device default: %q", Device())
	}
	if WebAddr() != "" {
		t.Errorf("WebAddr default: %q", WebAddr())
	}

	t.Setenv("FACECAM_DEVICE", "/dev/video2")
	t.Setenv("FACECAM_CASCADE", "/opt/cascades/face.xml")
	t.Setenv("FACECAM_WEB_PORT", "9090")
	t.Setenv("FACECAM_LOG_LEVEL", "debug")
	if Device() != "/dev/video2" || Cascade() != "/opt/cascades/face.xml" {
		t.Errorf("overrides: %q %q", Device(), Cascade())
	}
	if WebAddr() != ":9090" || LogLevel() != "debug" {
		t.Errorf("overrides: %q %q", WebAddr(), LogLevel())
	}
	if PigoCascade() != DefaultPigoCascade {
		t.Errorf("PigoCascade: %q", PigoCascade())
	}
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Annotate.DetectionScale != 0.25 || f.Web.JPEGQuality != 80 || f.Pigo.MaxSize != 1000 {
		t.Errorf("defaults not applied: %+v", f)
	}
}

func TestParse_PigoCascadePath(t *testing.T) {
	f, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Pigo.CascadePath != DefaultPigoCascade {
		t.Errorf("default cascade: %q", f.Pigo.CascadePath)
	}

	f, err = Parse([]byte("pigo:\n  cascade_path: /opt/pigo/facefinder\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Pigo.CascadePath != "/opt/pigo/facefinder" || f.Pigo.MaxSize != 1000 {
		t.Errorf("pigo: %+v", f.Pigo)
	}
}

func TestIsSet(t *testing.T) {
	t.Setenv(EnvPigoCascade, "")
	if IsSet(EnvPigoCascade) {
		t.Error("empty variable reported as set")
	}
	t.Setenv(EnvPigoCascade, "/tmp/facefinder")
	if !IsSet(EnvPigoCascade) || PigoCascade() != "/tmp/facefinder" {
		t.Errorf("set variable: %q", PigoCascade())
	}
}

func TestParse_Overrides(t *testing.T) {
	data := []byte(`
annotate:
  detection_scale: 0.5
  capture_backoff: 2s
  toggle_key: t
  tips: ["Press 't' to toggle grayscale mode"]
  face_color: {r: 0, g: 0, b: 255, a: 255}
web:
  addr: ":9000"
  jpeg_quality: 60
viewer:
  wait: 3s
`)
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a := f.Annotate
	if a.DetectionScale != 0.5 || a.CaptureBackoff != 2*time.Second || a.ToggleKey != "t" {
		t.Errorf("annotate: %+v", a)
	}
	if len(a.Tips) != 1 || a.FaceColor.B != 255 || a.FaceColor.R != 0 {
		t.Errorf("tips/color: %q %v", a.Tips, a.FaceColor)
	}
	if a.MinFaceSize != 30 {
		t.Errorf("untouched key lost its default: %d", a.MinFaceSize)
	}
	if f.Web.Addr != ":9000" || f.Web.JPEGQuality != 60 || f.Web.KeyBuffer != 8 {
		t.Errorf("web: %+v", f.Web)
	}
	if f.Viewer.Wait != 3*time.Second || f.Viewer.WindowName != "Image Preview" {
		t.Errorf("viewer: %+v", f.Viewer)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "unknown key", data: "annotate:\n  detection_scael: 0.5\n", want: "detection_scael"},
		{name: "invalid annotate", data: "annotate:\n  detection_scale: 3\n", want: "annotate"},
		{name: "invalid web", data: "web:\n  jpeg_quality: 0\n", want: "web"},
		{name: "malformed", data: "annotate: [", want: "parse config"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("got %v, want error mentioning %q", err, tc.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facecam.yaml")
	if err := os.WriteFile(path, []byte("annotate:\n  info_panel: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Annotate.InfoPanel {
		t.Error("info_panel override ignored")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
