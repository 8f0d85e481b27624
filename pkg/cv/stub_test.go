//go:build nocv

package cv

import (
	"errors"
	"testing"
)

func TestStubUnavailable(t *testing.T) {
	if Available {
		t.Fatal("nocv build reports OpenCV as available")
	}
	if _, err := OpenCamera("0", nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("OpenCamera: got %v", err)
	}
	if _, err := NewCascade("face.xml"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewCascade: got %v", err)
	}
	if _, err := NewWindow("preview"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewWindow: got %v", err)
	}
	if _, err := NewLoader().Load("a.jpg", false); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Load: got %v", err)
	}
}
