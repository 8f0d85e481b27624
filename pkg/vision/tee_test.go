package vision

import (
	"errors"
	"testing"
	"time"
)

func TestTee_SingleDisplayUnwrapped(t *testing.T) {
	d := &RecordingDisplay{}
	if got := Tee(d); got != Display(d) {
		t.Errorf("Tee with one display should return it unchanged, got %T", got)
	}
}

func TestTee_ShowAndPoll(t *testing.T) {
	first := &RecordingDisplay{}
	second := &RecordingDisplay{Keys: []Key{KeyOf('q')}}
	tee := Tee(first, second)

	if err := tee.Show(NewMockFrame(4, 3)); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if len(first.Shown()) != 1 || len(second.Shown()) != 1 {
		t.Errorf("Show should reach both displays: %d, %d", len(first.Shown()), len(second.Shown()))
	}

	k, err := tee.PollKey(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("PollKey: %v", err)
	}
	if k != KeyOf('q') {
		t.Errorf("PollKey: got %v, want q", k)
	}

	if polls := first.Polls(); len(polls) != 1 || polls[0] != 10*time.Millisecond {
		t.Errorf("first display should get the full timeout, got %v", polls)
	}
	if polls := second.Polls(); len(polls) != 1 || polls[0] != 0 {
		t.Errorf("second display should not wait, got %v", polls)
	}
}

func TestTee_FirstKeyWins(t *testing.T) {
	first := &RecordingDisplay{Keys: []Key{KeyOf('g')}}
	second := &RecordingDisplay{Keys: []Key{KeyOf('q')}}

	k, _ := Tee(first, second).PollKey(time.Millisecond)
	if k != KeyOf('g') {
		t.Errorf("got %v, want g", k)
	}
	if len(second.Polls()) != 0 {
		t.Error("second display should not be polled once a key is found")
	}
}

func TestTee_CloseJoinsErrors(t *testing.T) {
	errA := errors.New("a")
	first := &RecordingDisplay{CloseErr: errA}
	second := &RecordingDisplay{}

	err := Tee(first, second).Close()
	if !errors.Is(err, errA) {
		t.Errorf("Close: got %v, want %v", err, errA)
	}
	if first.Closes() != 1 || second.Closes() != 1 {
		t.Error("Close should reach every display even after an error")
	}
}
