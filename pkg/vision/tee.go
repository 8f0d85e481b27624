package vision

import (
	"errors"
	"time"
)

// TeeDisplay shows every frame on all of its displays.
//
// Keys are polled from the first display with the full timeout, then from
// the rest without waiting; the first real key press wins.
type TeeDisplay []Display

// Tee combines displays. A single display is returned unchanged.
func Tee(displays ...Display) Display {
	if len(displays) == 1 {
		return displays[0]
	}
	return TeeDisplay(displays)
}

func (t TeeDisplay) Show(f Frame) error {
	for _, d := range t {
		if err := d.Show(f); err != nil {
			return err
		}
	}
	return nil
}

func (t TeeDisplay) PollKey(timeout time.Duration) (Key, error) {
	for i, d := range t {
		wait := timeout
		if i > 0 {
			wait = 0
		}
		k, err := d.PollKey(wait)
		if err != nil {
			return NoKey, err
		}
		if k.Pressed() {
			return k, nil
		}
	}
	return NoKey, nil
}

// Close closes every display and joins their errors.
func (t TeeDisplay) Close() error {
	var errs []error
	for _, d := range t {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
