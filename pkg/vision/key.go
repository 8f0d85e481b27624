package vision

import "fmt"

// Key is a key code as reported by a Display.
type Key int

// NoKey means no key was pressed during the poll window.
const NoKey Key = -1

// Common key codes.
const (
	KeyEnter  Key = 13
	KeyEscape Key = 27
	KeySpace  Key = 32
)

// KeyOf returns the key code for a printable character.
func KeyOf(r rune) Key {
	return Key(r)
}

// Pressed reports whether k is an actual key press.
func (k Key) Pressed() bool {
	return k != NoKey
}

func (k Key) String() string {
	switch {
	case k == NoKey:
		return "none"
	case k == KeyEnter:
		return "enter"
	case k == KeyEscape:
		return "esc"
	case k == KeySpace:
		return "space"
	case k > KeySpace && k < 127:
		return string(rune(k))
	default:
		return fmt.Sprintf("key(%d)", int(k))
	}
}

// ParseKey turns a key name ("g", "esc", "space", "enter") into a Key.
func ParseKey(name string) (Key, error) {
	switch name {
	case "esc", "escape":
		return KeyEscape, nil
	case "space":
		return KeySpace, nil
	case "enter", "return":
		return KeyEnter, nil
	}
	r := []rune(name)
	if len(r) != 1 || r[0] <= ' ' || r[0] >= 127 {
		return NoKey, fmt.Errorf("vision: unknown key %q", name)
	}
	return KeyOf(r[0]), nil
}
