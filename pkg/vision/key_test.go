package vision

import "testing"

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		expect  Key
		wantErr bool
	}{
		{in: "g", expect: Key('g')},
		{in: "q", expect: Key('q')},
		{in: "esc", expect: KeyEscape},
		{in: "escape", expect: KeyEscape},
		{in: "space", expect: KeySpace},
		{in: "enter", expect: KeyEnter},
		{in: "", wantErr: true},
		{in: "gg", wantErr: true},
		{in: " ", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseKey(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseKey(%q): expected error, got %v", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKey(%q): %v", tc.in, err)
			}
			if got != tc.expect {
				t.Errorf("ParseKey(%q): got %d, want %d", tc.in, got, tc.expect)
			}
		})
	}
}

func TestKey_String(t *testing.T) {
	if NoKey.String() != "none" {
		t.Errorf("NoKey: got %q", NoKey.String())
	}
	if KeyOf('g').String() != "g" {
		t.Errorf("g: got %q", KeyOf('g').String())
	}
	if KeyEscape.String() != "esc" {
		t.Errorf("esc: got %q", KeyEscape.String())
	}
	if Key(200).String() != "key(200)" {
		t.Errorf("200: got %q", Key(200).String())
	}
	if NoKey.Pressed() || !KeyOf('x').Pressed() {
		t.Error("Pressed: wrong result")
	}
}
