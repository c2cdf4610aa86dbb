package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		k    Key
		want string
	}{
		{KeyNotDefined, "NotDefined"},
		{KeyEscape, "Escape"},
		{KeyControlC, "Ctrl-C"},
		{KeyControlUnderscore, "Ctrl-_"},
		{KeyUp, "Up"},
		{KeyShiftLeft, "Shift-Left"},
		{KeyControlDelete, "Ctrl-Delete"},
		{KeyBackTab, "BackTab"},
		{KeyF1, "F1"},
		{KeyF24, "F24"},
		{KeyBracketedPaste, "BracketedPaste"},
		{KeyIgnore, "Ignore"},
		{Key(9999), "Key(9999)"},
	}

	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Key(%d).String() = %q, want %q", uint16(tt.k), got, tt.want)
		}
	}
}

func TestZeroValueIsNotDefined(t *testing.T) {
	var k Key
	if k != KeyNotDefined {
		t.Errorf("zero Key = %v, want NotDefined", k)
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
		ok   bool
	}{
		{"Up", KeyUp, true},
		{"up", KeyUp, true},
		{"CTRL-C", KeyControlC, true},
		{"ctrl-c", KeyControlC, true},
		{"  Enter  ", KeyEnter, true},
		{"esc", KeyEscape, true},
		{"return", KeyEnter, true},
		{"cr", KeyEnter, true},
		{"bs", KeyBackspace, true},
		{"del", KeyDelete, true},
		{"ins", KeyInsert, true},
		{"pgup", KeyPageUp, true},
		{"pgdn", KeyPageDown, true},
		{"shift-tab", KeyBackTab, true},
		{"f12", KeyF12, true},
		{"any", KeyAny, true},
		{"bogus", KeyNotDefined, false},
		{"", KeyNotDefined, false},
	}

	for _, tt := range tests {
		got, ok := FromName(tt.name)
		if ok != tt.ok {
			t.Errorf("FromName(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("FromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFromNameRoundTrip(t *testing.T) {
	for k, name := range keyNames {
		got, ok := FromName(name)
		if !ok {
			t.Errorf("FromName(%q) not recognized", name)
			continue
		}
		if got != k {
			t.Errorf("FromName(%q) = %v, want %v", name, got, k)
		}
	}
}

func TestIsControl(t *testing.T) {
	for _, k := range []Key{KeyControlA, KeyControlZ, KeyControlSpace, KeyControlUnderscore, KeyEscape} {
		if !k.IsControl() {
			t.Errorf("%v.IsControl() = false, want true", k)
		}
	}
	for _, k := range []Key{KeyUp, KeyF1, KeyNotDefined, KeyTab, KeyBracketedPaste} {
		if k.IsControl() {
			t.Errorf("%v.IsControl() = true, want false", k)
		}
	}
}

func TestIsFunctionKey(t *testing.T) {
	for k := KeyF1; k <= KeyF24; k++ {
		if !k.IsFunctionKey() {
			t.Errorf("%v.IsFunctionKey() = false, want true", k)
		}
	}
	for _, k := range []Key{KeyUp, KeyEscape, KeyAny, KeyEnter} {
		if k.IsFunctionKey() {
			t.Errorf("%v.IsFunctionKey() = true, want false", k)
		}
	}
}

func TestIsArrowKey(t *testing.T) {
	for _, k := range []Key{KeyUp, KeyDown, KeyRight, KeyLeft} {
		if !k.IsArrowKey() {
			t.Errorf("%v.IsArrowKey() = false, want true", k)
		}
	}
	for _, k := range []Key{KeyShiftUp, KeyControlLeft, KeyHome, KeyF1} {
		if k.IsArrowKey() {
			t.Errorf("%v.IsArrowKey() = true, want false", k)
		}
	}
}

func TestIsNavigationKey(t *testing.T) {
	for _, k := range []Key{KeyUp, KeyLeft, KeyHome, KeyEnd, KeyPageUp, KeyPageDown} {
		if !k.IsNavigationKey() {
			t.Errorf("%v.IsNavigationKey() = false, want true", k)
		}
	}
	for _, k := range []Key{KeyDelete, KeyInsert, KeyF5, KeyEnter} {
		if k.IsNavigationKey() {
			t.Errorf("%v.IsNavigationKey() = true, want false", k)
		}
	}
}

func TestIsSentinel(t *testing.T) {
	for _, k := range []Key{KeyNotDefined, KeyIgnore, KeyAny, KeyCPRResponse,
		KeyVt100MouseEvent, KeyWindowsMouseEvent, KeyBracketedPaste} {
		if !k.IsSentinel() {
			t.Errorf("%v.IsSentinel() = false, want true", k)
		}
	}
	for _, k := range []Key{KeyUp, KeyEscape, KeyControlC, KeyF1, KeyEnter} {
		if k.IsSentinel() {
			t.Errorf("%v.IsSentinel() = true, want false", k)
		}
	}
}
