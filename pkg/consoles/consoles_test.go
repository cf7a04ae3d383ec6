package consoles

import "testing"

func TestToID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Nintendo", "nes"},
		{"Super Nintendo", "snes"},
		{"PlayStation 2", "playstation-2"},
		{"Nintendo Entertainment System", "nes"},
		{"SUPER NINTENDO ENTERTAINMENT SYSTEM", "snes"},
		{"Sega Genesis", "genesis"},
		{"GameBoy", "gameboy"},
		{"Game Boy", "gameboy"},
		// Unknown consoles pass through lowercased.
		{"Neo Geo", "neo geo"},
		{"NES", "nes"},
	}
	for _, tt := range tests {
		if got := ToID(tt.name); got != tt.want {
			t.Errorf("ToID(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("snes"); got != "Super Nintendo" {
		t.Errorf("DisplayName(snes) = %q", got)
	}
	if got := DisplayName("turbografx"); got != "turbografx" {
		t.Errorf("unknown id should pass through, got %q", got)
	}
}
