package logging

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		level, format string
		wantErr       bool
	}{
		{"info", "console", false},
		{"debug", "json", false},
		{"warn", "", false},
		{"loud", "console", true},
		{"info", "xml", true},
	}
	for _, tt := range tests {
		log, err := New(tt.level, tt.format)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("New(%q, %q): expected error", tt.level, tt.format)
			}
			continue
		}
		if err != nil {
			t.Fatalf("New(%q, %q): %v", tt.level, tt.format, err)
		}
		if log == nil {
			t.Fatalf("New(%q, %q): nil logger", tt.level, tt.format)
		}
	}
}
