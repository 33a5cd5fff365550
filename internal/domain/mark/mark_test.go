package mark

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"10.50", 10.50, true},
		{"1:02.30", 62.30, true},
		{"00:10.50", 10.50, true},
		{"11", 11, true},
		{" 12.34 ", 12.34, true},
		{"abc", 0, false},
		{"", 0, false},
		{"1:xx.30", 0, false},
		{"xx:10.30", 0, false},
		{"1:02:30", 0, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if ok != tt.wantOK {
			t.Errorf("Parse(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
