package snowtype

import "testing"

func TestNewBinding(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		wantType  string
		wantValue string
	}{
		{"bool true", true, "BOOLEAN", "true"},
		{"bool false", false, "BOOLEAN", "false"},
		{"int", 42, "FIXED", "42"},
		{"negative int64", int64(-7), "FIXED", "-7"},
		{"uint64", uint64(18446744073709551615), "FIXED", "18446744073709551615"},
		{"uint8", uint8(255), "FIXED", "255"},
		{"float64", 1.5, "REAL", "1.5"},
		{"float32", float32(0.25), "REAL", "0.25"},
		{"string", "BBQ", "TEXT", "BBQ"},
		{"stringer", menuBBQ, "TEXT", "BBQ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newBinding(tt.value)
			if err != nil {
				t.Fatalf("newBinding(%v) error: %v", tt.value, err)
			}
			if got.Type != tt.wantType || got.Value != tt.wantValue {
				t.Errorf("newBinding(%v) = %+v, want {%s %s}", tt.value, got, tt.wantType, tt.wantValue)
			}
		})
	}
}

func TestNewBindingUnsupported(t *testing.T) {
	if _, err := newBinding([]int{1, 2}); err == nil {
		t.Error("newBinding(slice) expected error")
	}
	if _, err := newBinding(nil); err == nil {
		t.Error("newBinding(nil) expected error")
	}
}
