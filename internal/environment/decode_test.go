package environment

import (
	"errors"
	"testing"
)

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: `42`, want: 42},
		{raw: `33.9`, want: 33},
		{raw: `-2.5`, want: -2},
		{raw: `" 18 "`, want: 18},
		{raw: `"18.5"`, wantErr: true},
		{raw: `1e300`, wantErr: true},
		{raw: `-1e300`, wantErr: true},
		{raw: `9223372036854775808`, wantErr: true},
		{raw: `null`, wantErr: true},
		{raw: `true`, wantErr: true},
	}

	for _, tt := range tests {
		got, err := coerceInt([]byte(tt.raw))
		if tt.wantErr {
			if err == nil {
				t.Errorf("coerceInt(%s) = %d, want error", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("coerceInt(%s) unexpected error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("coerceInt(%s) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestObject(t *testing.T) {
	m, err := object(nil)
	if err != nil || m == nil || len(m) != 0 {
		t.Fatalf("expected missing member to read as empty object, got %v (%v)", m, err)
	}

	if _, err := object([]byte(`null`)); !errors.Is(err, errNullObject) {
		t.Fatalf("expected null object error, got %v", err)
	}
	if _, err := object([]byte(`[1,2]`)); err == nil {
		t.Fatalf("expected error for non-object")
	}

	m, err = object([]byte(`{"low":25}`))
	if err != nil || string(m["low"]) != "25" {
		t.Fatalf("unexpected object %v (%v)", m, err)
	}
}
