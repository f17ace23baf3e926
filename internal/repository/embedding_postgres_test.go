package repository

import "testing"

func TestVectorLiteral(t *testing.T) {
	tests := []struct {
		in   []float32
		want string
	}{
		{[]float32{0.5, -1, 2}, "[0.5,-1,2]"},
		{[]float32{0}, "[0]"},
		{[]float32{}, "[]"},
	}
	for _, tt := range tests {
		if got := vectorLiteral(tt.in); got != tt.want {
			t.Errorf("vectorLiteral(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseUUID(t *testing.T) {
	id, err := parseUUID("d9b2d63d-a233-4123-847a-7b0c3b6b7a40")
	if err != nil {
		t.Fatalf("valid uuid rejected: %v", err)
	}
	if !id.Valid {
		t.Error("parsed uuid not marked valid")
	}
	if uuidString(id) != "d9b2d63d-a233-4123-847a-7b0c3b6b7a40" {
		t.Errorf("roundtrip mismatch: %s", uuidString(id))
	}

	if _, err := parseUUID("not-a-uuid"); err == nil {
		t.Error("expected error for malformed uuid")
	}
}
