package member

import (
	"reflect"
	"testing"
)

func TestEncodeFormations(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{name: "empty", names: nil, want: ""},
		{name: "single", names: []string{"Finance"}, want: "Finance"},
		{name: "multiple", names: []string{"Leadership", "Finance"}, want: "Leadership, Finance"},
		{name: "trims names", names: []string{" Leadership ", "Finance\t"}, want: "Leadership, Finance"},
		{name: "drops empty names", names: []string{"Leadership", "", "  ", "Finance"}, want: "Leadership, Finance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeFormations(tt.names); got != tt.want {
				t.Errorf("EncodeFormations() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeFormations(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    []string
	}{
		{name: "empty", encoded: "", want: nil},
		{name: "blank", encoded: " ", want: nil},
		{name: "only separators", encoded: ", ,, , ", want: nil},
		{name: "single", encoded: "Finance", want: []string{"Finance"}},
		{name: "multiple", encoded: "Leadership, Finance", want: []string{"Leadership", "Finance"}},
		{name: "unpadded separators", encoded: "Leadership,Finance", want: []string{"Leadership", "Finance"}},
		{name: "padded pieces", encoded: "  Leadership ,  Finance  ", want: []string{"Leadership", "Finance"}},
		{name: "case preserved", encoded: "finance, Finance", want: []string{"finance", "Finance"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeFormations(tt.encoded)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeFormations() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormationsRoundTrip(t *testing.T) {
	// holds for distinct, non-empty, separator-free, trimmed names
	lists := [][]string{
		{"Finance"},
		{"Leadership", "Finance"},
		{"Leadership", "Finance", "Marketing Digital"},
	}
	for _, names := range lists {
		if got := DecodeFormations(EncodeFormations(names)); !reflect.DeepEqual(got, names) {
			t.Errorf("decode(encode(%v)) = %v", names, got)
		}
	}
}
