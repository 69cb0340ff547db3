package dataset

import (
	"reflect"
	"testing"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"Event", TypeEvent},
		{"event", TypeEvent},
		{"  RESOURCE  ", TypeResource},
		{"Interval", TypeInterval},
		{"Table", TypeTable},
		{"unknown", TypeTable},
		{"", TypeTable},
	}
	for _, tc := range tests {
		if got := ParseType(tc.in); got != tc.want {
			t.Errorf("ParseType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInterfacePaths(t *testing.T) {
	r := Record{
		Interfaces: []Interface{
			{Path: "Log"},
			{Path: ""},
			{Path: "SPAN"},
		},
	}
	got := r.InterfacePaths()
	want := []string{"log", "span"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InterfacePaths() = %v, want %v", got, want)
	}
}

func TestInterfacePaths_Empty(t *testing.T) {
	r := Record{}
	if got := r.InterfacePaths(); len(got) != 0 {
		t.Errorf("expected no paths, got %v", got)
	}
}
