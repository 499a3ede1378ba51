package feature

import (
	"errors"
	"testing"
)

func TestSelectorRows(t *testing.T) {
	cases := []struct {
		name string
		sel  Selector
		dim  int
		want []int
	}{
		{"all dim2", SelectAll, 2, []int{0, 1}},
		{"all dim6", SelectAll, 6, []int{0, 1, 2, 3, 4, 5}},
		{"first", Select(0), 2, []int{0}},
		{"sparse", Select(0, 2, 5), 6, []int{0, 2, 5}},
	}

	for _, tc := range cases {
		got := tc.sel.Rows(tc.dim)
		if len(got) != len(tc.want) {
			t.Errorf("%s: rows = %v, want %v", tc.name, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: rows = %v, want %v", tc.name, got, tc.want)
				break
			}
		}
		if tc.sel.Count(tc.dim) != len(tc.want) {
			t.Errorf("%s: count = %d, want %d", tc.name, tc.sel.Count(tc.dim), len(tc.want))
		}
	}
}

func TestSelectorValidate(t *testing.T) {
	if err := SelectAll.Validate(1); err != nil {
		t.Errorf("SelectAll: %v", err)
	}
	if err := Select(0, 1).Validate(2); err != nil {
		t.Errorf("exact: %v", err)
	}

	if err := Selector(0).Validate(3); !errors.Is(err, ErrBadSelection) {
		t.Errorf("empty selector: got %v", err)
	}
	if err := Select(2).Validate(2); !errors.Is(err, ErrBadSelection) {
		t.Errorf("out of range: got %v", err)
	}
}
