package progress

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/adaptly/internal/catalog"
)

func TestDeriveUnlocks(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name    string
		records map[int]LevelProgress
		want    map[int]bool
	}{
		{
			name:    "no progress",
			records: nil,
			want:    map[int]bool{1: true, 2: false, 3: false, 4: false},
		},
		{
			name:    "level 1 attempted but not completed",
			records: map[int]LevelProgress{1: {LevelID: 1, Score: 1}},
			want:    map[int]bool{1: true, 2: false, 3: false, 4: false},
		},
		{
			name: "chain through 2",
			records: map[int]LevelProgress{
				1: {LevelID: 1, Completed: true},
				2: {LevelID: 2, Completed: true},
			},
			want: map[int]bool{1: true, 2: true, 3: true, 4: false},
		},
		{
			name: "gap keeps later level locked",
			records: map[int]LevelProgress{
				1: {LevelID: 1, Completed: true},
				3: {LevelID: 3, Completed: true},
			},
			want: map[int]bool{1: true, 2: true, 3: false, 4: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveUnlocks(cat, tt.records)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DeriveUnlocks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeriveUnlocksIsPure(t *testing.T) {
	records := map[int]LevelProgress{1: {LevelID: 1, Completed: true}}
	a := DeriveUnlocks(catalog.Default(), records)
	b := DeriveUnlocks(catalog.Default(), records)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated calls differ:\n%s", diff)
	}
	if len(records) != 1 {
		t.Error("records mutated")
	}
}
