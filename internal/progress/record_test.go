package progress

import (
	"testing"
	"time"
)

func TestMarshalRoundTrip(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 678_901_234, time.FixedZone("IST", 5*3600+1800))
	in := []LevelProgress{
		{LevelID: 1, Completed: true, Score: 2, Attempts: 3, CompletedAt: &at},
		{LevelID: 2, Completed: false, Score: 0, Attempts: 0},
	}

	data, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i := range in {
		a, b := in[i], out[i]
		if a.LevelID != b.LevelID || a.Completed != b.Completed || a.Score != b.Score || a.Attempts != b.Attempts {
			t.Errorf("record %d: got %+v, want %+v", i, b, a)
		}
	}
	if out[0].CompletedAt == nil || !out[0].CompletedAt.Equal(at.Truncate(time.Millisecond)) {
		t.Errorf("completedAt = %v, want %v", out[0].CompletedAt, at)
	}
	if out[1].CompletedAt != nil {
		t.Errorf("completedAt = %v, want nil", out[1].CompletedAt)
	}
}

func TestMarshalDoesNotMutateInput(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 999_999_999, time.Local)
	in := []LevelProgress{{LevelID: 1, CompletedAt: &at}}
	if _, err := Marshal(in); err != nil {
		t.Fatal(err)
	}
	if in[0].CompletedAt.Nanosecond() != 999_999_999 {
		t.Error("input timestamp was truncated")
	}
}

func TestMarshalISOFormat(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	data, err := Marshal([]LevelProgress{{LevelID: 3, Completed: true, Score: 3, Attempts: 3, CompletedAt: &at}})
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"levelId":3,"completed":true,"score":3,"attempts":3,"completedAt":"2025-06-01T12:00:00Z"}]`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}
}
