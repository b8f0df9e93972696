package progress

import (
	"encoding/json"
	"fmt"
	"time"
)

// Key is the persisted key holding the JSON array of level records.
const Key = "levelProgress"

// LevelProgress is the latest session result for one level.
type LevelProgress struct {
	LevelID     int        `json:"levelId"`
	Completed   bool       `json:"completed"`
	Score       int        `json:"score"`
	Attempts    int        `json:"attempts"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Marshal encodes records as a JSON array with ISO-8601 UTC timestamps at
// millisecond precision.
func Marshal(records []LevelProgress) ([]byte, error) {
	out := make([]LevelProgress, len(records))
	for i, r := range records {
		if r.CompletedAt != nil {
			t := r.CompletedAt.UTC().Truncate(time.Millisecond)
			r.CompletedAt = &t
		}
		out[i] = r
	}
	return json.Marshal(out)
}

// Unmarshal decodes a JSON array of records.
func Unmarshal(data []byte) ([]LevelProgress, error) {
	var records []LevelProgress
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", Key, err)
	}
	return records, nil
}
