package adaptive

import (
	"context"
	"math/rand/v2"

	"github.com/abhisek/adaptly/internal/catalog"
)

// Item is one drill question together with the level it came from.
type Item struct {
	LevelID  int
	Question catalog.Question
}

// Drill serves catalog questions matching the tracker's difficulty.
type Drill struct {
	tracker *Tracker
	pools   map[int][]Item
	rng     *rand.Rand
	last    string
}

// NewDrill groups the catalog's questions by difficulty. Levels above
// MaxDifficulty are served at MaxDifficulty.
func NewDrill(cat *catalog.Catalog, tracker *Tracker, rng *rand.Rand) *Drill {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	d := &Drill{tracker: tracker, pools: make(map[int][]Item), rng: rng}
	for _, l := range cat.All() {
		band := min(max(l.Difficulty, MinDifficulty), MaxDifficulty)
		for _, q := range l.Questions {
			d.pools[band] = append(d.pools[band], Item{LevelID: l.ID, Question: q})
		}
	}
	return d
}

// Next picks a question at the current difficulty, falling back to the
// nearest easier band when a band is empty. It avoids repeating the previous
// prompt when the band has more than one question.
func (d *Drill) Next() (Item, bool) {
	for band := d.tracker.Level(); band >= MinDifficulty; band-- {
		pool := d.pools[band]
		if len(pool) == 0 {
			continue
		}
		item := pool[d.rng.IntN(len(pool))]
		if len(pool) > 1 && item.Question.Prompt == d.last {
			item = pool[(d.indexOf(pool, item)+1)%len(pool)]
		}
		d.last = item.Question.Prompt
		return item, true
	}
	return Item{}, false
}

func (d *Drill) indexOf(pool []Item, item Item) int {
	for i, it := range pool {
		if it.Question.Prompt == item.Question.Prompt && it.LevelID == item.LevelID {
			return i
		}
	}
	return 0
}

// Answer grades option against item and updates the difficulty.
func (d *Drill) Answer(ctx context.Context, item Item, option int) (correct bool, level int) {
	correct = item.Question.IsCorrect(option)
	return correct, d.tracker.Record(ctx, correct)
}
