package catalog

import (
	"math/rand"
	"sync"
	"time"

	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
)

// Small beginner-friendly shapes.
var (
	dot      = domain.Shape{{1}}
	duoH     = domain.Shape{{1, 1}}
	duoV     = domain.Shape{{1}, {1}}
	square   = domain.Shape{{1, 1}, {1, 1}}
	trioH    = domain.Shape{{1, 1, 1}}
	trioV    = domain.Shape{{1}, {1}, {1}}
	smallL   = domain.Shape{{1, 1}, {1, 0}}
	smallLMr = domain.Shape{{1, 0}, {1, 1}}
	tee      = domain.Shape{{0, 1, 0}, {1, 1, 1}}
	zigzag   = domain.Shape{{1, 1, 0}, {0, 1, 1}}
	long4H   = domain.Shape{{1, 1, 1, 1}}
	long4V   = domain.Shape{{1}, {1}, {1}, {1}}
	plus     = domain.Shape{{0, 1, 0}, {1, 1, 1}, {0, 1, 0}}
)

var easyShapes = []domain.Shape{dot, duoH, duoV, square}

// Normal is a superset of easy, hard a superset of normal.
var normalShapes = append(append([]domain.Shape{}, easyShapes...),
	trioH, trioV, smallL, smallLMr, tee, zigzag)

var hardShapes = append(append([]domain.Shape{}, normalShapes...),
	long4H, long4V, plus)

// Shapes returns the shape pool for a tier. Unknown tiers resolve to normal.
func Shapes(tier domain.Difficulty) []domain.Shape {
	switch tier {
	case domain.Easy:
		return easyShapes
	case domain.Hard:
		return hardShapes
	default:
		return normalShapes
	}
}

// Catalog draws fresh blocks from the tiered shape library.
type Catalog struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New constructs a Catalog with the provided rng or a time-seeded default.
func New(rng *rand.Rand) *Catalog {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Catalog{rng: rng}
}

// Draw picks one shape uniformly at random from the tier's pool and returns
// it as a fresh block with its own shape copy.
func (c *Catalog) Draw(tier domain.Difficulty) *domain.Block {
	pool := Shapes(tier)
	c.mu.Lock()
	idx := c.rng.Intn(len(pool))
	c.mu.Unlock()
	return domain.NewBlock(pool[idx])
}
