package jservice

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/playperu/jeopardy/internal/jeopardy"
)

// Shuffle permutes s in place with Fisher–Yates and returns it.
func Shuffle[T any](rnd *rand.Rand, s []T) []T {
	for i := len(s) - 1; i > 0; i-- {
		j := rnd.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
	return s
}

type SamplerConfig struct {
	NumberOfCategories       int
	NumberOfCluesPerCategory int
	CategoryPoolSize         int
}

// Sampler picks random eligible categories and clues from the API.
type Sampler struct {
	client *Client
	cfg    SamplerConfig

	mu  sync.Mutex // guards rnd; detail fetches run concurrently
	rnd *rand.Rand
}

// NewSampler returns a Sampler drawing from rnd. A nil rnd uses a randomly
// seeded source.
func NewSampler(client *Client, cfg SamplerConfig, rnd *rand.Rand) *Sampler {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if cfg.NumberOfCategories <= 0 {
		cfg.NumberOfCategories = jeopardy.DefaultNumberOfCategories
	}
	if cfg.NumberOfCluesPerCategory <= 0 {
		cfg.NumberOfCluesPerCategory = jeopardy.DefaultNumberOfCluesPerCategory
	}
	if cfg.CategoryPoolSize <= 0 {
		cfg.CategoryPoolSize = jeopardy.DefaultCategoryPoolSize
	}
	return &Sampler{client: client, cfg: cfg, rnd: rnd}
}

// NumberOfCategories is the board width the sampler aims for.
func (s *Sampler) NumberOfCategories() int { return s.cfg.NumberOfCategories }

// NumberOfCluesPerCategory is the column height the sampler aims for.
func (s *Sampler) NumberOfCluesPerCategory() int { return s.cfg.NumberOfCluesPerCategory }

// SelectCategoryIDs returns up to NumberOfCategories random ids of categories
// holding enough clues to fill a column. When the list cannot be fetched it
// returns an empty slice along with the *DataSourceError.
func (s *Sampler) SelectCategoryIDs(ctx context.Context) ([]int, error) {
	pool, err := s.client.Categories(ctx, s.cfg.CategoryPoolSize)
	if err != nil {
		return []int{}, err
	}

	eligible := eligibleCategories(pool, s.cfg.NumberOfCluesPerCategory)

	s.mu.Lock()
	Shuffle(s.rnd, eligible)
	s.mu.Unlock()

	n := min(len(eligible), s.cfg.NumberOfCategories)
	ids := make([]int, n)
	for i := range n {
		ids[i] = eligible[i].ID
	}
	return ids, nil
}

// FetchCategory loads one category and picks its random clue column.
func (s *Sampler) FetchCategory(ctx context.Context, id int) (jeopardy.Category, error) {
	detail, err := s.client.Category(ctx, id)
	if err != nil {
		return jeopardy.Category{}, err
	}

	usable := usableClues(detail.Clues)

	s.mu.Lock()
	Shuffle(s.rnd, usable)
	s.mu.Unlock()

	chosen := usable[:min(len(usable), s.cfg.NumberOfCluesPerCategory)]
	return jeopardy.Category{
		ID:    id,
		Title: detail.Title,
		Clues: assignValues(chosen),
	}, nil
}

// eligibleCategories keeps the first occurrence of each id with at least
// minClues clues.
func eligibleCategories(pool []CategorySummary, minClues int) []CategorySummary {
	out := make([]CategorySummary, 0, len(pool))
	seen := make(map[int]bool, len(pool))
	for _, c := range pool {
		if c.CluesCount < minClues || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}

func usableClues(records []ClueRecord) []ClueRecord {
	out := make([]ClueRecord, 0, len(records))
	for _, r := range records {
		if r.Question != "" && r.Answer != "" {
			out = append(out, r)
		}
	}
	return out
}

func assignValues(chosen []ClueRecord) []jeopardy.Clue {
	clues := make([]jeopardy.Clue, len(chosen))
	for i, r := range chosen {
		value := jeopardy.FallbackValue(i)
		if r.Value != nil && *r.Value > 0 {
			value = *r.Value
		}
		clues[i] = jeopardy.Clue{
			ID:       r.ID,
			Question: r.Question,
			Answer:   r.Answer,
			Value:    value,
		}
	}
	return clues
}
