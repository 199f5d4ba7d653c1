// Package game holds the in-memory state of one board and the per-clue
// reveal state machine.
package game

import (
	"errors"

	"github.com/playperu/jeopardy/internal/jeopardy"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrClueNotFound     = errors.New("clue not found")
	ErrClueOpen         = errors.New("another clue is still open")
)

// Stage is the reveal phase of the active clue.
type Stage int

const (
	StageIdle Stage = iota
	StageQuestion
	StageAnswer
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageQuestion:
		return "question"
	case StageAnswer:
		return "answer"
	default:
		return "unknown"
	}
}

func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// State is a single game session. Removing a clue from its category is the
// only record of it having been viewed.
type State struct {
	order      []int
	titles     map[int]string
	categories map[int][]jeopardy.Clue
	active     *jeopardy.Clue
	stage      Stage
}

// NewState builds a board from the given categories, keeping their order as
// column order. The clue slices are copied.
func NewState(categories []jeopardy.Category) *State {
	s := &State{
		order:      make([]int, 0, len(categories)),
		titles:     make(map[int]string, len(categories)),
		categories: make(map[int][]jeopardy.Clue, len(categories)),
	}
	for _, c := range categories {
		s.order = append(s.order, c.ID)
		s.titles[c.ID] = c.Title
		s.categories[c.ID] = append([]jeopardy.Clue(nil), c.Clues...)
	}
	return s
}

// Selection is the result of a successful Select.
type Selection struct {
	Clue jeopardy.Clue
	// Exhausted is true when this removal emptied the whole board.
	Exhausted bool
}

// Select opens a clue: it is removed from its category, becomes the active
// clue and the stage moves to Question. Selecting is only allowed while no
// clue is open.
func (s *State) Select(categoryID, clueID int) (Selection, error) {
	if s.stage != StageIdle {
		return Selection{}, ErrClueOpen
	}

	clues, ok := s.categories[categoryID]
	if !ok {
		return Selection{}, ErrCategoryNotFound
	}

	idx := -1
	for i, c := range clues {
		if c.ID == clueID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Selection{}, ErrClueNotFound
	}

	clue := clues[idx]
	s.categories[categoryID] = append(clues[:idx:idx], clues[idx+1:]...)
	s.active = &clue
	s.stage = StageQuestion

	return Selection{Clue: clue, Exhausted: s.Exhausted()}, nil
}

// Transition describes what Advance did.
type Transition struct {
	From, To Stage
	// Text is the answer when moving to Answer.
	Text string
	// GameOver is set on the move back to Idle that follows the last clue.
	GameOver bool
}

// Changed reports whether the call moved the machine.
func (t Transition) Changed() bool { return t.From != t.To }

// Advance moves the active clue one step: Question to Answer, Answer to Idle.
// In Idle it does nothing.
func (s *State) Advance() Transition {
	switch s.stage {
	case StageQuestion:
		s.stage = StageAnswer
		return Transition{From: StageQuestion, To: StageAnswer, Text: s.active.Answer}
	case StageAnswer:
		s.stage = StageIdle
		s.active = nil
		return Transition{From: StageAnswer, To: StageIdle, GameOver: s.Exhausted()}
	default:
		return Transition{From: StageIdle, To: StageIdle}
	}
}

func (s *State) Stage() Stage { return s.stage }

func (s *State) ActiveClue() (jeopardy.Clue, bool) {
	if s.active == nil {
		return jeopardy.Clue{}, false
	}
	return *s.active, true
}

// Exhausted reports whether every category has run out of clues.
func (s *State) Exhausted() bool {
	for _, clues := range s.categories {
		if len(clues) > 0 {
			return false
		}
	}
	return true
}

// Categories returns the remaining board in column order.
func (s *State) Categories() []jeopardy.Category {
	out := make([]jeopardy.Category, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, jeopardy.Category{
			ID:    id,
			Title: s.titles[id],
			Clues: append([]jeopardy.Clue(nil), s.categories[id]...),
		})
	}
	return out
}
