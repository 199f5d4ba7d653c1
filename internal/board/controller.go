// Package board orchestrates game setup and click handling on top of the
// game state machine.
package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/playperu/jeopardy/internal/game"
	"github.com/playperu/jeopardy/internal/jeopardy"
)

// Labels of the play control and panel texts.
const (
	LabelStart   = "Start the Game!"
	LabelLoading = "Loading..."
	LabelReady   = "Game Ready!"
	LabelRestart = "Restart the Game!"

	PromptPickClue = "Click on a clue to see the question!"
	MessageTheEnd  = "The End!"

	NoticeDataSource = "There is a problem with getting the API data"
	NoticeStartError = "Error starting game. Please try again!"
)

var (
	ErrSetupInProgress     = errors.New("game is not accepting a new start")
	ErrNotEnoughCategories = errors.New("not enough eligible categories")
	ErrNotEnoughClues      = errors.New("not enough usable clues")
	ErrNoGame              = errors.New("no game in progress")
)

// Sampler provides board content.
type Sampler interface {
	NumberOfCategories() int
	NumberOfCluesPerCategory() int
	SelectCategoryIDs(ctx context.Context) ([]int, error)
	FetchCategory(ctx context.Context, id int) (jeopardy.Category, error)
}

// Presenter renders the board. Calls are made while the controller holds its
// lock, so implementations must not call back into the controller.
type Presenter interface {
	ClearBoard()
	RenderBoard(categories []jeopardy.Category)
	MarkClueViewed(categoryID, clueID int)
	ShowActivePanel(text string)
	ClearActivePanel()
	SetPlayControl(label string, enabled bool)
	SetLoading(loading bool)
	Notify(message string)
}

type Controller struct {
	logger    *slog.Logger
	sampler   Sampler
	presenter Presenter

	mu        sync.Mutex
	accepting bool
	state     *game.State
}

func New(logger *slog.Logger, sampler Sampler, presenter Presenter) *Controller {
	presenter.SetPlayControl(LabelStart, true)
	return &Controller{
		logger:    logger,
		sampler:   sampler,
		presenter: presenter,
		accepting: true,
	}
}

// Status is a point-in-time view of the controller.
type Status struct {
	Accepting bool       `json:"acceptingNewGame"`
	InGame    bool       `json:"inGame"`
	Stage     game.Stage `json:"stage"`
	Exhausted bool       `json:"exhausted"`
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{Accepting: c.accepting, Stage: game.StageIdle}
	if c.state != nil {
		st.InGame = true
		st.Stage = c.state.Stage()
		st.Exhausted = c.state.Exhausted()
	}
	return st
}

// StartGame builds a fresh board. It fails with ErrSetupInProgress while a
// previous start is running or a game is being played. Any other failure
// leaves no game installed and the controller ready for another attempt.
func (c *Controller) StartGame(ctx context.Context) error {
	c.mu.Lock()
	if !c.accepting {
		c.mu.Unlock()
		return ErrSetupInProgress
	}
	c.accepting = false
	c.state = nil
	c.presenter.SetPlayControl(LabelLoading, false)
	c.presenter.SetLoading(true)
	c.presenter.ClearActivePanel()
	c.presenter.ClearBoard()
	c.presenter.ShowActivePanel(PromptPickClue)
	c.mu.Unlock()

	c.logger.Info("starting game")

	categories, err := c.fetchBoard(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.presenter.SetLoading(false)

	if err != nil {
		c.logger.Error("game setup failed", "error", err)
		c.presenter.Notify(NoticeStartError)
		c.accepting = true
		c.presenter.SetPlayControl(LabelStart, true)
		return err
	}

	c.state = game.NewState(categories)
	c.presenter.RenderBoard(categories)
	c.presenter.SetPlayControl(LabelReady, false)
	c.logger.Info("game ready", "categories", len(categories))
	return nil
}

func (c *Controller) fetchBoard(ctx context.Context) ([]jeopardy.Category, error) {
	ids, err := c.sampler.SelectCategoryIDs(ctx)
	if err != nil {
		c.logger.Error("selecting categories", "error", err)
		c.mu.Lock()
		c.presenter.Notify(NoticeDataSource)
		c.mu.Unlock()
		ids = nil
	}

	want := c.sampler.NumberOfCategories()
	if len(ids) < want {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrNotEnoughCategories, len(ids), want)
	}

	categories := make([]jeopardy.Category, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			cat, err := c.sampler.FetchCategory(gctx, id)
			if err != nil {
				return fmt.Errorf("fetching category %d: %w", id, err)
			}
			categories[i] = cat
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Eligibility is judged on the advertised clue count; unusable clues
	// can still leave a column short.
	perColumn := c.sampler.NumberOfCluesPerCategory()
	for _, cat := range categories {
		if len(cat.Clues) < perColumn {
			return nil, fmt.Errorf("%w: category %d has %d, want %d", ErrNotEnoughClues, cat.ID, len(cat.Clues), perColumn)
		}
	}
	return categories, nil
}

// ClueClicked opens a clue from the grid.
func (c *Controller) ClueClicked(categoryID, clueID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return ErrNoGame
	}

	sel, err := c.state.Select(categoryID, clueID)
	if err != nil {
		return fmt.Errorf("selecting clue %d in category %d: %w", clueID, categoryID, err)
	}

	if sel.Exhausted {
		c.accepting = true
		c.presenter.SetPlayControl(LabelRestart, true)
	}
	c.presenter.MarkClueViewed(categoryID, clueID)
	c.presenter.ShowActivePanel(sel.Clue.Question)
	return nil
}

// ActiveAreaClicked advances the reveal of the open clue.
func (c *Controller) ActiveAreaClicked() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil {
		return
	}

	tr := c.state.Advance()
	switch tr.To {
	case game.StageAnswer:
		c.presenter.ShowActivePanel(tr.Text)
	case game.StageIdle:
		if !tr.Changed() {
			return
		}
		c.presenter.ClearActivePanel()
		if tr.GameOver {
			c.accepting = true
			c.presenter.SetPlayControl(LabelRestart, true)
			c.presenter.ShowActivePanel(MessageTheEnd)
			c.logger.Info("game over")
		}
	}
}
