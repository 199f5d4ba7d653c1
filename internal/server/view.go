package server

import (
	"strconv"
	"sync"

	"github.com/playperu/jeopardy/internal/jeopardy"
)

// Event types, one per presenter call.
const (
	EventBoardCleared  = "board_cleared"
	EventBoardRendered = "board_rendered"
	EventClueViewed    = "clue_viewed"
	EventPanel         = "panel"
	EventPanelCleared  = "panel_cleared"
	EventControl       = "control"
	EventLoading       = "loading"
	EventNotice        = "notice"
)

type BoardSnapshot struct {
	Version uint64   `json:"version"`
	Columns []Column `json:"columns"`
	Panel   string   `json:"panel"`
	Control Control  `json:"control"`
	Loading bool     `json:"loading"`
	Notice  string   `json:"notice,omitempty"`
}

type Column struct {
	CategoryID int    `json:"categoryId"`
	Title      string `json:"title"`
	Cells      []Cell `json:"cells"`
}

type Cell struct {
	CategoryID int    `json:"categoryId"`
	ClueID     int    `json:"clueId"`
	Label      string `json:"label"`
	Viewed     bool   `json:"viewed"`
}

type Control struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// View is the board.Presenter backing the HTTP API. It keeps a renderable
// snapshot and publishes every change through the broker.
type View struct {
	broker *Broker

	mu   sync.Mutex
	snap BoardSnapshot
}

func NewView(broker *Broker) *View {
	return &View{
		broker: broker,
		snap:   BoardSnapshot{Columns: []Column{}},
	}
}

// Snapshot returns a copy of the current board.
func (v *View) Snapshot() BoardSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap.clone()
}

func (v *View) update(typ string, fn func(s *BoardSnapshot)) {
	v.mu.Lock()
	fn(&v.snap)
	v.snap.Version++
	ev := Event{Type: typ, Board: v.snap.clone()}
	v.mu.Unlock()

	v.broker.Publish(ev)
}

func (v *View) ClearBoard() {
	v.update(EventBoardCleared, func(s *BoardSnapshot) {
		s.Columns = []Column{}
		s.Notice = ""
	})
}

func (v *View) RenderBoard(categories []jeopardy.Category) {
	columns := make([]Column, len(categories))
	for i, cat := range categories {
		cells := make([]Cell, len(cat.Clues))
		for j, clue := range cat.Clues {
			cells[j] = Cell{
				CategoryID: cat.ID,
				ClueID:     clue.ID,
				Label:      "$" + strconv.Itoa(clue.Value),
			}
		}
		columns[i] = Column{CategoryID: cat.ID, Title: cat.Title, Cells: cells}
	}

	v.update(EventBoardRendered, func(s *BoardSnapshot) {
		s.Columns = columns
	})
}

func (v *View) MarkClueViewed(categoryID, clueID int) {
	v.update(EventClueViewed, func(s *BoardSnapshot) {
		for i := range s.Columns {
			if s.Columns[i].CategoryID != categoryID {
				continue
			}
			for j := range s.Columns[i].Cells {
				if s.Columns[i].Cells[j].ClueID == clueID {
					s.Columns[i].Cells[j].Viewed = true
				}
			}
		}
	})
}

func (v *View) ShowActivePanel(text string) {
	v.update(EventPanel, func(s *BoardSnapshot) { s.Panel = text })
}

func (v *View) ClearActivePanel() {
	v.update(EventPanelCleared, func(s *BoardSnapshot) { s.Panel = "" })
}

func (v *View) SetPlayControl(label string, enabled bool) {
	v.update(EventControl, func(s *BoardSnapshot) {
		s.Control = Control{Label: label, Enabled: enabled}
	})
}

func (v *View) SetLoading(loading bool) {
	v.update(EventLoading, func(s *BoardSnapshot) { s.Loading = loading })
}

func (v *View) Notify(message string) {
	v.update(EventNotice, func(s *BoardSnapshot) { s.Notice = message })
}

func (s BoardSnapshot) clone() BoardSnapshot {
	out := s
	out.Columns = make([]Column, len(s.Columns))
	for i, c := range s.Columns {
		c.Cells = append([]Cell(nil), c.Cells...)
		out.Columns[i] = c
	}
	return out
}
