package server

import (
	"encoding/json"
	"testing"

	"github.com/playperu/jeopardy/internal/jeopardy"
)

func TestViewRenderAndMark(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	v := NewView(b)

	v.RenderBoard([]jeopardy.Category{
		{ID: 4, Title: "rivers", Clues: []jeopardy.Clue{{ID: 40, Value: 200}, {ID: 41, Value: 1000}}},
		{ID: 9, Title: "capitals", Clues: []jeopardy.Clue{{ID: 90, Value: 400}}},
	})
	v.MarkClueViewed(4, 41)

	snap := v.Snapshot()
	if len(snap.Columns) != 2 || snap.Columns[0].Title != "rivers" || snap.Columns[1].CategoryID != 9 {
		t.Fatalf("columns = %+v", snap.Columns)
	}
	if got := snap.Columns[0].Cells[1]; got.Label != "$1000" || !got.Viewed {
		t.Errorf("cell 4/41 = %+v, want $1000 viewed", got)
	}
	if snap.Columns[0].Cells[0].Viewed || snap.Columns[1].Cells[0].Viewed {
		t.Error("unrelated cells marked viewed")
	}
	if snap.Version != 2 {
		t.Errorf("version = %d, want 2", snap.Version)
	}

	var types []string
	for range 2 {
		var ev Event
		json.Unmarshal(<-ch, &ev)
		types = append(types, ev.Type)
	}
	if types[0] != EventBoardRendered || types[1] != EventClueViewed {
		t.Errorf("event types = %v", types)
	}
}

func TestViewSnapshotIsCopy(t *testing.T) {
	v := NewView(NewBroker())
	v.RenderBoard([]jeopardy.Category{{ID: 1, Clues: []jeopardy.Clue{{ID: 10, Value: 200}}}})

	snap := v.Snapshot()
	snap.Columns[0].Cells[0].Viewed = true

	if v.Snapshot().Columns[0].Cells[0].Viewed {
		t.Error("mutating a snapshot changed the view")
	}
}

func TestViewClearBoardResetsNotice(t *testing.T) {
	v := NewView(NewBroker())
	v.Notify("oops")
	v.RenderBoard([]jeopardy.Category{{ID: 1}})

	v.ClearBoard()

	snap := v.Snapshot()
	if snap.Notice != "" || len(snap.Columns) != 0 {
		t.Errorf("after clear: notice %q, %d columns", snap.Notice, len(snap.Columns))
	}
}
