package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/playperu/jeopardy/internal/board"
	"github.com/playperu/jeopardy/internal/game"
)

type GameStateResponse struct {
	Status board.Status  `json:"status"`
	Board  BoardSnapshot `json:"board"`
}

func gameState(ctrl *board.Controller, view *View) GameStateResponse {
	return GameStateResponse{Status: ctrl.Status(), Board: view.Snapshot()}
}

func handleGameState(ctrl *board.Controller, view *View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, gameState(ctrl, view))
	}
}

func handleStartGame(ctrl *board.Controller, view *View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Setup outlives the request: the board is shared with every viewer.
		ctx := context.WithoutCancel(r.Context())

		err := ctrl.StartGame(ctx)
		switch {
		case errors.Is(err, board.ErrSetupInProgress):
			writeError(w, http.StatusConflict, "game is not accepting a new start")
			return
		case err != nil:
			writeError(w, http.StatusBadGateway, board.NoticeStartError)
			return
		}

		writeJSON(w, http.StatusOK, gameState(ctrl, view))
	}
}

func handleClue(ctrl *board.Controller, view *View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := clueFrom(r)

		err := ctrl.ClueClicked(ref.CategoryID, ref.ClueID)
		switch {
		case errors.Is(err, game.ErrCategoryNotFound), errors.Is(err, game.ErrClueNotFound):
			writeError(w, http.StatusNotFound, "clue not found")
			return
		case errors.Is(err, game.ErrClueOpen):
			writeError(w, http.StatusConflict, "another clue is still open")
			return
		case errors.Is(err, board.ErrNoGame):
			writeError(w, http.StatusConflict, "no game in progress")
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, gameState(ctrl, view))
	}
}

func handleActiveArea(ctrl *board.Controller, view *View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl.ActiveAreaClicked()
		writeJSON(w, http.StatusOK, gameState(ctrl, view))
	}
}
