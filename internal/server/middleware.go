package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type ctxKey int

const ctxKeyClue ctxKey = iota

// clueRef identifies a cell of the board.
type clueRef struct {
	CategoryID int `path:"categoryID"`
	ClueID     int `path:"clueID"`
}

// clueMiddleware parses {categoryID} and {clueID} and stores them in the
// request context.
func clueMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := strconv.Atoi(chi.URLParam(r, "categoryID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid category id")
			return
		}
		clueID, err := strconv.Atoi(chi.URLParam(r, "clueID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid clue id")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyClue, clueRef{CategoryID: categoryID, ClueID: clueID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clueFrom(r *http.Request) clueRef {
	return r.Context().Value(ctxKeyClue).(clueRef)
}
