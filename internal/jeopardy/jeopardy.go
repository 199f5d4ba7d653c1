// Package jeopardy defines the core domain types of the trivia board.
// It has no dependencies outside the standard library.
package jeopardy

const (
	DefaultNumberOfCategories       = 6
	DefaultNumberOfCluesPerCategory = 5
	DefaultCategoryPoolSize         = 100

	// ValueStep is the point increment used when a clue arrives without a value.
	ValueStep = 200
)

// Category is one column of the board. Clue order is display order.
type Category struct {
	ID    int
	Title string
	Clues []Clue
}

type Clue struct {
	ID       int
	Question string
	Answer   string
	Value    int
}

// FallbackValue is the value assigned to the clue at 0-based rank k when the
// source provides none.
func FallbackValue(rank int) int {
	return (rank + 1) * ValueStep
}
