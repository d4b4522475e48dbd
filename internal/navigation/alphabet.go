package navigation

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ErrUnsortedIndex reports positions that are not strictly increasing.
var ErrUnsortedIndex = errors.New("alphabet index positions must be strictly increasing")

// OtherBucket groups labels that do not start with a letter.
const OtherBucket = '#'

// AlphabetIndex lists the positions at which a new leading-letter group
// begins. Positions are strictly increasing. The zero value is an empty
// index, against which every alphabet jump is a no-op.
type AlphabetIndex struct {
	positions []int
}

// NewAlphabetIndex validates positions and wraps them in an AlphabetIndex.
func NewAlphabetIndex(positions []int) (AlphabetIndex, error) {
	for i, pos := range positions {
		if pos < 0 {
			return AlphabetIndex{}, fmt.Errorf("alphabet index position %d is negative (%d)", i, pos)
		}
		if i > 0 && pos <= positions[i-1] {
			return AlphabetIndex{}, fmt.Errorf("position %d (%d) after %d: %w", i, pos, positions[i-1], ErrUnsortedIndex)
		}
	}
	dup := make([]int, len(positions))
	copy(dup, positions)
	return AlphabetIndex{positions: dup}, nil
}

// BuildAlphabetIndex derives the index for a list of labels. Position 0
// always opens a group, a new group starts wherever the bucket of a label
// differs from its predecessor, and the last position is appended so the
// end of the list is always reachable by an ascend.
func BuildAlphabetIndex(labels []string) AlphabetIndex {
	if len(labels) == 0 {
		return AlphabetIndex{}
	}
	positions := make([]int, 0, 32)
	positions = append(positions, 0)
	prev := Bucket(labels[0])
	for i := 1; i < len(labels); i++ {
		cur := Bucket(labels[i])
		if cur != prev {
			positions = append(positions, i)
			prev = cur
		}
	}
	if last := len(labels) - 1; positions[len(positions)-1] != last {
		positions = append(positions, last)
	}
	return AlphabetIndex{positions: positions}
}

// Bucket returns the group key for a label: its upper-cased first letter,
// or OtherBucket for anything else.
func Bucket(label string) rune {
	r, _ := utf8.DecodeRuneInString(label)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return OtherBucket
	}
	return unicode.ToUpper(r)
}

// Len returns the number of group boundaries.
func (a AlphabetIndex) Len() int {
	return len(a.positions)
}

// At returns the i-th boundary.
func (a AlphabetIndex) At(i int) int {
	return a.positions[i]
}

// Positions returns a copy of the boundaries.
func (a AlphabetIndex) Positions() []int {
	if len(a.positions) == 0 {
		return nil
	}
	dup := make([]int, len(a.positions))
	copy(dup, a.positions)
	return dup
}

// Last returns the final boundary and false when the index is empty.
func (a AlphabetIndex) Last() (int, bool) {
	if len(a.positions) == 0 {
		return 0, false
	}
	return a.positions[len(a.positions)-1], true
}

// previous returns the largest boundary strictly below pos.
func (a AlphabetIndex) previous(pos int) (int, bool) {
	i := len(a.positions)
	for i > 0 && a.positions[i-1] >= pos {
		i--
	}
	if i == 0 {
		return 0, false
	}
	return a.positions[i-1], true
}

// next returns the smallest boundary strictly above pos.
func (a AlphabetIndex) next(pos int) (int, bool) {
	i := 0
	for i < len(a.positions) && a.positions[i] <= pos {
		i++
	}
	if i == len(a.positions) {
		return 0, false
	}
	return a.positions[i], true
}
