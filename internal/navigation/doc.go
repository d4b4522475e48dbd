// Package navigation implements the menu cursor: a selection index over a
// list whose size is supplied by the caller on every call, an alphabet
// index for jumping between leading-letter groups, and a driver protocol
// that tells a presentation layer what just happened.
//
// The package does no rendering and holds no references to list contents.
// Callers take a single size snapshot per operation and hand it to the
// Engine, which mutates a State and then notifies the driver it was built
// with. Drivers implement only the hooks they care about; see Driver.
//
// Alphabet jumps are two-phase: AscendAlphabet and DescendAlphabet compute a
// new position into a caller-owned variable, and the caller commits it with
// SetSelection.
//
// Nothing here is safe for concurrent use. A State belongs to one menu
// session and is mutated from the goroutine that handles input.
package navigation
