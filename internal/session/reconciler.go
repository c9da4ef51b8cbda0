package session

import (
	"errors"
	"time"
)

// ErrEmptyLineSet reports an attempt to reconcile against no lines.
var ErrEmptyLineSet = errors.New("line set is empty")

// Mark classifies a passage position for rendering.
type Mark uint8

// Position marks.
const (
	MarkNeutral Mark = iota
	MarkCorrect
	MarkIncorrect
)

// Outcome reports what a key event did to the reconciler.
type Outcome uint8

// Key event outcomes.
const (
	OutcomeIgnored Outcome = iota
	OutcomeMatch
	OutcomeMismatch
	OutcomeComplete
)

// Reconciler is the typing state machine. It tracks a (line, column)
// cursor over wrapped lines, classifies each keystroke against the
// expected character, and only advances on a correct match. The cursor
// and per-line input buffers are owned exclusively by this type.
type Reconciler struct {
	lines [][]rune
	typed [][]rune
	marks [][]Mark

	line int
	col  int

	correct   int
	incorrect int

	clock Clock
}

// NewReconciler builds a reconciler over wrapped lines. An empty line
// set has no reachable terminal state and is rejected.
func NewReconciler(lines []string) (*Reconciler, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyLineSet
	}
	r := &Reconciler{}
	r.setLines(lines)
	return r, nil
}

func (r *Reconciler) setLines(lines []string) {
	r.lines = make([][]rune, len(lines))
	r.typed = make([][]rune, len(lines))
	r.marks = make([][]Mark, len(lines))
	for i, line := range lines {
		runes := []rune(line)
		r.lines[i] = runes
		r.typed[i] = make([]rune, 0, len(runes))
		r.marks[i] = make([]Mark, len(runes))
	}
	r.line = 0
	r.col = 0
}

func printable(r rune) bool {
	return r >= ' ' && r <= '~'
}

// KeyPress consumes one printable key event. The first event of a
// session starts the clock regardless of correctness. A match marks the
// position correct and advances the cursor, rolling over to the next
// line at a line end; a mismatch marks the position incorrect and
// leaves the cursor in place. Control codes and events after
// completion are ignored.
func (r *Reconciler) KeyPress(c rune) Outcome {
	if r.Done() || !printable(c) {
		return OutcomeIgnored
	}
	r.clock.Start()

	// A cross-line backspace parks the cursor one past the end of a
	// fully typed line; that boundary is the same logical position as
	// the start of the next line.
	if r.col == len(r.lines[r.line]) {
		r.line++
		r.col = 0
	}

	expected := r.lines[r.line][r.col]
	if c != expected {
		r.marks[r.line][r.col] = MarkIncorrect
		r.incorrect++
		return OutcomeMismatch
	}

	r.marks[r.line][r.col] = MarkCorrect
	r.typed[r.line] = append(r.typed[r.line], c)
	r.correct++
	r.col++
	if r.col == len(r.lines[r.line]) {
		r.line++
		r.col = 0
	}
	if r.Done() {
		r.clock.Stop()
		return OutcomeComplete
	}
	return OutcomeMatch
}

// Backspace retreats the cursor by one accepted character. At column
// zero it crosses back to the end of the previous line's input buffer;
// at the origin it is a no-op. Like KeyPress, it counts as the first
// key event for clock purposes.
func (r *Reconciler) Backspace() {
	if r.Done() {
		return
	}
	r.clock.Start()

	if r.col > 0 {
		// A pending mismatch highlight at the current column would
		// otherwise be stranded ahead of the cursor.
		if r.col < len(r.marks[r.line]) {
			r.marks[r.line][r.col] = MarkNeutral
		}
		r.col--
		r.typed[r.line] = r.typed[r.line][:r.col]
		r.marks[r.line][r.col] = MarkNeutral
		return
	}
	if r.line > 0 {
		if len(r.marks[r.line]) > 0 {
			r.marks[r.line][0] = MarkNeutral
		}
		// Cross-line backspace moves to the end of the previous
		// line's input without deleting anything yet.
		r.line--
		r.col = len(r.typed[r.line])
	}
}

// Done reports whether every character of every line has been matched.
func (r *Reconciler) Done() bool {
	return r.line == len(r.lines)
}

// Cursor returns the current (line, column) position.
func (r *Reconciler) Cursor() (line, col int) {
	return r.line, r.col
}

// Lines returns the wrapped lines under reconciliation.
func (r *Reconciler) Lines() []string {
	out := make([]string, len(r.lines))
	for i, runes := range r.lines {
		out[i] = string(runes)
	}
	return out
}

// MarkAt returns the render mark for a position.
func (r *Reconciler) MarkAt(line, col int) Mark {
	return r.marks[line][col]
}

// Progress returns the matched and total character counts across lines.
func (r *Reconciler) Progress() (matched, total int) {
	for i := range r.lines {
		total += len(r.lines[i])
		matched += len(r.typed[i])
	}
	return matched, total
}

// Counters returns the accepted and rejected keystroke totals.
func (r *Reconciler) Counters() (correct, incorrect int) {
	return r.correct, r.incorrect
}

// Started reports whether the session clock has started.
func (r *Reconciler) Started() bool {
	return r.clock.Started()
}

// Running returns the time since the first key event.
func (r *Reconciler) Running() time.Duration {
	return r.clock.Running()
}

// Elapsed returns the measured duration once the session completed.
func (r *Reconciler) Elapsed() (time.Duration, error) {
	return r.clock.Elapsed()
}

// Rewrap rebinds the reconciler to a new wrapping of the same passage,
// carrying progress forward. Because words are never split, the count
// of matched non-space characters identifies the same prefix in any
// wrapping; joining spaces inside the replayed prefix are re-marked
// correct. Keystroke counters and the clock are untouched.
func (r *Reconciler) Rewrap(lines []string) error {
	if len(lines) == 0 {
		return ErrEmptyLineSet
	}
	progress := 0
	for _, line := range r.typed {
		for _, c := range line {
			if c != ' ' {
				progress++
			}
		}
	}

	r.setLines(lines)
	for progress > 0 && !r.Done() {
		c := r.lines[r.line][r.col]
		if c != ' ' {
			progress--
		}
		r.marks[r.line][r.col] = MarkCorrect
		r.typed[r.line] = append(r.typed[r.line], c)
		r.col++
		if r.col == len(r.lines[r.line]) {
			r.line++
			r.col = 0
		}
	}
	if r.Done() {
		r.clock.Stop()
	}
	return nil
}
