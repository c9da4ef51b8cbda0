package session

import (
	"errors"
	"strings"
	"time"

	"github.com/JackRKennedy/terminal-typing/internal/model"
)

// ErrZeroElapsed reports a WPM request for a session with no measurable duration.
var ErrZeroElapsed = errors.New("elapsed time is zero")

// WordCount counts whitespace-delimited tokens in the original passage.
func WordCount(passage string) int {
	return len(strings.Fields(passage))
}

// WPM computes words per minute for a word count over an elapsed time.
// A non-positive elapsed time is rejected rather than producing Inf.
func WPM(wordCount int, elapsed time.Duration) (float64, error) {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		return 0, ErrZeroElapsed
	}
	return float64(wordCount) / seconds * 60, nil
}

// BuildResult derives the final session result from the pre-wrap
// passage, the measured duration, and the keystroke counters.
func BuildResult(passage string, elapsed time.Duration, correct, incorrect int) model.Result {
	res := model.Result{
		WordCount: WordCount(passage),
		Elapsed:   elapsed,
		Correct:   correct,
		Incorrect: incorrect,
	}
	if wpm, err := WPM(res.WordCount, elapsed); err == nil {
		res.WPM = wpm
		res.HasWPM = true
	}
	if total := correct + incorrect; total > 0 {
		res.Accuracy = float64(correct) / float64(total)
	}
	return res
}
