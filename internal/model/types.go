// Package model defines shared data structures.
package model

import "time"

// Config defines session settings.
type Config struct {
	Margin   int
	Timeout  time.Duration
	Offline  bool
	Endpoint string
	Passage  string
}

// Passage is the text the user must type, with a display-only title.
type Passage struct {
	Title string
	Body  string
}

// Result summarizes a completed session.
type Result struct {
	WordCount int
	Elapsed   time.Duration
	WPM       float64
	HasWPM    bool
	Correct   int
	Incorrect int
	Accuracy  float64
}

// CachedPassage is a passage row from the local cache.
type CachedPassage struct {
	ID        int64
	Title     string
	Body      string
	Source    string
	FetchedAt time.Time
}
