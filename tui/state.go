// Package tui provides the interactive player screen.
package tui

type state int

const (
	playerState state = iota
	queueState
	errorState
)
