package ui

import (
	"time"

	"pantrycrm/internal/eventbus"
)

// EventMsg wraps a domain event for bubbletea
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg drives spinner animation while loading or running an action
type tickMsg time.Time

// clearStatusMsg clears the status line after a delay
type clearStatusMsg struct{}

// bulkActionMsg reports the outcome of an asynchronous bulk action
type bulkActionMsg struct {
	id    string
	count int
	err   error
}

// helpPagerMsg reports that the help pager has exited
type helpPagerMsg struct {
	err error
}

// pauseRenderingMsg suspends drawing while an external pager owns the terminal
type pauseRenderingMsg struct{}

// resumeRenderingMsg resumes drawing after the pager returns
type resumeRenderingMsg struct{}
