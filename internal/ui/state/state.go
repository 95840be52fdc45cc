package state

import (
	"pantrycrm/internal/domain"
)

// AppState contains all the application state
type AppState struct {
	// Record data, keyed by kind in display order
	Records map[domain.RecordKind][]domain.Record

	// Which kind is currently displayed
	CurrentKind domain.RecordKind

	// Cursor and viewport
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int

	// Operation states
	Loading       bool
	RunningAction string // id of the bulk action in flight, "" when idle

	// UI state
	ShowDetail      bool
	DetailContent   string
	StatusMessage   string
	PendingActionID string // action awaiting confirmation
	PendingSegment  string // segment captured from the assign-segment prompt
	ConfirmMessage  string // prompt shown while awaiting confirmation

	// Search and filter state
	SearchQuery     string
	SearchMatches   []int
	SearchIndex     int
	SortOptionIndex int
	FilterQuery     string
	IsFiltered      bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Records:        make(map[domain.RecordKind][]domain.Record),
		CurrentKind:    domain.KindOrganization,
		ViewportHeight: 20, // Default
	}
}

// SetRecords replaces the records for a kind
func (s *AppState) SetRecords(kind domain.RecordKind, records []domain.Record) {
	s.Records[kind] = records
}

// CurrentRecords returns the records for the displayed kind
func (s *AppState) CurrentRecords() []domain.Record {
	return s.Records[s.CurrentKind]
}

// RecordAt returns the record at the given display index
func (s *AppState) RecordAt(index int) (domain.Record, bool) {
	records := s.CurrentRecords()
	if index < 0 || index >= len(records) {
		return nil, false
	}
	return records[index], true
}

// RemoveRecords drops the given ids from the displayed list
func (s *AppState) RemoveRecords(kind domain.RecordKind, ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := make([]domain.Record, 0, len(s.Records[kind]))
	for _, record := range s.Records[kind] {
		if !drop[record.RecordID()] {
			kept = append(kept, record)
		}
	}
	s.Records[kind] = kept
}

// SwitchKind changes the displayed kind and resets cursor state
func (s *AppState) SwitchKind(kind domain.RecordKind) {
	if kind == s.CurrentKind {
		return
	}
	s.CurrentKind = kind
	s.SelectedIndex = 0
	s.ViewportOffset = 0
	s.SearchMatches = nil
	s.SearchIndex = 0
}

// ClampSelection keeps the cursor within the displayed list
func (s *AppState) ClampSelection() {
	max := len(s.CurrentRecords()) - 1
	if s.SelectedIndex > max {
		s.SelectedIndex = max
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}
