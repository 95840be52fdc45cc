package logic

import (
	"strings"

	"pantrycrm/internal/domain"
)

// RecordFilter handles search and filter operations over a record list
type RecordFilter struct{}

// NewRecordFilter creates a new record filter
func NewRecordFilter() *RecordFilter {
	return &RecordFilter{}
}

// MatchesFilter checks if a record matches the given filter query.
// Supports field filters: segment:<value>, stage:<value>, priority:<value>.
func (f *RecordFilter) MatchesFilter(record domain.Record, filterQuery string) bool {
	if filterQuery == "" {
		return true
	}

	query := strings.ToLower(filterQuery)

	if strings.HasPrefix(query, "segment:") {
		want := strings.TrimPrefix(query, "segment:")
		return strings.Contains(strings.ToLower(SegmentOf(record)), want)
	}

	if strings.HasPrefix(query, "stage:") {
		want := strings.TrimPrefix(query, "stage:")
		opp, ok := record.(domain.Opportunity)
		if !ok {
			return false
		}
		return strings.Contains(strings.ToLower(opp.Stage), want)
	}

	if strings.HasPrefix(query, "priority:") {
		want := strings.TrimPrefix(query, "priority:")
		org, ok := record.(domain.Organization)
		if !ok {
			return false
		}
		return strings.EqualFold(org.Priority, want)
	}

	// Regular filter matches the title and the segment
	return strings.Contains(strings.ToLower(record.Title()), query) ||
		strings.Contains(strings.ToLower(SegmentOf(record)), query)
}

// FilterRecords returns the records matching the query, preserving order
func (f *RecordFilter) FilterRecords(records []domain.Record, filterQuery string) []domain.Record {
	if filterQuery == "" {
		return records
	}
	matched := make([]domain.Record, 0, len(records))
	for _, record := range records {
		if f.MatchesFilter(record, filterQuery) {
			matched = append(matched, record)
		}
	}
	return matched
}

// PerformSearch returns the display indices of records matching the query
func (f *RecordFilter) PerformSearch(records []domain.Record, query string) []int {
	if query == "" {
		return nil
	}
	lowerQuery := strings.ToLower(query)
	var matches []int
	for i, record := range records {
		if strings.Contains(strings.ToLower(record.Title()), lowerQuery) {
			matches = append(matches, i)
		}
	}
	return matches
}
