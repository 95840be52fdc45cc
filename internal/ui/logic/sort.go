package logic

import (
	"sort"
	"strings"

	"pantrycrm/internal/domain"
)

// SortMode represents different sort modes
type SortMode int

const (
	SortByName SortMode = iota
	SortByPriority
	SortBySegment
	SortByStage
)

// Key returns the key string used by the sort selection mode
func (m SortMode) Key() string {
	switch m {
	case SortByPriority:
		return "priority"
	case SortBySegment:
		return "segment"
	case SortByStage:
		return "stage"
	default:
		return "name"
	}
}

// SortModeForKey maps a sort key back to its mode
func SortModeForKey(key string) (SortMode, bool) {
	switch key {
	case "name", "n":
		return SortByName, true
	case "priority", "p":
		return SortByPriority, true
	case "segment", "s":
		return SortBySegment, true
	case "stage", "st":
		return SortByStage, true
	default:
		return SortByName, false
	}
}

// SortRecords sorts records in place according to the given sort mode.
// Ties fall back to the title so the order is deterministic.
func SortRecords(records []domain.Record, mode SortMode) {
	switch mode {
	case SortByPriority:
		sort.SliceStable(records, func(i, j int) bool {
			pi, pj := priorityRank(records[i]), priorityRank(records[j])
			if pi != pj {
				return pi < pj
			}
			return lessByTitle(records[i], records[j])
		})
	case SortBySegment:
		sort.SliceStable(records, func(i, j int) bool {
			si, sj := SegmentOf(records[i]), SegmentOf(records[j])
			if si != sj {
				// Unassigned segments go last
				if si == "" {
					return false
				}
				if sj == "" {
					return true
				}
				return si < sj
			}
			return lessByTitle(records[i], records[j])
		})
	case SortByStage:
		sort.SliceStable(records, func(i, j int) bool {
			si, sj := stageRank(records[i]), stageRank(records[j])
			if si != sj {
				return si < sj
			}
			return lessByTitle(records[i], records[j])
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return lessByTitle(records[i], records[j])
		})
	}
}

func lessByTitle(a, b domain.Record) bool {
	return strings.ToLower(a.Title()) < strings.ToLower(b.Title())
}

// priorityRank orders A before B before C before D; unrated goes last
func priorityRank(record domain.Record) int {
	org, ok := record.(domain.Organization)
	if !ok || org.Priority == "" {
		return 99
	}
	return int(org.Priority[0])
}

// stageRank orders opportunities by pipeline position; other kinds rank equal
func stageRank(record domain.Record) int {
	opp, ok := record.(domain.Opportunity)
	if !ok {
		return 99
	}
	for i, stage := range domain.Stages() {
		if stage == opp.Stage {
			return i
		}
	}
	return 99
}

// SegmentOf returns the segment field of any record kind
func SegmentOf(record domain.Record) string {
	switch r := record.(type) {
	case domain.Organization:
		return r.Segment
	case domain.Contact:
		return r.Segment
	case domain.Product:
		return r.Segment
	case domain.Opportunity:
		return r.Segment
	case domain.Interaction:
		return r.Segment
	}
	return ""
}
