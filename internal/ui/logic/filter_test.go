package logic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pantrycrm/internal/domain"
)

func TestFilterByTitle(t *testing.T) {
	t.Parallel()

	f := NewRecordFilter()
	records := []domain.Record{
		domain.Organization{ID: "1", Name: "Riverside Hospital"},
		domain.Organization{ID: "2", Name: "Maple Grove Schools"},
	}

	matched := f.FilterRecords(records, "river")
	require.Len(t, matched, 1)
	require.Equal(t, "Riverside Hospital", matched[0].Title())
}

func TestFilterBySegmentField(t *testing.T) {
	t.Parallel()

	f := NewRecordFilter()
	records := []domain.Record{
		domain.Organization{ID: "1", Name: "Hospital", Segment: "healthcare"},
		domain.Contact{ID: "2", FirstName: "Dana", LastName: "Whitfield", Segment: "healthcare"},
		domain.Organization{ID: "3", Name: "School", Segment: "education"},
	}

	matched := f.FilterRecords(records, "segment:health")
	require.Len(t, matched, 2, "segment filter should match across kinds")
}

func TestFilterByStageOnlyMatchesOpportunities(t *testing.T) {
	t.Parallel()

	f := NewRecordFilter()
	records := []domain.Record{
		domain.Opportunity{ID: "1", Name: "Deal", Stage: domain.StageDemoScheduled},
		domain.Organization{ID: "2", Name: "Demo Org"},
	}

	matched := f.FilterRecords(records, "stage:demo")
	require.Len(t, matched, 1)
	require.Equal(t, domain.KindOpportunity, matched[0].Kind())
}

func TestFilterByPriorityExactMatch(t *testing.T) {
	t.Parallel()

	f := NewRecordFilter()
	records := []domain.Record{
		domain.Organization{ID: "1", Name: "Key Account", Priority: "A"},
		domain.Organization{ID: "2", Name: "Minor Account", Priority: "C"},
	}

	matched := f.FilterRecords(records, "priority:a")
	require.Len(t, matched, 1)
	require.Equal(t, "Key Account", matched[0].Title())
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	t.Parallel()

	f := NewRecordFilter()
	records := []domain.Record{
		domain.Organization{ID: "1", Name: "Anything"},
	}

	require.Equal(t, records, f.FilterRecords(records, ""))
}

func TestPerformSearchReturnsIndices(t *testing.T) {
	t.Parallel()

	f := NewRecordFilter()
	records := []domain.Record{
		domain.Organization{ID: "1", Name: "Riverside Hospital"},
		domain.Organization{ID: "2", Name: "Maple Grove"},
		domain.Organization{ID: "3", Name: "Harbor Light Hospital"},
	}

	matches := f.PerformSearch(records, "hospital")
	require.Equal(t, []int{0, 2}, matches)

	require.Nil(t, f.PerformSearch(records, ""))
	require.Empty(t, f.PerformSearch(records, "nothing here"))
}
