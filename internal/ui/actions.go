package ui

import (
	"context"
	"fmt"
	"sync"

	"pantrycrm/internal/bulk"
	"pantrycrm/internal/crm"
	"pantrycrm/internal/domain"
)

// ActionSet builds the bulk actions wired to the CRM service. The set is
// re-registered whenever the displayed kind changes so per-kind
// enablement stays correct.
type ActionSet struct {
	service crm.Service

	// segment supplies the value captured by the assign-segment prompt
	segment func() string

	mu         sync.Mutex
	lastExport string
}

// NewActionSet creates the action set
func NewActionSet(service crm.Service, segment func() string) *ActionSet {
	return &ActionSet{
		service: service,
		segment: segment,
	}
}

// LastExportPath returns the path of the most recent CSV export
func (a *ActionSet) LastExportPath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastExport
}

// Actions returns the full action set for the displayed kind
func (a *ActionSet) Actions(kind domain.RecordKind) []bulk.Action {
	advanceDisabled := kind != domain.KindOpportunity

	return []bulk.Action{
		{
			ID:                   "bulk-delete",
			Label:                "Delete",
			Icon:                 "✗",
			Variant:              bulk.VariantDestructive,
			RequiresConfirmation: true,
			ConfirmationMessage:  "Permanently delete the selected records?",
			Handler:              a.deleteHandler,
		},
		{
			ID:      "bulk-archive",
			Label:   "Archive",
			Icon:    "▣",
			Variant: bulk.VariantDefault,
			Handler: a.archiveHandler,
		},
		{
			ID:      "assign-segment",
			Label:   "Assign Segment",
			Icon:    "◈",
			Variant: bulk.VariantPrimary,
			Handler: a.assignSegmentHandler,
		},
		{
			ID:      "export-csv",
			Label:   "Export CSV",
			Icon:    "⇩",
			Variant: bulk.VariantDefault,
			Handler: a.exportHandler,
		},
		{
			ID:             "advance-stage",
			Label:          "Advance Stage",
			Icon:           "▶",
			Variant:        bulk.VariantPrimary,
			Disabled:       advanceDisabled,
			DisabledReason: "only opportunities have a pipeline stage",
			Handler:        a.advanceStageHandler,
		},
	}
}

func (a *ActionSet) deleteHandler(ctx context.Context, items []bulk.Item) error {
	for kind, ids := range idsByKind(items) {
		if err := a.service.DeleteRecords(ctx, kind, ids); err != nil {
			return err
		}
	}
	return nil
}

func (a *ActionSet) archiveHandler(ctx context.Context, items []bulk.Item) error {
	for kind, ids := range idsByKind(items) {
		if err := a.service.ArchiveRecords(ctx, kind, ids); err != nil {
			return err
		}
	}
	return nil
}

func (a *ActionSet) assignSegmentHandler(ctx context.Context, items []bulk.Item) error {
	segment := a.segment()
	if segment == "" {
		return fmt.Errorf("no segment given")
	}
	for kind, ids := range idsByKind(items) {
		if err := a.service.AssignSegment(ctx, kind, ids, segment); err != nil {
			return err
		}
	}
	return nil
}

func (a *ActionSet) exportHandler(_ context.Context, items []bulk.Item) error {
	records := make([]domain.Record, 0, len(items))
	for _, item := range items {
		if item.Payload != nil {
			records = append(records, item.Payload)
		}
	}

	path, err := a.service.ExportCSV(records)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.lastExport = path
	a.mu.Unlock()
	return nil
}

func (a *ActionSet) advanceStageHandler(ctx context.Context, items []bulk.Item) error {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.Kind == domain.KindOpportunity {
			ids = append(ids, item.ID)
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("no opportunities selected")
	}
	return a.service.AdvanceStage(ctx, ids)
}

// idsByKind groups the selection snapshot into per-kind id lists,
// preserving selection order within each kind
func idsByKind(items []bulk.Item) map[domain.RecordKind][]string {
	grouped := make(map[domain.RecordKind][]string)
	for _, item := range items {
		grouped[item.Kind] = append(grouped[item.Kind], item.ID)
	}
	return grouped
}
