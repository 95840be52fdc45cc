package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pantrycrm/internal/domain"
)

// ErrNotFound is returned when a record id does not exist
var ErrNotFound = errors.New("record not found")

// Store provides CRUD and set operations over all record collections
type Store struct {
	db *sql.DB
}

// NewStore creates a store over an open database handle
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// tableFor maps a record kind to its table
func tableFor(kind domain.RecordKind) (string, error) {
	switch kind {
	case domain.KindOrganization:
		return "organizations", nil
	case domain.KindContact:
		return "contacts", nil
	case domain.KindProduct:
		return "products", nil
	case domain.KindOpportunity:
		return "opportunities", nil
	case domain.KindInteraction:
		return "interactions", nil
	default:
		return "", fmt.Errorf("unknown record kind %q", kind)
	}
}

// placeholders builds a "?, ?, ?" list for an IN clause
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// List returns all non-archived records of a kind, ordered by name
func (s *Store) List(ctx context.Context, kind domain.RecordKind) ([]domain.Record, error) {
	switch kind {
	case domain.KindOrganization:
		return s.listOrganizations(ctx)
	case domain.KindContact:
		return s.listContacts(ctx)
	case domain.KindProduct:
		return s.listProducts(ctx)
	case domain.KindOpportunity:
		return s.listOpportunities(ctx)
	case domain.KindInteraction:
		return s.listInteractions(ctx)
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
}

func (s *Store) listOrganizations(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, segment, priority, city, phone, archived
		 FROM organizations WHERE archived = 0 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	var result []domain.Record
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.Segment, &o.Priority, &o.City, &o.Phone, &o.Archived); err != nil {
			return nil, fmt.Errorf("failed to scan organization: %w", err)
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (s *Store) listContacts(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, first_name, last_name, organization_id, role, email, segment, archived
		 FROM contacts WHERE archived = 0 ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var result []domain.Record
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.OrganizationID, &c.Role, &c.Email, &c.Segment, &c.Archived); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (s *Store) listProducts(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, principal, category, segment, archived
		 FROM products WHERE archived = 0 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var result []domain.Record
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Principal, &p.Category, &p.Segment, &p.Archived); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (s *Store) listOpportunities(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, organization_id, stage, probability, segment, archived
		 FROM opportunities WHERE archived = 0 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	var result []domain.Record
	for rows.Next() {
		var o domain.Opportunity
		if err := rows.Scan(&o.ID, &o.Name, &o.OrganizationID, &o.Stage, &o.Probability, &o.Segment, &o.Archived); err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (s *Store) listInteractions(ctx context.Context) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, organization_id, contact_id, type, notes, occurred_at, segment, archived
		 FROM interactions WHERE archived = 0 ORDER BY occurred_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	var result []domain.Record
	for rows.Next() {
		var i domain.Interaction
		if err := rows.Scan(&i.ID, &i.OrganizationID, &i.ContactID, &i.Type, &i.Notes, &i.OccurredAt, &i.Segment, &i.Archived); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		result = append(result, i)
	}
	return result, rows.Err()
}

// Insert persists a new record
func (s *Store) Insert(ctx context.Context, record domain.Record) error {
	var err error
	switch r := record.(type) {
	case domain.Organization:
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO organizations (id, name, segment, priority, city, phone, archived)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.Segment, r.Priority, r.City, r.Phone, r.Archived)
	case domain.Contact:
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO contacts (id, first_name, last_name, organization_id, role, email, segment, archived)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.FirstName, r.LastName, r.OrganizationID, r.Role, r.Email, r.Segment, r.Archived)
	case domain.Product:
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO products (id, name, principal, category, segment, archived)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.Principal, r.Category, r.Segment, r.Archived)
	case domain.Opportunity:
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO opportunities (id, name, organization_id, stage, probability, segment, archived)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.OrganizationID, r.Stage, r.Probability, r.Segment, r.Archived)
	case domain.Interaction:
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO interactions (id, organization_id, contact_id, type, notes, occurred_at, segment, archived)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.OrganizationID, r.ContactID, r.Type, r.Notes, r.OccurredAt, r.Segment, r.Archived)
	default:
		return fmt.Errorf("unknown record type %T", record)
	}
	if err != nil {
		return fmt.Errorf("failed to insert %s: %w", record.Kind(), err)
	}
	return nil
}

// DeleteMany removes the given ids of one kind in a single transaction
func (s *Store) DeleteMany(ctx context.Context, kind domain.RecordKind, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf("DELETE FROM %s WHERE id IN (%s)", table, placeholders(len(ids)))
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	return tx.Commit()
}

// UpdateSegment sets the segment for the given ids of one kind
func (s *Store) UpdateSegment(ctx context.Context, kind domain.RecordKind, ids []string, segment string) error {
	if len(ids) == 0 {
		return nil
	}
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	args := make([]any, 0, len(ids)+1)
	args = append(args, segment)
	for _, id := range ids {
		args = append(args, id)
	}

	query := fmt.Sprintf("UPDATE %s SET segment = ? WHERE id IN (%s)", table, placeholders(len(ids)))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update segment on %s: %w", table, err)
	}
	return nil
}

// Archive soft-deletes the given ids of one kind
func (s *Store) Archive(ctx context.Context, kind domain.RecordKind, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf("UPDATE %s SET archived = 1 WHERE id IN (%s)", table, placeholders(len(ids)))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to archive on %s: %w", table, err)
	}
	return nil
}

// AdvanceStage moves each opportunity to the next pipeline stage.
// Terminal-stage opportunities are left where they are. All rows move
// in one transaction.
func (s *Store) AdvanceStage(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		var stage string
		err := tx.QueryRowContext(ctx, "SELECT stage FROM opportunities WHERE id = ?", id).Scan(&stage)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: opportunity %q", ErrNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("failed to read stage for %q: %w", id, err)
		}

		next := domain.NextStage(stage)
		if next == stage {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE opportunities SET stage = ? WHERE id = ?", next, id); err != nil {
			return fmt.Errorf("failed to advance stage for %q: %w", id, err)
		}
	}

	return tx.Commit()
}

// Get fetches one record by kind and id
func (s *Store) Get(ctx context.Context, kind domain.RecordKind, id string) (domain.Record, error) {
	records, err := s.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.RecordID() == id {
			return record, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
}
