package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pantrycrm/internal/domain"
	"pantrycrm/internal/eventbus"
	"pantrycrm/internal/storage/sqlite"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo records",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	bus := eventbus.New()
	cfg := loadConfig(bus)

	db, err := sqlite.Open(databasePath(cfg))
	if err != nil {
		return err
	}
	defer db.Close()

	store := sqlite.NewStore(db)
	ctx := context.Background()

	records := demoRecords()
	for _, record := range records {
		if err := store.Insert(ctx, record); err != nil {
			return fmt.Errorf("failed to seed %s %q: %w", record.Kind(), record.Title(), err)
		}
	}

	fmt.Printf("Seeded %d records into %s\n", len(records), databasePath(cfg))
	return nil
}

func demoRecords() []domain.Record {
	orgs := []domain.Organization{
		{ID: uuid.NewString(), Name: "Riverside General Hospital", Segment: "healthcare", Priority: "A", City: "Columbus", Phone: "614-555-0134"},
		{ID: uuid.NewString(), Name: "Maple Grove Schools", Segment: "education", Priority: "B", City: "Dayton", Phone: "937-555-0188"},
		{ID: uuid.NewString(), Name: "Harbor Light Diner", Segment: "restaurant", Priority: "C", City: "Cleveland", Phone: "216-555-0107"},
		{ID: uuid.NewString(), Name: "Summit Senior Living", Segment: "healthcare", Priority: "B", City: "Akron", Phone: "330-555-0142"},
	}

	contacts := []domain.Contact{
		{ID: uuid.NewString(), FirstName: "Dana", LastName: "Whitfield", OrganizationID: orgs[0].ID, Role: "Food Service Director", Email: "dana.whitfield@riverside.example", Segment: "healthcare"},
		{ID: uuid.NewString(), FirstName: "Marcus", LastName: "Oyelaran", OrganizationID: orgs[1].ID, Role: "Purchasing Manager", Email: "m.oyelaran@maplegrove.example", Segment: "education"},
		{ID: uuid.NewString(), FirstName: "Priya", LastName: "Raman", OrganizationID: orgs[2].ID, Role: "Owner", Email: "priya@harborlight.example", Segment: "restaurant"},
	}

	products := []domain.Product{
		{ID: uuid.NewString(), Name: "Golden Harvest Flour 25lb", Principal: "Golden Harvest Mills", Category: "baking", Segment: "restaurant"},
		{ID: uuid.NewString(), Name: "Lakeshore Diced Tomatoes #10", Principal: "Lakeshore Canning", Category: "canned", Segment: "education"},
		{ID: uuid.NewString(), Name: "Prairie Creek Chicken Breast", Principal: "Prairie Creek Farms", Category: "protein", Segment: "healthcare"},
	}

	opportunities := []domain.Opportunity{
		{ID: uuid.NewString(), Name: "Riverside Q4 protein contract", OrganizationID: orgs[0].ID, Stage: domain.StageSampleVisit, Probability: 55, Segment: "healthcare"},
		{ID: uuid.NewString(), Name: "Maple Grove breakfast program", OrganizationID: orgs[1].ID, Stage: domain.StageInitialOutreach, Probability: 25, Segment: "education"},
		{ID: uuid.NewString(), Name: "Harbor Light menu refresh", OrganizationID: orgs[2].ID, Stage: domain.StageDemoScheduled, Probability: 70, Segment: "restaurant"},
	}

	now := time.Now()
	interactions := []domain.Interaction{
		{ID: uuid.NewString(), OrganizationID: orgs[0].ID, ContactID: contacts[0].ID, Type: "call", Notes: "Discussed protein pricing for Q4", OccurredAt: now.AddDate(0, 0, -3), Segment: "healthcare"},
		{ID: uuid.NewString(), OrganizationID: orgs[1].ID, ContactID: contacts[1].ID, Type: "visit", Notes: "Dropped off breakfast samples", OccurredAt: now.AddDate(0, 0, -7), Segment: "education"},
		{ID: uuid.NewString(), OrganizationID: orgs[2].ID, ContactID: contacts[2].ID, Type: "email", Notes: "Sent updated menu proposal", OccurredAt: now.AddDate(0, 0, -1), Segment: "restaurant"},
	}

	var records []domain.Record
	for _, o := range orgs {
		records = append(records, o)
	}
	for _, c := range contacts {
		records = append(records, c)
	}
	for _, p := range products {
		records = append(records, p)
	}
	for _, o := range opportunities {
		records = append(records, o)
	}
	for _, i := range interactions {
		records = append(records, i)
	}
	return records
}
