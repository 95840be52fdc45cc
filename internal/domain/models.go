package domain

import "time"

// RecordKind identifies which entity collection a record belongs to
type RecordKind string

// Record kinds
const (
	KindOrganization RecordKind = "organization"
	KindContact      RecordKind = "contact"
	KindProduct      RecordKind = "product"
	KindOpportunity  RecordKind = "opportunity"
	KindInteraction  RecordKind = "interaction"
)

// Kinds lists all record kinds in display order
func Kinds() []RecordKind {
	return []RecordKind{
		KindOrganization,
		KindContact,
		KindProduct,
		KindOpportunity,
		KindInteraction,
	}
}

// Label returns the display label for a kind
func (k RecordKind) Label() string {
	switch k {
	case KindOrganization:
		return "Organizations"
	case KindContact:
		return "Contacts"
	case KindProduct:
		return "Products"
	case KindOpportunity:
		return "Opportunities"
	case KindInteraction:
		return "Interactions"
	default:
		return string(k)
	}
}

// Record is the common interface for all CRM entities
type Record interface {
	RecordID() string
	Kind() RecordKind
	Title() string
}

// Organization represents a customer organization
type Organization struct {
	ID       string
	Name     string
	Segment  string // market segment ("" if unassigned)
	Priority string // A/B/C/D priority tier
	City     string
	Phone    string
	Archived bool
}

func (o Organization) RecordID() string { return o.ID }
func (o Organization) Kind() RecordKind { return KindOrganization }
func (o Organization) Title() string    { return o.Name }

// Contact represents a person at an organization
type Contact struct {
	ID             string
	FirstName      string
	LastName       string
	OrganizationID string
	Role           string
	Email          string
	Segment        string
	Archived       bool
}

func (c Contact) RecordID() string { return c.ID }
func (c Contact) Kind() RecordKind { return KindContact }
func (c Contact) Title() string    { return c.FirstName + " " + c.LastName }

// Product represents a sellable product
type Product struct {
	ID        string
	Name      string
	Principal string // brand/manufacturer the product belongs to
	Category  string
	Segment   string
	Archived  bool
}

func (p Product) RecordID() string { return p.ID }
func (p Product) Kind() RecordKind { return KindProduct }
func (p Product) Title() string    { return p.Name }

// Opportunity stages, in pipeline order
const (
	StageNewLead         = "new_lead"
	StageInitialOutreach = "initial_outreach"
	StageSampleVisit     = "sample_visit"
	StageAwaitingResp    = "awaiting_response"
	StageFeedback        = "feedback_logged"
	StageDemoScheduled   = "demo_scheduled"
	StageClosedWon       = "closed_won"
)

// Stages lists the pipeline stages in order
func Stages() []string {
	return []string{
		StageNewLead,
		StageInitialOutreach,
		StageSampleVisit,
		StageAwaitingResp,
		StageFeedback,
		StageDemoScheduled,
		StageClosedWon,
	}
}

// StageLabel returns the display label for a pipeline stage
func StageLabel(s string) string {
	switch s {
	case StageNewLead:
		return "New Lead"
	case StageInitialOutreach:
		return "Initial Outreach"
	case StageSampleVisit:
		return "Sample Visit"
	case StageAwaitingResp:
		return "Awaiting Response"
	case StageFeedback:
		return "Feedback Logged"
	case StageDemoScheduled:
		return "Demo Scheduled"
	case StageClosedWon:
		return "Closed Won"
	default:
		return s
	}
}

// NextStage returns the stage after s, or s itself if it is terminal
func NextStage(s string) string {
	stages := Stages()
	for i, stage := range stages {
		if stage == s && i < len(stages)-1 {
			return stages[i+1]
		}
	}
	return s
}

// Opportunity represents a sales opportunity in the pipeline
type Opportunity struct {
	ID             string
	Name           string
	OrganizationID string
	Stage          string
	Probability    int // percent
	Segment        string
	Archived       bool
}

func (o Opportunity) RecordID() string { return o.ID }
func (o Opportunity) Kind() RecordKind { return KindOpportunity }
func (o Opportunity) Title() string    { return o.Name }

// Interaction represents a logged touchpoint with an organization
type Interaction struct {
	ID             string
	OrganizationID string
	ContactID      string
	Type           string // call, email, visit, demo
	Notes          string
	OccurredAt     time.Time
	Segment        string
	Archived       bool
}

func (i Interaction) RecordID() string { return i.ID }
func (i Interaction) Kind() RecordKind { return KindInteraction }
func (i Interaction) Title() string    { return i.Type + " - " + i.Notes }
