package model

import "time"

// AgreementStatus is the overall lifecycle status of an agreement.
type AgreementStatus string

const (
	StatusDeferred             AgreementStatus = "Deferred"
	StatusAwaitingSponsorship  AgreementStatus = "Awaiting Sponsorship"
	StatusUnderNegotiation     AgreementStatus = "Under Negotiation"
	StatusAgreementReached     AgreementStatus = "Agreement Reached"
	StatusPartiallyImplemented AgreementStatus = "Partially Implemented"
	StatusImplemented          AgreementStatus = "Implemented"
)

// AgreementStatuses lists every valid status in display order.
var AgreementStatuses = []AgreementStatus{
	StatusDeferred,
	StatusAwaitingSponsorship,
	StatusUnderNegotiation,
	StatusAgreementReached,
	StatusPartiallyImplemented,
	StatusImplemented,
}

// ValidAgreementStatus reports whether s is one of the known statuses.
func ValidAgreementStatus(s AgreementStatus) bool {
	for _, v := range AgreementStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// JurisdictionStatus is a jurisdiction's participation status within one agreement.
type JurisdictionStatus string

const (
	JurisdictionUnknown       JurisdictionStatus = "Unknown"
	JurisdictionAware         JurisdictionStatus = "Aware"
	JurisdictionConsidering   JurisdictionStatus = "Considering"
	JurisdictionEngaged       JurisdictionStatus = "Engaged"
	JurisdictionCommitted     JurisdictionStatus = "Committed"
	JurisdictionImplementing  JurisdictionStatus = "Implementing"
	JurisdictionComplete      JurisdictionStatus = "Complete"
	JurisdictionDeclined      JurisdictionStatus = "Declined"
	JurisdictionNotApplicable JurisdictionStatus = "Not Applicable"
)

// Jurisdictions is the closed set of participating governments.
var Jurisdictions = []string{
	"Alberta",
	"British Columbia",
	"Manitoba",
	"New Brunswick",
	"Newfoundland and Labrador",
	"Northwest Territories",
	"Nova Scotia",
	"Nunavut",
	"Ontario",
	"Prince Edward Island",
	"Quebec",
	"Saskatchewan",
	"Yukon",
}

// HistoryEntry records when a status change took effect. Entries are stored in
// insertion order; callers sort by date before use.
type HistoryEntry struct {
	Status      string `json:"status"`
	DateEntered string `json:"date_entered"` // YYYY-MM-DD
}

// Date parses the entry date. Bad dates come back zero so a single malformed
// row cannot take down a timeline render.
func (h HistoryEntry) Date() time.Time {
	t, err := time.Parse("2006-01-02", h.DateEntered)
	if err != nil {
		t, err = time.Parse(time.RFC3339, h.DateEntered)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

// Jurisdiction is one government's participation record on an agreement.
type Jurisdiction struct {
	Name    string             `json:"name"`
	Status  JurisdictionStatus `json:"status"`
	Notes   string             `json:"notes"`
	History []HistoryEntry     `json:"history,omitempty"`
}

// Participating reports whether the jurisdiction counts as participating:
// anything other than Declined, Not Applicable, or Unknown.
func (j Jurisdiction) Participating() bool {
	return j.Status != JurisdictionDeclined &&
		j.Status != JurisdictionNotApplicable &&
		j.Status != JurisdictionUnknown
}

// DefaultJurisdictions returns a participation record for every jurisdiction
// with status Unknown, the starting point for a new agreement.
func DefaultJurisdictions() []Jurisdiction {
	out := make([]Jurisdiction, 0, len(Jurisdictions))
	for _, name := range Jurisdictions {
		out = append(out, Jurisdiction{Name: name, Status: JurisdictionUnknown, Notes: ""})
	}
	return out
}

// Agreement is a tracked interprovincial trade initiative.
type Agreement struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Summary       string          `json:"summary"`
	Description   string          `json:"description"`
	Status        AgreementStatus `json:"status"`
	Deadline      *string         `json:"deadline"`
	SourceURL     *string         `json:"source_url"`
	LaunchDate    *string         `json:"launch_date"`
	Theme         *string         `json:"theme"`
	Jurisdictions []Jurisdiction  `json:"jurisdictions"`
	History       []HistoryEntry  `json:"agreement_history"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// DeadlineDate parses the deadline, nil when none is set.
func (a Agreement) DeadlineDate() *time.Time {
	if a.Deadline == nil || *a.Deadline == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *a.Deadline)
	if err != nil {
		return nil
	}
	return &t
}

// ThemeName returns the theme label, empty when unset.
func (a Agreement) ThemeName() string {
	if a.Theme == nil {
		return ""
	}
	return *a.Theme
}

// Stats counts agreements by status for the dashboard overview cards.
type Stats struct {
	Total                int `json:"total"`
	AwaitingSponsorship  int `json:"awaitingSponsorship"`
	UnderNegotiation     int `json:"underNegotiation"`
	AgreementReached     int `json:"agreementReached"`
	PartiallyImplemented int `json:"partiallyImplemented"`
	Implemented          int `json:"implemented"`
	Deferred             int `json:"deferred"`
}
