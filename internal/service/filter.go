package service

import (
	"math"
	"strings"
	"time"

	"github.com/buildcanada/trade-tracker/internal/model"
)

// DeadlineType classifies an agreement's deadline urgency.
type DeadlineType string

const (
	DeadlineOverdue DeadlineType = "Overdue"
	DeadlineDueSoon DeadlineType = "Due Soon (30 days)"
	DeadlineOnTrack DeadlineType = "On Track"
	DeadlineNone    DeadlineType = "No Deadline"
)

// DeadlineTypes lists the buckets in display order.
var DeadlineTypes = []DeadlineType{
	DeadlineOverdue,
	DeadlineDueSoon,
	DeadlineOnTrack,
	DeadlineNone,
}

// Filters is the facet selection from the dashboard panel. An empty facet
// matches everything; selections within one facet are OR'd, facets are AND'd.
type Filters struct {
	Statuses      []model.AgreementStatus
	DeadlineTypes []DeadlineType
	Jurisdictions []string
	Themes        []string
}

// Empty reports whether no facet is selected.
func (f Filters) Empty() bool {
	return len(f.Statuses) == 0 && len(f.DeadlineTypes) == 0 &&
		len(f.Jurisdictions) == 0 && len(f.Themes) == 0
}

// DaysUntilDeadline returns ceil((deadline - now) / 24h), or false when the
// agreement has no deadline.
func DaysUntilDeadline(a model.Agreement, now time.Time) (int, bool) {
	d := a.DeadlineDate()
	if d == nil {
		return 0, false
	}
	diff := d.Sub(now).Hours() / 24
	return int(math.Ceil(diff)), true
}

// DeadlineBucket classifies an agreement into exactly one deadline bucket.
// An implemented agreement with a past deadline is On Track, never Overdue:
// once implemented, the deadline reads as a completion date.
func DeadlineBucket(a model.Agreement, now time.Time) DeadlineType {
	days, ok := DaysUntilDeadline(a, now)
	if !ok {
		return DeadlineNone
	}
	switch {
	case days < 0 && a.Status != model.StatusImplemented:
		return DeadlineOverdue
	case days < 0:
		return DeadlineOnTrack
	case days <= 30:
		return DeadlineDueSoon
	default:
		return DeadlineOnTrack
	}
}

// FilterAgreements applies the facet filters and the free-text title search.
// With no facets selected and an empty search it returns the input unchanged.
func FilterAgreements(agreements []model.Agreement, f Filters, search string, now time.Time) []model.Agreement {
	search = strings.TrimSpace(search)
	if f.Empty() && search == "" {
		return agreements
	}

	filtered := make([]model.Agreement, 0, len(agreements))
	for _, a := range agreements {
		if !matchesFilters(a, f, now) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(search)) {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered
}

func matchesFilters(a model.Agreement, f Filters, now time.Time) bool {
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, a.Status) {
		return false
	}
	if len(f.DeadlineTypes) > 0 && !containsDeadline(f.DeadlineTypes, DeadlineBucket(a, now)) {
		return false
	}
	if len(f.Jurisdictions) > 0 && !anyParticipating(a.Jurisdictions, f.Jurisdictions) {
		return false
	}
	if len(f.Themes) > 0 && !containsString(f.Themes, a.ThemeName()) {
		return false
	}
	return true
}

// anyParticipating reports whether at least one selected jurisdiction appears
// on the agreement with a participating status.
func anyParticipating(records []model.Jurisdiction, selected []string) bool {
	for _, j := range records {
		if containsString(selected, j.Name) && j.Participating() {
			return true
		}
	}
	return false
}

// UniqueThemes extracts the sorted set of non-empty theme names in use.
func UniqueThemes(agreements []model.Agreement) []string {
	seen := make(map[string]bool)
	var themes []string
	for _, a := range agreements {
		name := strings.TrimSpace(a.ThemeName())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		themes = append(themes, name)
	}
	sortStrings(themes)
	return themes
}

func containsStatus(set []model.AgreementStatus, s model.AgreementStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsDeadline(set []DeadlineType, d DeadlineType) bool {
	for _, v := range set {
		if v == d {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func sortStrings(s []string) {
	for i := 0; i < len(s)-1; i++ {
		for j := i + 1; j < len(s); j++ {
			if s[j] < s[i] {
				s[i], s[j] = s[j], s[i]
			}
		}
	}
}
