package service

import "github.com/buildcanada/trade-tracker/internal/model"

// AgreementStats counts agreements per status. It is a pure derived view: the
// dashboard recomputes it from the current filtered list on every request.
func AgreementStats(agreements []model.Agreement) model.Stats {
	stats := model.Stats{Total: len(agreements)}
	for _, a := range agreements {
		switch a.Status {
		case model.StatusAwaitingSponsorship:
			stats.AwaitingSponsorship++
		case model.StatusUnderNegotiation:
			stats.UnderNegotiation++
		case model.StatusAgreementReached:
			stats.AgreementReached++
		case model.StatusPartiallyImplemented:
			stats.PartiallyImplemented++
		case model.StatusImplemented:
			stats.Implemented++
		case model.StatusDeferred:
			stats.Deferred++
		}
	}
	return stats
}
