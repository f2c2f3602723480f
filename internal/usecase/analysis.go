package usecase

import (
	"github.com/shopspring/decimal"

	"smart-reconciliation/internal/domain"
)

// materialDifference is the absolute net difference above which the
// residual imbalance is reported as significant.
var materialDifference = decimal.NewFromInt(1000)

// analyze derives the primary cause, recommendations and observations from
// a completed summary. Later cause checks override earlier ones.
func analyze(s domain.Summary) domain.Analysis {
	a := domain.Analysis{
		PrimaryCause:    domain.CauseGeneralOmission,
		Recommendations: []domain.Recommendation{},
		Observations:    []domain.Observation{},
	}

	switch {
	case s.MatchRate.GreaterThanOrEqual(excellentRate):
		a.Observations = append(a.Observations, domain.ObservationMatchRateExcellent)
	case s.MatchRate.GreaterThanOrEqual(fairRate):
		a.Observations = append(a.Observations, domain.ObservationMatchRateGood)
	default:
		a.Observations = append(a.Observations, domain.ObservationMatchRateLow)
	}

	transpositions := s.FixesByType[domain.ErrorTypeTransposition]
	dateMismatches := s.FixesByType[domain.ErrorTypeDateMismatch]

	if transpositions > 0 {
		a.PrimaryCause = domain.CauseTransposition
		a.Recommendations = append(a.Recommendations, domain.RecommendCheckDataEntry)
		a.Observations = append(a.Observations, domain.ObservationTranspositions)
	}

	// More than 10% of the matched count.
	if dateMismatches*10 > s.MatchedTransactions {
		a.PrimaryCause = domain.CauseTimingDifference
		a.Recommendations = append(a.Recommendations, domain.RecommendCheckCutOffTime)
		a.Observations = append(a.Observations, domain.ObservationDateSlip)
	}

	switch {
	case s.NetDifference.Abs().LessThanOrEqual(materialDifference):
		a.Observations = append(a.Observations, domain.ObservationBalanced)
	case s.NetDifference.IsPositive():
		a.Observations = append(a.Observations, domain.ObservationBankSurplus)
	default:
		a.Observations = append(a.Observations, domain.ObservationBookSurplus)
	}

	if s.UnexplainedBookCount > 0 && s.UnmatchedBankCount == 0 {
		a.Recommendations = append(a.Recommendations, domain.RecommendCheckDuplicates)
		a.Observations = append(a.Observations, domain.ObservationOverRecording)
	}

	a.ErrorDistribution = distribution(s, transpositions, dateMismatches)
	return a
}

func distribution(s domain.Summary, transpositions, dateMismatches int) []domain.DistributionEntry {
	all := []domain.DistributionEntry{
		{Outcome: domain.OutcomeMatched, Count: s.MatchedTransactions},
		{Outcome: domain.OutcomeTransposition, Count: transpositions},
		{Outcome: domain.OutcomeDateMismatch, Count: dateMismatches},
		{Outcome: domain.OutcomeUnmatchedBank, Count: s.UnmatchedBankCount},
		{Outcome: domain.OutcomeUnexplainedBook, Count: s.UnexplainedBookCount},
	}
	out := make([]domain.DistributionEntry, 0, len(all))
	for _, e := range all {
		if e.Count > 0 {
			out = append(out, e)
		}
	}
	return out
}
