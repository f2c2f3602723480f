package domain

import "github.com/shopspring/decimal"

// ErrorType classifies why a book record failed to match its bank counterpart.
type ErrorType string

const (
	ErrorTypeTransposition ErrorType = "TRANSPOSITION" // digits swapped, e.g. 5400 -> 4500
	ErrorTypeWrongAmount   ErrorType = "WRONG_AMOUNT"
	ErrorTypeDateMismatch  ErrorType = "DATE_MISMATCH"
)

// Match notes.
const (
	NoteExact   = "exact"
	NotePartial = "partial - date drift"
)

// Match is an accepted bank/book correspondence.
type Match struct {
	Bank  BankRecord `json:"bank"`
	Book  BookRecord `json:"book"`
	Score int        `json:"score"`
	Note  string     `json:"note"`
}

// SmartFix suggests the unmatched bank record a residual book record most
// likely corresponds to, and why the two disagree.
type SmartFix struct {
	BookID        string              `json:"book_id"`
	SuggestedBank BankRecord          `json:"suggested_bank_record"`
	ErrorType     ErrorType           `json:"error_type"`
	Confidence    int                 `json:"confidence_score"`
	Reason        string              `json:"reason"`
	DiffAmount    decimal.NullDecimal `json:"diff_amount"` // bank minus book
}

// ReconciliationResult is the raw output of the matching engine.
type ReconciliationResult struct {
	Matches       []Match             `json:"matches"`
	UnmatchedBank []BankRecord        `json:"unmatched_bank"`
	UnmatchedBook []BookRecord        `json:"unmatched_book"`
	SmartFixes    map[string]SmartFix `json:"smart_fixes"` // keyed by book record ID
}

// HealthRating grades a reconciliation run by its match rate.
type HealthRating string

const (
	HealthExcellent HealthRating = "EXCELLENT"
	HealthFair      HealthRating = "FAIR"
	HealthCritical  HealthRating = "CRITICAL"
)

// Summary provides high-level statistics of the reconciliation process.
type Summary struct {
	TotalBankRecordsProcessed int               `json:"total_bank_records_processed"`
	TotalBookRecordsProcessed int               `json:"total_book_records_processed"`
	MatchedTransactions       int               `json:"matched_transactions"`
	ExactMatches              int               `json:"exact_matches"`
	PartialMatches            int               `json:"partial_matches"`
	UnmatchedBankCount        int               `json:"unmatched_bank_count"`
	UnmatchedBookCount        int               `json:"unmatched_book_count"`
	SmartFixCount             int               `json:"smart_fix_count"`
	FixesByType               map[ErrorType]int `json:"fixes_by_type"`
	UnexplainedBookCount      int               `json:"unexplained_book_count"`
	TotalMatchedAmount        decimal.Decimal   `json:"total_matched_amount"`
	UnmatchedBankAmount       decimal.Decimal   `json:"unmatched_bank_amount"`
	UnmatchedBookAmount       decimal.Decimal   `json:"unmatched_book_amount"`
	NetDifference             decimal.Decimal   `json:"net_difference"` // unmatched bank minus unmatched book
	MatchRate                 decimal.Decimal   `json:"match_rate"`     // percent of bank records matched
	Health                    HealthRating      `json:"health"`
	Analysis                  Analysis          `json:"analysis"`
}

// Cause names the most likely driver of the residual differences.
type Cause string

const (
	CauseGeneralOmission  Cause = "GENERAL_OMISSION"
	CauseTransposition    Cause = "TRANSPOSITION"
	CauseTimingDifference Cause = "TIMING_DIFFERENCE"
)

// Recommendation is a follow-up action for the accounting team.
type Recommendation string

const (
	RecommendCheckDataEntry  Recommendation = "CHECK_DATA_ENTRY"   // digit swaps at keying time
	RecommendCheckCutOffTime Recommendation = "CHECK_CUT_OFF_TIME" // timezone or posting cut-off
	RecommendCheckDuplicates Recommendation = "CHECK_DUPLICATE_ENTRIES"
)

// Observation is a finding about the run.
type Observation string

const (
	ObservationMatchRateExcellent Observation = "MATCH_RATE_EXCELLENT"
	ObservationMatchRateGood      Observation = "MATCH_RATE_GOOD"
	ObservationMatchRateLow       Observation = "MATCH_RATE_LOW"
	ObservationTranspositions     Observation = "TRANSPOSITIONS_FOUND"
	ObservationDateSlip           Observation = "DATE_SLIP"
	ObservationBankSurplus        Observation = "NET_DIFFERENCE_BANK_SURPLUS"
	ObservationBookSurplus        Observation = "NET_DIFFERENCE_BOOK_SURPLUS"
	ObservationBalanced           Observation = "NET_DIFFERENCE_BALANCED"
	ObservationOverRecording      Observation = "POSSIBLE_OVER_RECORDING"
)

// Outcome buckets for the error distribution.
const (
	OutcomeMatched         = "MATCHED"
	OutcomeTransposition   = "TRANSPOSITION_FIX"
	OutcomeDateMismatch    = "DATE_MISMATCH_FIX"
	OutcomeUnmatchedBank   = "UNMATCHED_BANK"
	OutcomeUnexplainedBook = "UNEXPLAINED_BOOK"
)

// DistributionEntry counts the records that ended in one outcome.
type DistributionEntry struct {
	Outcome string `json:"outcome"`
	Count   int    `json:"count"`
}

// Analysis interprets the summary counts.
type Analysis struct {
	PrimaryCause      Cause               `json:"primary_cause"`
	Recommendations   []Recommendation    `json:"recommendations"`
	Observations      []Observation       `json:"observations"`
	ErrorDistribution []DistributionEntry `json:"error_distribution"` // non-zero outcomes only
}

// ReconciliationReport is the top-level structure for the final JSON output.
type ReconciliationReport struct {
	RunID   string  `json:"run_id"`
	Summary Summary `json:"reconciliation_summary"`
	ReconciliationResult
}
