package normalize

import (
	"context"
	"strings"

	"formdcli/internal/ingest"
	"formdcli/pkg/contracts/domain"
)

// CleanSubmissions normalizes the submissions table: filing dates parse
// under the mixed-format policy with reconstruction from period metadata on
// failure, SIC codes are trimmed, and amendments are flagged from the
// submission type.
func (c *Cleaner) CleanSubmissions(ctx context.Context, t *ingest.Table) []domain.Submission {
	subs := make([]domain.Submission, 0, t.NumRows())

	parsed, reconstructed, amendments := 0, 0, 0
	for i := 0; i < t.NumRows(); i++ {
		period := rowPeriod(t, i)
		raw := t.Value(i, "FILING_DATE")

		filingDate, provenance := ParseFilingDate(raw, period)
		switch provenance {
		case domain.DateParsed:
			parsed++
		case domain.DateReconstructed:
			reconstructed++
		}

		sub := domain.Submission{
			AccessionNumber: strings.TrimSpace(t.Value(i, "ACCESSIONNUMBER")),
			SubmissionType:  strings.TrimSpace(t.Value(i, "SUBMISSIONTYPE")),
			RawFilingDate:   raw,
			FilingDate:      filingDate,
			DateSource:      provenance,
			SICCode:         strings.TrimSpace(t.Value(i, "SIC_CODE")),
			IsAmendment:     containsFold(t.Value(i, "SUBMISSIONTYPE"), "D/A"),
			Period:          period,
		}

		if provenance != domain.DateMissing {
			sub.FilingYear = filingDate.Year()
			sub.FilingMonth = int(filingDate.Month())
			sub.FilingQuarter = quarterOf(filingDate.Month())
		}
		if sub.IsAmendment {
			amendments++
		}

		subs = append(subs, sub)
	}

	c.logger.InfoContext(ctx, "cleaned submissions table",
		"rows", len(subs),
		"dates_parsed", parsed,
		"dates_reconstructed", reconstructed,
		"amendments", amendments,
	)
	return subs
}
