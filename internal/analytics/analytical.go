package analytics

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"formdcli/internal/ingest"
	"formdcli/internal/normalize"
	"formdcli/pkg/contracts/domain"
)

// Builder assembles the analytical dataset. The clock is injected so age and
// recency computations are deterministic under test.
type Builder struct {
	logger            *slog.Logger
	now               time.Time
	recencyWindowDays int
}

// NewBuilder creates a builder evaluating recency against the given instant
func NewBuilder(now time.Time, recencyWindowDays int, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		logger:            logger,
		now:               now,
		recencyWindowDays: recencyWindowDays,
	}
}

// Build produces exactly one analytical record per offering row. Issuer and
// submission fields are left-joined by accession number: when several issuer
// rows carry the primary flag for one key, the first by original row order
// wins. Offerings without a matching issuer or submission keep zero values
// rather than being dropped, so row counts are conserved end to end.
func (b *Builder) Build(ctx context.Context, ds *normalize.Dataset) []domain.AnalyticalRecord {
	primaryByAccession := make(map[string]domain.Issuer, len(ds.Submissions))
	for _, iss := range ds.Issuers {
		if !iss.IsPrimary {
			continue
		}
		if _, seen := primaryByAccession[iss.AccessionNumber]; !seen {
			primaryByAccession[iss.AccessionNumber] = iss
		}
	}

	submissionByAccession := make(map[string]domain.Submission, len(ds.Submissions))
	for _, sub := range ds.Submissions {
		if _, seen := submissionByAccession[sub.AccessionNumber]; !seen {
			submissionByAccession[sub.AccessionNumber] = sub
		}
	}

	relatedCounts := countByAccession(ds.RelatedPersons)
	recipientCounts := countByAccession(ds.Recipients)

	// First pass: join, so normalized names exist for repeat-filing detection
	records := make([]domain.AnalyticalRecord, 0, len(ds.Offerings))
	nameCounts := make(map[string]int, len(ds.Offerings))
	missingIssuer, missingSubmission := 0, 0
	for _, off := range ds.Offerings {
		rec := domain.AnalyticalRecord{Offering: off}

		if iss, ok := primaryByAccession[off.AccessionNumber]; ok {
			rec.EntityName = iss.EntityName
			rec.State = iss.State
			rec.Region = iss.Region
			rec.IsUS = iss.IsUS
			rec.City = iss.City
			rec.ZipCode = iss.ZipCode
			rec.EntityType = iss.EntityType
			rec.IncorporationYear = iss.IncorporationYear
		} else {
			missingIssuer++
		}

		if sub, ok := submissionByAccession[off.AccessionNumber]; ok {
			rec.FilingDate = sub.FilingDate
			rec.DateSource = sub.DateSource
			rec.FilingYear = sub.FilingYear
			rec.FilingQuarter = sub.FilingQuarter
			if !rec.IsAmendment {
				rec.IsAmendment = sub.IsAmendment
			}
		} else {
			missingSubmission++
			rec.DateSource = domain.DateMissing
		}

		rec.NumRelatedPersons = relatedCounts[off.AccessionNumber]
		rec.HasRecipients = recipientCounts[off.AccessionNumber] > 0

		if name := rec.NormalizedName(); name != "" {
			nameCounts[name]++
		}
		records = append(records, rec)
	}

	// Second pass: signals that depend on the whole set or the clock
	followOns, active, recent := 0, 0, 0
	for i := range records {
		rec := &records[i]

		rec.EntityFilingCount = nameCounts[rec.NormalizedName()]
		rec.IsFollowOn = rec.IsAmendment || rec.EntityFilingCount > 1

		if !rec.FilingDate.IsZero() {
			rec.OfferingAgeDays = int(b.now.Sub(rec.FilingDate).Hours() / 24)
		}
		rec.IsActive = rec.TotalRemaining > 0 && !math.IsInf(rec.TotalRemaining, 0) && !math.IsNaN(rec.TotalRemaining)
		rec.IsRecent = !rec.FilingDate.IsZero() && rec.OfferingAgeDays >= 0 && rec.OfferingAgeDays <= b.recencyWindowDays

		if rec.IsFollowOn {
			followOns++
		}
		if rec.IsActive {
			active++
		}
		if rec.IsRecent {
			recent++
		}
	}

	b.logger.InfoContext(ctx, "built analytical dataset",
		"records", len(records),
		"unique_entities", len(nameCounts),
		"follow_ons", followOns,
		"active_offerings", active,
		"recent_offerings", recent,
		"missing_issuer", missingIssuer,
		"missing_submission", missingSubmission,
	)
	return records
}

// countByAccession tallies auxiliary rows per accession key. A nil table
// (absent from every period) contributes nothing.
func countByAccession(t *ingest.Table) map[string]int {
	counts := make(map[string]int)
	if t == nil {
		return counts
	}
	for i := 0; i < t.NumRows(); i++ {
		key := strings.TrimSpace(t.Value(i, "ACCESSIONNUMBER"))
		if key != "" {
			counts[key]++
		}
	}
	return counts
}
