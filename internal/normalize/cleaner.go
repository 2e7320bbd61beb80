package normalize

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"formdcli/internal/config"
	"formdcli/internal/ingest"
	"formdcli/pkg/contracts/domain"
)

// Cleaner converts consolidated raw tables into typed, analysis-ready
// records, one routine per table. Mapping tables are supplied at
// construction and never mutated.
type Cleaner struct {
	mappings config.Mappings
	amounts  AmountParser
	logger   *slog.Logger
}

// NewCleaner creates a cleaner over the given mapping tables
func NewCleaner(mappings config.Mappings, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		mappings: mappings,
		amounts:  NewAmountParser(mappings.IndefiniteValues),
		logger:   logger,
	}
}

// Dataset holds the cleaned tables plus the auxiliary tables passed through
// untouched; the join stage consumes auxiliaries only as aggregates.
type Dataset struct {
	Submissions []domain.Submission
	Issuers     []domain.Issuer
	Offerings   []domain.Offering

	RelatedPersons *ingest.Table
	Recipients     *ingest.Table
	Signatures     *ingest.Table
}

// CleanAll cleans every consolidated table. Submissions go first because the
// offerings cleaner joins their SIC codes; issuers and offerings then clean
// concurrently, since rows carry no cross-table dependencies beyond that.
func (c *Cleaner) CleanAll(ctx context.Context, tables map[string]*ingest.Table) (*Dataset, error) {
	for _, required := range []string{ingest.TableSubmissions, ingest.TableIssuers, ingest.TableOfferings} {
		if tables[required] == nil {
			return nil, fmt.Errorf("required table %s not present in consolidated set", required)
		}
	}

	ds := &Dataset{
		RelatedPersons: tables[ingest.TableRelatedPersons],
		Recipients:     tables[ingest.TableRecipients],
		Signatures:     tables[ingest.TableSignatures],
	}

	ds.Submissions = c.CleanSubmissions(ctx, tables[ingest.TableSubmissions])

	sicByAccession := make(map[string]string, len(ds.Submissions))
	for _, s := range ds.Submissions {
		if s.SICCode != "" {
			sicByAccession[s.AccessionNumber] = s.SICCode
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ds.Issuers = c.CleanIssuers(gctx, tables[ingest.TableIssuers])
		return nil
	})
	g.Go(func() error {
		ds.Offerings = c.CleanOfferings(gctx, tables[ingest.TableOfferings], sicByAccession)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ds, nil
}

// rowPeriod reads the period metadata columns tagged during consolidation
func rowPeriod(t *ingest.Table, row int) domain.Period {
	year, _ := strconv.Atoi(t.Value(row, ingest.ColDataYear))
	quarter, _ := strconv.Atoi(t.Value(row, ingest.ColDataQuarter))
	return domain.Period{Year: year, Quarter: quarter}
}
