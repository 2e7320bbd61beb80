package normalize

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formdcli/internal/config"
	"formdcli/internal/ingest"
	"formdcli/internal/shared/testutil"
	"formdcli/pkg/contracts/domain"
)

func newTestTable(name string, columns []string, rows ...[]string) *ingest.Table {
	t := ingest.NewTable(name, append(columns, ingest.ColDataYear, ingest.ColDataQuarter, ingest.ColDataPeriod))
	for _, row := range rows {
		t.AppendRow(append(row, "2024", "3", "2024Q3"))
	}
	return t
}

func testCleaner(t *testing.T) *Cleaner {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCleaner(config.DefaultMappings(), logger)
}

func TestCleanSubmissions(t *testing.T) {
	table := newTestTable(ingest.TableSubmissions,
		[]string{"ACCESSIONNUMBER", "SUBMISSIONTYPE", "FILING_DATE", "SIC_CODE"},
		[]string{"0001-24-000001", "D", "15-AUG-2024", " 7372 "},
		[]string{"0001-24-000002", "D/A", "", "6022"},
	)

	subs := testCleaner(t).CleanSubmissions(context.Background(), table)
	require.Len(t, subs, 2)

	first := subs[0]
	assert.Equal(t, "0001-24-000001", first.AccessionNumber)
	assert.Equal(t, domain.DateParsed, first.DateSource)
	assert.Equal(t, time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), first.FilingDate)
	assert.Equal(t, 2024, first.FilingYear)
	assert.Equal(t, 3, first.FilingQuarter)
	assert.Equal(t, "7372", first.SICCode)
	assert.False(t, first.IsAmendment)

	second := subs[1]
	assert.True(t, second.IsAmendment)
	assert.Equal(t, domain.DateReconstructed, second.DateSource)
	assert.Equal(t, time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), second.FilingDate)
	assert.Equal(t, domain.Period{Year: 2024, Quarter: 3}, second.Period)
}

func TestCleanIssuersRegionsAndFlags(t *testing.T) {
	table := newTestTable(ingest.TableIssuers,
		[]string{"ACCESSIONNUMBER", "ENTITYNAME", "STATEORCOUNTRY", "CITY", "ZIPCODE", "ENTITYTYPE", "YEAROFINC_VALUE_ENTERED", "IS_PRIMARYISSUER_FLAG"},
		[]string{"A1", "  Acme Robotics Inc  ", "ca", "San Francisco", "94105", "Corporation", "2019", "YES"},
		[]string{"A1", "Acme Robotics Holdings LLC", "X0", "London", "", "Limited Liability Company (LLC)", "", "NO"},
		[]string{"A2", "Beta Partners LP", "NY", "New York", "10001", "Limited Partnership", "2021", "Yes"},
	)

	issuers := testCleaner(t).CleanIssuers(context.Background(), table)
	require.Len(t, issuers, 3)

	assert.Equal(t, "Acme Robotics Inc", issuers[0].EntityName)
	assert.Equal(t, "CA", issuers[0].State)
	assert.Equal(t, "West Coast", issuers[0].Region)
	assert.True(t, issuers[0].IsUS)
	assert.True(t, issuers[0].IsPrimary)
	assert.True(t, issuers[0].IsCorporation)
	assert.Equal(t, 2019, issuers[0].IncorporationYear)

	assert.Equal(t, InternationalRegion, issuers[1].Region)
	assert.False(t, issuers[1].IsUS)
	assert.True(t, issuers[1].IsLLC)
	assert.False(t, issuers[1].IsPrimary)

	// The primary flag is an exact match, so "Yes" does not count
	assert.False(t, issuers[2].IsPrimary)
	assert.True(t, issuers[2].IsPartnership)
}

func TestCleanOfferings(t *testing.T) {
	table := newTestTable(ingest.TableOfferings,
		[]string{
			"ACCESSIONNUMBER", "INDUSTRYGROUPTYPE", "INVESTMENTFUNDTYPE",
			"TOTALOFFERINGAMOUNT", "TOTALAMOUNTSOLD", "TOTALREMAINING",
			"ISEQUITYTYPE", "ISDEBTTYPE", "ISPOOLEDINVESTMENTFUNDTYPE",
			"TOTALNUMBERALREADYINVESTED", "HASNONACCREDITEDINVESTORS", "NUMBERNONACCREDITEDINVESTORS",
			"SALESCOMM_DOLLARAMOUNT", "FINDERSFEE_DOLLARAMOUNT",
			"ISAMENDMENT", "PREVIOUSACCESSIONNUMBER",
			"SALE_DATE", "YETTOOCCUR", "MORETHANONEYEAR",
			"FEDERALEXEMPTIONS_ITEMS_LIST",
		},
		[]string{
			"A1", "Other", "",
			"10,000,000", "4,000,000", "6,000,000",
			"true", "false", "false",
			"12", "false", "0",
			"250000", "0",
			"false", "",
			"2024-07-01", "false", "true",
			"06b",
		},
		[]string{
			"A2", "Pooled Investment Fund", "Venture Capital Fund",
			"Indefinite", "0", "Indefinite",
			"false", "false", "true",
			"0", "false", "0",
			"0", "0",
			"true", "0001-24-000099",
			"", "true", "false",
			"06c",
		},
	)

	sicByAccession := map[string]string{"A1": "7374"}
	offerings := testCleaner(t).CleanOfferings(context.Background(), table, sicByAccession)
	require.Len(t, offerings, 2)

	op := offerings[0]
	// Industry "Other" falls through to the SIC lookup joined from submissions
	assert.Equal(t, "Data & Analytics", op.Sector)
	assert.False(t, op.IsFund)
	assert.Equal(t, "N/A", op.FundType)
	assert.Equal(t, 10_000_000.0, op.TotalOfferingAmount)
	assert.Equal(t, 4_000_000.0, op.TotalAmountSold)
	assert.InDelta(t, 40.0, op.FundraisingPct, 1e-9)
	assert.Equal(t, "Series B ($10-25M)", op.DealSizeCategory)
	assert.True(t, op.IsEquity)
	assert.Equal(t, 12, op.TotalInvestors)
	assert.InDelta(t, 1.2, op.InvestorDiversity, 1e-9)
	assert.True(t, op.HasPlacementAgent)
	assert.True(t, op.Has506B)
	assert.False(t, op.Has506C)
	assert.True(t, op.HasRegD)
	assert.Equal(t, "7374", op.SICCode)

	fund := offerings[1]
	assert.True(t, fund.IsFund)
	assert.Equal(t, "Venture Capital Fund", fund.FundType)
	assert.Equal(t, "Investment Fund", fund.Sector)
	assert.True(t, math.IsInf(fund.TotalOfferingAmount, 1))
	assert.True(t, math.IsInf(fund.TotalRemaining, 1))
	assert.Equal(t, UnknownDealSize, fund.DealSizeCategory)
	assert.True(t, math.IsNaN(fund.FundraisingPct))
	assert.True(t, fund.IsAmendment)
	assert.Equal(t, "0001-24-000099", fund.PreviousAccession)
	assert.True(t, fund.SaleDate.IsZero())
	assert.True(t, fund.SaleYetToOccur)
	assert.True(t, fund.Has506C)
	assert.False(t, fund.HasPlacementAgent)
}

func TestCleanAll(t *testing.T) {
	tables := map[string]*ingest.Table{
		ingest.TableSubmissions: newTestTable(ingest.TableSubmissions,
			[]string{"ACCESSIONNUMBER", "SUBMISSIONTYPE", "FILING_DATE", "SIC_CODE"},
			[]string{"A1", "D", "2024-08-15", "6022"},
		),
		ingest.TableIssuers: newTestTable(ingest.TableIssuers,
			[]string{"ACCESSIONNUMBER", "ENTITYNAME", "STATEORCOUNTRY", "CITY", "ZIPCODE", "ENTITYTYPE", "YEAROFINC_VALUE_ENTERED", "IS_PRIMARYISSUER_FLAG"},
			[]string{"A1", "Gamma Payments Inc", "NY", "New York", "10001", "Corporation", "2020", "YES"},
		),
		ingest.TableOfferings: newTestTable(ingest.TableOfferings,
			[]string{"ACCESSIONNUMBER", "INDUSTRYGROUPTYPE", "TOTALOFFERINGAMOUNT", "TOTALAMOUNTSOLD", "TOTALREMAINING"},
			[]string{"A1", "Novel Industry", "5000000", "1000000", "4000000"},
		),
		ingest.TableRelatedPersons: newTestTable(ingest.TableRelatedPersons,
			[]string{"ACCESSIONNUMBER", "LASTNAME"},
			[]string{"A1", "Smith"},
		),
	}

	ds, err := testCleaner(t).CleanAll(context.Background(), tables)
	require.NoError(t, err)

	require.Len(t, ds.Submissions, 1)
	require.Len(t, ds.Issuers, 1)
	require.Len(t, ds.Offerings, 1)
	assert.NotNil(t, ds.RelatedPersons)
	assert.Nil(t, ds.Recipients)

	// SIC codes flow from submissions into the offerings sector lookup
	assert.Equal(t, "Fintech", ds.Offerings[0].Sector)
	assert.Equal(t, "6022", ds.Offerings[0].SICCode)
}

func TestCleanSubmissionsSummaryLogging(t *testing.T) {
	logger, captured := testutil.NewLogger()
	c := NewCleaner(config.DefaultMappings(), logger)

	table := newTestTable(ingest.TableSubmissions,
		[]string{"ACCESSIONNUMBER", "SUBMISSIONTYPE", "FILING_DATE", "SIC_CODE"},
		[]string{"A1", "D", "2024-08-15", ""},
		[]string{"A2", "D/A", "", ""},
	)
	c.CleanSubmissions(context.Background(), table)

	require.True(t, captured.ContainsMessage(slog.LevelInfo, "cleaned submissions table"))
	amendments, ok := captured.Attr("cleaned submissions table", "amendments")
	require.True(t, ok)
	assert.EqualValues(t, 1, amendments)
	reconstructed, ok := captured.Attr("cleaned submissions table", "dates_reconstructed")
	require.True(t, ok)
	assert.EqualValues(t, 1, reconstructed)
}

func TestCleanAllMissingRequiredTable(t *testing.T) {
	tables := map[string]*ingest.Table{
		ingest.TableSubmissions: newTestTable(ingest.TableSubmissions,
			[]string{"ACCESSIONNUMBER", "SUBMISSIONTYPE", "FILING_DATE", "SIC_CODE"},
		),
	}

	_, err := testCleaner(t).CleanAll(context.Background(), tables)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ingest.TableIssuers)
}
