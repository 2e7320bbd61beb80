package exporter

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formdcli/internal/analytics"
	"formdcli/pkg/contracts/domain"
)

func TestExportPeriodTrends(t *testing.T) {
	paths := testPaths(t)
	e := NewReportExporter(paths, discardLogger())

	trends := []analytics.PeriodTrend{
		{Period: domain.Period{Year: 2024, Quarter: 2}, Filings: 100, Amendments: 12, Funds: 40, CapitalSold: 1_500_000_000},
		{Period: domain.Period{Year: 2024, Quarter: 3}, Filings: 120, Amendments: 15, Funds: 44, CapitalSold: 1_800_000_000},
	}

	require.NoError(t, e.ExportPeriodTrends(context.Background(), trends, "period_trends.csv"))

	data, err := os.ReadFile(paths.GetReportPath("period_trends.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024Q2")
	assert.Contains(t, string(data), "2024Q3")
	assert.Contains(t, string(data), "1500000000.00")
}

func TestExportSectorTrends(t *testing.T) {
	paths := testPaths(t)
	e := NewReportExporter(paths, discardLogger())

	trends := []analytics.SectorTrend{
		{Sector: "Enterprise Software", Deals: 50, FollowOns: 10, CapitalSold: 400_000_000, MedianDealSize: 8_000_000},
		{Sector: "Other", Deals: 30, MedianDealSize: math.NaN()},
	}

	require.NoError(t, e.ExportSectorTrends(context.Background(), trends, "sector_trends.csv"))

	data, err := os.ReadFile(paths.GetReportPath("sector_trends.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Enterprise Software")
	assert.Contains(t, string(data), "8000000.00")
}

func TestWriteQualityReport(t *testing.T) {
	paths := testPaths(t)
	e := NewReportExporter(paths, discardLogger())

	report := "DATA QUALITY REPORT\n===================\nrows: 42\n"
	require.NoError(t, e.WriteQualityReport(context.Background(), report, "quality.txt"))

	data, err := os.ReadFile(paths.GetReportPath("quality.txt"))
	require.NoError(t, err)
	assert.Equal(t, report, string(data))
}

func TestExportAnalyticalDataset(t *testing.T) {
	paths := testPaths(t)
	e := NewAnalyticalExporter(paths, discardLogger())

	records := []domain.AnalyticalRecord{
		{
			Offering: domain.Offering{
				AccessionNumber:     "0001-24-000001",
				Sector:              "Biotech",
				TotalOfferingAmount: 5_000_000,
				TotalAmountSold:     math.NaN(),
				TotalRemaining:      math.Inf(1),
				FundraisingPct:      math.NaN(),
				Period:              domain.Period{Year: 2024, Quarter: 1},
			},
			EntityName: "Helix Bio Inc",
			State:      "MA",
			DateSource: domain.DateReconstructed,
		},
	}

	require.NoError(t, e.Export(context.Background(), records, "analytical.csv"))

	data, err := os.ReadFile(paths.GetReportPath("analytical.csv"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Helix Bio Inc")
	assert.Contains(t, content, "Indefinite")
	assert.Contains(t, content, "reconstructed")
	assert.Contains(t, content, "2024Q1")
}
