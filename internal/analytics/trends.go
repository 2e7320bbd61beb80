package analytics

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"formdcli/pkg/contracts/domain"
)

// PeriodTrend aggregates filing activity for one batch period. Capital sums
// skip NaN amounts and use the arithmetic-mode sold figure, so an indefinite
// offering never inflates a total.
type PeriodTrend struct {
	Period        domain.Period
	Filings       int
	Amendments    int
	Funds         int
	CapitalSold   float64
	CapitalTarget float64
}

// SectorTrend aggregates deal activity for one standardized sector
type SectorTrend struct {
	Sector         string
	Deals          int
	CapitalSold    float64
	MedianDealSize float64
	FollowOns      int
}

// PeriodTrends computes per-period counts and capital totals, sorted
// chronologically.
func PeriodTrends(ctx context.Context, records []domain.AnalyticalRecord, logger *slog.Logger) []PeriodTrend {
	byPeriod := make(map[domain.Period]*PeriodTrend)
	for _, rec := range records {
		pt := byPeriod[rec.Period]
		if pt == nil {
			pt = &PeriodTrend{Period: rec.Period}
			byPeriod[rec.Period] = pt
		}
		pt.Filings++
		if rec.IsAmendment {
			pt.Amendments++
		}
		if rec.IsFund {
			pt.Funds++
		}
		if !math.IsNaN(rec.TotalAmountSold) {
			pt.CapitalSold += rec.TotalAmountSold
		}
		if rec.HasFiniteOffering() {
			pt.CapitalTarget += rec.TotalOfferingAmount
		}
	}

	trends := make([]PeriodTrend, 0, len(byPeriod))
	for _, pt := range byPeriod {
		trends = append(trends, *pt)
	}
	sort.Slice(trends, func(i, j int) bool {
		return trends[i].Period.Before(trends[j].Period)
	})

	if logger != nil {
		logger.InfoContext(ctx, "computed period trends", "periods", len(trends))
	}
	return trends
}

// SectorTrends computes per-sector deal counts, sold capital and the median
// finite offering amount, sorted by deal count descending.
func SectorTrends(ctx context.Context, records []domain.AnalyticalRecord, logger *slog.Logger) []SectorTrend {
	bySector := make(map[string]*SectorTrend)
	sizes := make(map[string][]float64)
	for _, rec := range records {
		st := bySector[rec.Sector]
		if st == nil {
			st = &SectorTrend{Sector: rec.Sector}
			bySector[rec.Sector] = st
		}
		st.Deals++
		if rec.IsFollowOn {
			st.FollowOns++
		}
		if !math.IsNaN(rec.TotalAmountSold) {
			st.CapitalSold += rec.TotalAmountSold
		}
		if rec.HasFiniteOffering() {
			sizes[rec.Sector] = append(sizes[rec.Sector], rec.TotalOfferingAmount)
		}
	}

	trends := make([]SectorTrend, 0, len(bySector))
	for sector, st := range bySector {
		st.MedianDealSize = median(sizes[sector])
		trends = append(trends, *st)
	}
	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Deals != trends[j].Deals {
			return trends[i].Deals > trends[j].Deals
		}
		return trends[i].Sector < trends[j].Sector
	})

	if logger != nil {
		logger.InfoContext(ctx, "computed sector trends", "sectors", len(trends))
	}
	return trends
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
