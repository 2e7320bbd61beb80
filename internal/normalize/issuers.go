package normalize

import (
	"context"
	"strings"

	"formdcli/internal/ingest"
	"formdcli/pkg/contracts/domain"
)

// primaryIssuerFlag is the exact value marking the primary issuer row
const primaryIssuerFlag = "YES"

// CleanIssuers normalizes the issuers table: state codes are upper-cased and
// mapped to regions (unknown codes become "International"), entity names are
// trimmed, and entity-type flags are derived.
func (c *Cleaner) CleanIssuers(ctx context.Context, t *ingest.Table) []domain.Issuer {
	issuers := make([]domain.Issuer, 0, t.NumRows())

	usCount := 0
	for i := 0; i < t.NumRows(); i++ {
		state := NormalizeState(t.Value(i, "STATEORCOUNTRY"))
		region, isUS := RegionFor(state, c.mappings.StateRegion)
		if isUS {
			usCount++
		}

		entityType := strings.TrimSpace(t.Value(i, "ENTITYTYPE"))

		issuers = append(issuers, domain.Issuer{
			AccessionNumber:   strings.TrimSpace(t.Value(i, "ACCESSIONNUMBER")),
			EntityName:        strings.TrimSpace(t.Value(i, "ENTITYNAME")),
			State:             state,
			Region:            region,
			IsUS:              isUS,
			City:              strings.TrimSpace(t.Value(i, "CITY")),
			ZipCode:           strings.TrimSpace(t.Value(i, "ZIPCODE")),
			EntityType:        entityType,
			IncorporationYear: parseIntOrZero(t.Value(i, "YEAROFINC_VALUE_ENTERED")),
			IsPrimary:         t.Value(i, "IS_PRIMARYISSUER_FLAG") == primaryIssuerFlag,
			IsLLC:             containsFold(entityType, "LLC"),
			IsCorporation:     containsFold(entityType, "Corporation"),
			IsPartnership:     containsFold(entityType, "Partnership"),
			Period:            rowPeriod(t, i),
		})
	}

	c.logger.InfoContext(ctx, "cleaned issuers table",
		"rows", len(issuers),
		"us_entities", usCount,
		"international_entities", len(issuers)-usCount,
	)
	return issuers
}
