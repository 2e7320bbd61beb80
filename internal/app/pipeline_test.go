package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formdcli/internal/config"
)

func writeFixtureQuarter(t *testing.T, baseDir string) {
	t.Helper()
	dir := filepath.Join(baseDir, "2024Q3_d")
	require.NoError(t, os.MkdirAll(dir, 0755))

	files := map[string]string{
		"FORMDSUBMISSION.tsv": "ACCESSIONNUMBER\tSUBMISSIONTYPE\tFILING_DATE\tSIC_CODE\n" +
			"A1\tD\t15-AUG-2024\t7372\n" +
			"A2\tD\t01-JUL-2024\t6770\n",
		"ISSUERS.tsv": "ACCESSIONNUMBER\tENTITYNAME\tSTATEORCOUNTRY\tCITY\tZIPCODE\tENTITYTYPE\tYEAROFINC_VALUE_ENTERED\tIS_PRIMARYISSUER_FLAG\n" +
			"A1\tNexus AI Inc\tCA\tSan Francisco\t94105\tCorporation\t2020\tYES\n" +
			"A2\tEvergreen Opportunities Fund LP\tNY\tNew York\t10001\tLimited Partnership\t2018\tYES\n",
		"OFFERING.tsv": "ACCESSIONNUMBER\tINDUSTRYGROUPTYPE\tINVESTMENTFUNDTYPE\tTOTALOFFERINGAMOUNT\tTOTALAMOUNTSOLD\tTOTALREMAINING\tISEQUITYTYPE\tISDEBTTYPE\tISPOOLEDINVESTMENTFUNDTYPE\tTOTALNUMBERALREADYINVESTED\tHASNONACCREDITEDINVESTORS\tNUMBERNONACCREDITEDINVESTORS\tSALESCOMM_DOLLARAMOUNT\tFINDERSFEE_DOLLARAMOUNT\tISAMENDMENT\tPREVIOUSACCESSIONNUMBER\tSALE_DATE\tYETTOOCCUR\tMORETHANONEYEAR\tFEDERALEXEMPTIONS_ITEMS_LIST\n" +
			"A1\tOther Technology\t\t10,000,000\t4,000,000\t6,000,000\ttrue\tfalse\tfalse\t12\tfalse\t0\t250000\t0\tfalse\t\t2024-07-01\tfalse\ttrue\t06b\n" +
			"A2\tPooled Investment Fund\tVenture Capital Fund\tIndefinite\t0\tIndefinite\tfalse\tfalse\ttrue\t0\tfalse\t0\t0\t0\tfalse\t\t\ttrue\tfalse\t06c\n",
		"RECIPIENTS.tsv":     "ACCESSIONNUMBER\tRECIPIENTNAME\nA1\tGoldbridge Securities\n",
		"RELATEDPERSONS.tsv": "ACCESSIONNUMBER\tLASTNAME\nA1\tChen\nA1\tPatel\nA1\tKim\n",
		"SIGNATURES.tsv":     "ACCESSIONNUMBER\tSIGNATURENAME\nA1\tJ Chen\nA2\tR Moss\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()

	baseDir := t.TempDir()
	writeFixtureQuarter(t, baseDir)

	cfg := &config.Config{
		Paths: config.PathsConfig{
			BaseDir:    baseDir,
			ReportsDir: "reports",
			LogsDir:    filepath.Join(baseDir, "logs"),
		},
	}
	paths, err := config.NewPaths(cfg.Paths)
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPipeline(cfg, paths, config.DefaultThesis(), config.DefaultMappings(), logger)
}

func TestPipelineEndToEnd(t *testing.T) {
	p := newTestPipeline(t)
	ctx := context.Background()

	ds, err := p.BuildDataset(ctx)
	require.NoError(t, err)
	require.Len(t, ds.Records, 2, "one analytical record per offering row")

	require.NoError(t, p.ExportAnalytical(ctx, ds))
	require.NoError(t, p.GenerateTargets(ctx, ds.Records))

	analytical, err := os.ReadFile(p.paths.AnalyticalCSV)
	require.NoError(t, err)
	assert.Contains(t, string(analytical), "Nexus AI Inc")
	assert.Contains(t, string(analytical), "Evergreen Opportunities Fund LP")
	assert.Contains(t, string(analytical), "Indefinite")

	targets, err := os.ReadFile(p.paths.TargetsCSV)
	require.NoError(t, err)
	assert.Contains(t, string(targets), "Nexus AI Inc")
	assert.NotContains(t, string(targets), "Evergreen", "funds never appear in the target list")

	assert.FileExists(t, p.paths.TargetsXLSX)
	assert.FileExists(t, p.paths.UniverseCSV)
	assert.FileExists(t, p.paths.QualityReportTXT)
	assert.FileExists(t, p.paths.GetReportPath("period_trends.csv"))
	assert.FileExists(t, p.paths.GetReportPath("sector_trends.csv"))

	quality, err := os.ReadFile(p.paths.QualityReportTXT)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(quality), "submissions"))
}

func TestPipelineFailsWithoutQuarters(t *testing.T) {
	p := newTestPipeline(t)
	p.paths.BaseDir = t.TempDir() // empty

	_, err := p.BuildDataset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consolidation failed")
}
