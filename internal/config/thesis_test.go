package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultThesisIsValid(t *testing.T) {
	thesis := DefaultThesis()
	require.NoError(t, thesis.Validate())

	assert.InDelta(t, 100.0, thesis.Weights.Total(), 0.001)
	assert.Contains(t, thesis.TargetStates, "CA")
	assert.Contains(t, thesis.AcronymDenylist, "CHAIR")
	assert.Equal(t, 540, thesis.RecencyWindowDays)
}

func TestThesisWeightsMustSumTo100(t *testing.T) {
	thesis := DefaultThesis()
	thesis.Weights.Momentum = 50

	err := thesis.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 100")
}

func TestThesisIdealRangeInsideDealRange(t *testing.T) {
	thesis := DefaultThesis()
	thesis.IdealMax = thesis.MaxDealSize * 2

	err := thesis.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ideal range")
}

func TestLoadThesisFromFile(t *testing.T) {
	content := `
target_states: ["CA", "NY"]
min_target_score: 40
weights:
  thesis_fit: 40
  deal_size: 20
  geography: 10
  momentum: 20
  quality: 10
`
	path := filepath.Join(t.TempDir(), "thesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	thesis, err := LoadThesis(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"CA", "NY"}, thesis.TargetStates)
	assert.Equal(t, 40.0, thesis.MinTargetScore)
	assert.Equal(t, 40.0, thesis.Weights.ThesisFit)
	// Fields omitted from the file keep their defaults
	assert.Equal(t, 200, thesis.TopTargets)
	assert.NotEmpty(t, thesis.Subcategories)
}

func TestLoadThesisEmptyPathUsesDefaults(t *testing.T) {
	thesis, err := LoadThesis("")
	require.NoError(t, err)
	assert.Equal(t, DefaultThesis().TargetStates, thesis.TargetStates)
}

func TestSubcategoryOrderIsPreserved(t *testing.T) {
	thesis := DefaultThesis()

	// First-match-wins classification depends on rule order: the specific
	// rules must come before the catch-all Enterprise SaaS rule.
	var visionIdx, saasIdx int
	for i, rule := range thesis.Subcategories {
		switch rule.Name {
		case "Computer Vision":
			visionIdx = i
		case "Enterprise SaaS":
			saasIdx = i
		}
	}
	assert.Less(t, visionIdx, saasIdx)
}
