package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amehta/credlens/internal/analyzer"
	"github.com/amehta/credlens/internal/report"
)

func TestProjectScoreToAngle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		angle float64
		band  report.Band
	}{
		{0, 0, report.BandLow},
		{25, 90, report.BandLow},
		{40, 144, report.BandQuestionable},
		{50, 180, report.BandQuestionable},
		{75, 270, report.BandHigh},
		{100, 360, report.BandHigh},
	}
	for _, tt := range tests {
		model := report.Project(&analyzer.Verdict{CredibilityScore: tt.score})
		assert.Equal(t, tt.angle, model.GaugeAngle, "score=%d", tt.score)
		assert.Equal(t, tt.band, model.Band, "score=%d", tt.score)
	}
}

func TestProjectClampsOutOfRangeScores(t *testing.T) {
	t.Parallel()

	low := report.Project(&analyzer.Verdict{CredibilityScore: -20})
	assert.Equal(t, 0, low.Score)
	assert.Equal(t, float64(0), low.GaugeAngle)

	high := report.Project(&analyzer.Verdict{CredibilityScore: 140})
	assert.Equal(t, 100, high.Score)
	assert.Equal(t, float64(360), high.GaugeAngle)
}

func TestProjectAssessmentFallback(t *testing.T) {
	t.Parallel()

	withAssessment := report.Project(&analyzer.Verdict{
		CredibilityScore: 60,
		Analysis:         &analyzer.Analysis{OverallAssessment: "Largely factual reporting."},
	})
	assert.Equal(t, "Largely factual reporting.", withAssessment.Assessment)

	missingAnalysis := report.Project(&analyzer.Verdict{CredibilityScore: 60})
	assert.NotEmpty(t, missingAnalysis.Assessment)

	emptyAssessment := report.Project(&analyzer.Verdict{
		CredibilityScore: 60,
		Analysis:         &analyzer.Analysis{},
	})
	assert.Equal(t, missingAnalysis.Assessment, emptyAssessment.Assessment)
}

func TestProjectEmptyTechniquesTakesDistinctBranch(t *testing.T) {
	t.Parallel()

	empty := report.Project(&analyzer.Verdict{
		CredibilityScore: 80,
		Analysis:         &analyzer.Analysis{ManipulativeTechniques: []analyzer.Technique{}},
	})
	require.False(t, empty.HasTechniques)
	assert.Empty(t, empty.Techniques)

	flagged := report.Project(&analyzer.Verdict{
		CredibilityScore: 20,
		Analysis: &analyzer.Analysis{
			ManipulativeTechniques: []analyzer.Technique{
				{Technique: "Emotional Appeal", Explanation: "Loaded language.", FlaggedQuote: "Shocking!"},
			},
		},
	})
	require.True(t, flagged.HasTechniques)
	require.Len(t, flagged.Techniques, 1)
	assert.Equal(t, "Emotional Appeal", flagged.Techniques[0].Name)
	assert.Equal(t, "Shocking!", flagged.Techniques[0].Quote)
}

func TestProjectDocumentMetadata(t *testing.T) {
	t.Parallel()

	model := report.Project(&analyzer.Verdict{
		CredibilityScore: 45,
		AnalysisType:     "document",
		DocumentInfo:     &analyzer.DocumentInfo{Filename: "claims.pdf", FileType: "pdf", TextLength: 9000},
	})
	require.NotNil(t, model.Document)
	assert.Equal(t, "claims.pdf", model.Document.Filename)
	assert.Equal(t, 9000, model.Document.TextLength)
	assert.Equal(t, "document", model.AnalysisType)
}

func TestRenderShowsNoTechniquesBranch(t *testing.T) {
	t.Parallel()

	out := report.Render(report.Project(&analyzer.Verdict{
		CredibilityScore: 88,
		SummaryOfClaims:  "A calm recap of events.",
		Analysis:         &analyzer.Analysis{OverallAssessment: "Measured tone throughout."},
	}), 80)

	assert.Contains(t, out, "Credibility Score: 88 / 100")
	assert.Contains(t, out, report.NoTechniquesMessage)
	assert.Contains(t, out, "Measured tone throughout.")
	assert.NotContains(t, out, "1. ")
}

func TestRenderListsTechniquesWithQuotes(t *testing.T) {
	t.Parallel()

	out := report.Render(report.Project(&analyzer.Verdict{
		CredibilityScore: 15,
		SummaryOfClaims:  "Sweeping claims about a cure.",
		Analysis: &analyzer.Analysis{
			OverallAssessment: "Heavy on sensational framing.",
			ManipulativeTechniques: []analyzer.Technique{
				{Technique: "Sensationalism & Hype", Explanation: "Breathless superlatives.", FlaggedQuote: "Miracle cure doctors hate"},
				{Technique: "Weak Appeal to Authority", Explanation: "Unnamed experts.", FlaggedQuote: "Experts agree"},
			},
		},
	}), 100)

	assert.Contains(t, out, "Sensationalism & Hype")
	assert.Contains(t, out, "Weak Appeal to Authority")
	assert.Contains(t, out, "Miracle cure doctors hate")
	assert.NotContains(t, out, report.NoTechniquesMessage)
	if strings.Count(out, "Manipulative Techniques") != 1 {
		t.Fatalf("expected a single techniques section:\n%s", out)
	}
}
