package report

import "github.com/amehta/credlens/internal/analyzer"

// Band is a coarse credibility grade shown next to the exact score.
type Band string

const (
	BandHigh         Band = "high credibility"
	BandQuestionable Band = "questionable"
	BandLow          Band = "low credibility"
)

const (
	fallbackAssessment = "No overall assessment was provided."

	// NoTechniquesMessage is rendered instead of an empty technique list.
	NoTechniquesMessage = "No manipulative techniques were detected in this content."
)

// DisplayModel is the presentation-ready projection of a verdict. It is
// derived data only; the verdict itself is never mutated.
type DisplayModel struct {
	Score      int
	GaugeAngle float64 // 0..360 sweep for a circular indicator
	Band       Band

	Summary    string
	Assessment string

	HasTechniques bool
	Techniques    []TechniqueView

	AnalysisType string
	Document     *DocumentView
}

// TechniqueView is one flagged manipulation pattern, display-ready.
type TechniqueView struct {
	Name        string
	Explanation string
	Quote       string
}

// DocumentView carries the metadata shown for document verdicts.
type DocumentView struct {
	Filename   string
	FileType   string
	TextLength int
}

// Project derives the display model from a verdict. Scores outside 0..100
// are clamped before the angle mapping so a misbehaving service cannot spin
// the gauge past a full sweep.
func Project(verdict *analyzer.Verdict) DisplayModel {
	score := verdict.CredibilityScore
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	model := DisplayModel{
		Score:        score,
		GaugeAngle:   float64(score) / 100 * 360,
		Band:         bandFor(score),
		Summary:      verdict.SummaryOfClaims,
		Assessment:   fallbackAssessment,
		AnalysisType: verdict.AnalysisType,
	}

	if verdict.Analysis != nil {
		if verdict.Analysis.OverallAssessment != "" {
			model.Assessment = verdict.Analysis.OverallAssessment
		}
		for _, technique := range verdict.Analysis.ManipulativeTechniques {
			model.Techniques = append(model.Techniques, TechniqueView{
				Name:        technique.Technique,
				Explanation: technique.Explanation,
				Quote:       technique.FlaggedQuote,
			})
		}
		model.HasTechniques = len(model.Techniques) > 0
	}

	if info := verdict.DocumentInfo; info != nil {
		model.Document = &DocumentView{
			Filename:   info.Filename,
			FileType:   info.FileType,
			TextLength: info.TextLength,
		}
	}
	return model
}

func bandFor(score int) Band {
	switch {
	case score >= 70:
		return BandHigh
	case score >= 40:
		return BandQuestionable
	default:
		return BandLow
	}
}
