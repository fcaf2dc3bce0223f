package tui

import "github.com/amehta/credlens/internal/analyzer"

// tab identifies one of the three input modalities.
type tab int

const (
	tabURL tab = iota
	tabText
	tabDocument
)

var tabSequence = []tab{tabURL, tabText, tabDocument}

func (t tab) title() string {
	switch t {
	case tabURL:
		return "URL"
	case tabText:
		return "Text"
	case tabDocument:
		return "Document"
	default:
		return "?"
	}
}

func (t tab) modality() analyzer.Modality {
	switch t {
	case tabText:
		return analyzer.ModalityText
	case tabDocument:
		return analyzer.ModalityDocument
	default:
		return analyzer.ModalityURL
	}
}

const heroTagline = "Check content credibility before you share it."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	urlInputLimit             = 500
	textInputLimit            = 20000
)

const (
	urlPlaceholder  = "https://example.com/article"
	textPlaceholder = "Paste the article or post text here…"
)

// requestTag identifies one submitted analysis. Settling results carry the
// tag so answers for an abandoned submission can be discarded.
type requestTag struct {
	modality analyzer.Modality
	seq      int
}

type analysisResultMsg struct {
	tag     requestTag
	verdict *analyzer.Verdict
	err     error
}

type uploadProgressMsg struct {
	tag     requestTag
	percent int
	stream  <-chan int
}

type progressDoneMsg struct {
	tag requestTag
}

type healthResultMsg struct {
	health *analyzer.Health
	err    error
}

type historySavedMsg struct {
	err error
}
