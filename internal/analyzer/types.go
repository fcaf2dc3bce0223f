package analyzer

import "github.com/amehta/credlens/internal/validate"

// Modality is the input mode an analysis request was built for.
type Modality string

const (
	ModalityURL      Modality = "url"
	ModalityText     Modality = "text"
	ModalityDocument Modality = "document"
)

// Request is the immutable payload handed to the client. Data carries the
// trimmed URL or text; File is set for document submissions only.
type Request struct {
	Modality Modality
	Data     string
	File     *validate.File
}

// Verdict is the structured credibility result returned by the analysis
// service. Field names mirror the service's JSON contract.
type Verdict struct {
	CredibilityScore int           `json:"credibility_score"`
	SummaryOfClaims  string        `json:"summary_of_claims"`
	AnalysisType     string        `json:"analysis_type,omitempty"`
	OriginalInput    string        `json:"original_input,omitempty"`
	Analysis         *Analysis     `json:"analysis,omitempty"`
	DocumentInfo     *DocumentInfo `json:"document_info,omitempty"`
}

// Analysis holds the qualitative portion of a verdict.
type Analysis struct {
	OverallAssessment      string      `json:"overall_assessment"`
	ManipulativeTechniques []Technique `json:"manipulative_techniques"`
}

// Technique describes one manipulative pattern the service flagged.
type Technique struct {
	Technique    string `json:"technique"`
	Explanation  string `json:"explanation"`
	FlaggedQuote string `json:"flagged_quote"`
}

// DocumentInfo is attached to verdicts produced from uploaded documents.
type DocumentInfo struct {
	Filename       string `json:"filename"`
	FileType       string `json:"file_type"`
	TextLength     int    `json:"text_length"`
	ContentPreview string `json:"content_preview"`
}

// Health is the service's liveness and capability payload.
type Health struct {
	Status           string   `json:"status"`
	Service          string   `json:"service"`
	APIConfigured    bool     `json:"api_configured"`
	SupportedFormats []string `json:"supported_formats"`
	MaxFileSize      string   `json:"max_file_size"`
}
