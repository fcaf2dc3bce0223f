package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amehta/credlens/internal/validate"
)

func TestAnalyzeURLSendsCorrectedInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		var payload struct {
			Type string `json:"type"`
			Data string `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload.Type != "url" {
			t.Fatalf("expected type url, got %s", payload.Type)
		}
		if payload.Data != "https://example.com/story" {
			t.Fatalf("expected corrected url, got %s", payload.Data)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"credibility_score":82,"summary_of_claims":"Claims about a story.","analysis_type":"url"}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	verdict, err := client.Analyze(context.Background(), Request{Modality: ModalityURL, Data: "example.com/story"}, nil)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if verdict.CredibilityScore != 82 {
		t.Fatalf("unexpected score: %d", verdict.CredibilityScore)
	}
	if verdict.SummaryOfClaims != "Claims about a story." {
		t.Fatalf("unexpected summary: %s", verdict.SummaryOfClaims)
	}
}

func TestAnalyzeRefusesInvalidInputBeforeDispatch(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})

	cases := []Request{
		{Modality: ModalityURL, Data: "not a url##"},
		{Modality: ModalityText, Data: "too short"},
		{Modality: ModalityDocument},
		{Modality: Modality("bogus")},
	}
	for _, req := range cases {
		_, err := client.Analyze(context.Background(), req, nil)
		if err == nil {
			t.Fatalf("expected error for request %+v", req)
		}
		var aerr *Error
		if !errors.As(err, &aerr) || aerr.Kind != KindInvalidInput {
			t.Fatalf("expected invalid input error, got %v", err)
		}
	}
	if hits != 0 {
		t.Fatalf("invalid input reached the network layer %d times", hits)
	}
}

func TestAnalyzeTextPassesTrimmedBody(t *testing.T) {
	text := "  " + strings.Repeat("An interesting claim. ", 5) + "  "
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Type string `json:"type"`
			Data string `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload.Type != "text" {
			t.Fatalf("expected type text, got %s", payload.Type)
		}
		if payload.Data != strings.TrimSpace(text) {
			t.Fatalf("expected trimmed text, got %q", payload.Data)
		}
		w.Write([]byte(`{"credibility_score":40,"summary_of_claims":"Assorted claims."}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	verdict, err := client.Analyze(context.Background(), Request{Modality: ModalityText, Data: text}, nil)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if verdict.CredibilityScore != 40 {
		t.Fatalf("unexpected score: %d", verdict.CredibilityScore)
	}
}

func TestAnalyzeServiceErrorPassedThroughVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Could not extract content from the provided URL. Please check the URL or try a different one."}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	_, err := client.Analyze(context.Background(), Request{Modality: ModalityURL, Data: "https://example.com/story"}, nil)
	var aerr *Error
	if !errors.As(err, &aerr) {
		t.Fatalf("expected analyzer error, got %v", err)
	}
	if aerr.Kind != KindServiceRejected {
		t.Fatalf("expected service rejection, got kind %d", aerr.Kind)
	}
	if !strings.HasPrefix(aerr.Message, "Could not extract content") {
		t.Fatalf("service message not passed through: %q", aerr.Message)
	}
}

func TestAnalyzeTimeoutClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, HTTPClient: server.Client(), SubmitTimeout: 20 * time.Millisecond})
	_, err := client.Analyze(context.Background(), Request{Modality: ModalityURL, Data: "https://example.com"}, nil)
	var aerr *Error
	if !errors.As(err, &aerr) || aerr.Kind != KindTimeout {
		t.Fatalf("expected timeout classification, got %v", err)
	}
	if aerr.Message != msgTimeout {
		t.Fatalf("unexpected timeout message: %q", aerr.Message)
	}
}

func TestAnalyzeDocumentUsesUploadTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claims.txt")
	if err := os.WriteFile(path, []byte("Document body."), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	file, err := validate.StatFile(path)
	if err != nil {
		t.Fatalf("stat fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	// A generous submit bound proves the document path is governed by the
	// upload bound, not the url/text one.
	client := New(Config{
		BaseURL:       server.URL,
		HTTPClient:    server.Client(),
		SubmitTimeout: time.Second,
		UploadTimeout: 20 * time.Millisecond,
	})
	_, err = client.Analyze(context.Background(), Request{Modality: ModalityDocument, File: file}, nil)
	var aerr *Error
	if !errors.As(err, &aerr) || aerr.Kind != KindTimeout {
		t.Fatalf("expected timeout classification, got %v", err)
	}
	if aerr.Message != msgTimeout {
		t.Fatalf("unexpected timeout message: %q", aerr.Message)
	}
}

func TestAnalyzeUnreachableClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	client := New(Config{BaseURL: base})
	_, err := client.Analyze(context.Background(), Request{Modality: ModalityURL, Data: "https://example.com"}, nil)
	var aerr *Error
	if !errors.As(err, &aerr) || aerr.Kind != KindUnreachable {
		t.Fatalf("expected unreachable classification, got %v", err)
	}
}

func TestAnalyzeDocumentUploadsMultipartWithProgress(t *testing.T) {
	content := strings.Repeat("Document body. ", 200)
	path := filepath.Join(t.TempDir(), "claims.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("type"); got != "document" {
			t.Fatalf("expected type field document, got %q", got)
		}
		upload, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file field: %v", err)
		}
		defer upload.Close()
		if header.Filename != "claims.txt" {
			t.Fatalf("unexpected filename: %s", header.Filename)
		}
		w.Write([]byte(`{"credibility_score":55,"summary_of_claims":"Claims from a document.","analysis_type":"document","document_info":{"filename":"claims.txt","file_type":"txt","text_length":3000}}`))
	}))
	defer server.Close()

	file, err := validate.StatFile(path)
	if err != nil {
		t.Fatalf("stat fixture: %v", err)
	}

	var reported []int
	client := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	verdict, err := client.Analyze(context.Background(), Request{Modality: ModalityDocument, File: file}, func(percent int) {
		reported = append(reported, percent)
	})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if verdict.DocumentInfo == nil || verdict.DocumentInfo.Filename != "claims.txt" {
		t.Fatalf("document info missing: %+v", verdict)
	}
	if len(reported) == 0 {
		t.Fatal("no progress reported")
	}
	for i := 1; i < len(reported); i++ {
		if reported[i] < reported[i-1] {
			t.Fatalf("progress not monotonic: %v", reported)
		}
	}
	if reported[len(reported)-1] != 100 {
		t.Fatalf("progress did not reach 100: %v", reported)
	}
}

func TestAnalyzeCachesVerdictsForIdenticalInput(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"credibility_score":64,"summary_of_claims":"Cached claims."}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, HTTPClient: server.Client(), Cache: NewVerdictCache(time.Minute)})
	req := Request{Modality: ModalityURL, Data: "https://example.com/story"}

	for i := 0; i < 2; i++ {
		verdict, err := client.Analyze(context.Background(), req, nil)
		if err != nil {
			t.Fatalf("analyze %d failed: %v", i, err)
		}
		if verdict.CredibilityScore != 64 {
			t.Fatalf("unexpected score: %d", verdict.CredibilityScore)
		}
	}
	if hits != 1 {
		t.Fatalf("expected a single service hit, got %d", hits)
	}
}

func TestHealthProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":"healthy","service":"Credibility Analyzer API","api_configured":true,"supported_formats":["pdf","doc","docx","txt","rtf"],"max_file_size":"10MB"}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL, HTTPClient: server.Client()})
	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("health failed: %v", err)
	}
	if health.Status != "healthy" || !health.APIConfigured {
		t.Fatalf("unexpected health payload: %+v", health)
	}
	if len(health.SupportedFormats) != 5 {
		t.Fatalf("unexpected formats: %v", health.SupportedFormats)
	}
}
