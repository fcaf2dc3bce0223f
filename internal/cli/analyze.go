package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amehta/credlens/internal/analyzer"
	"github.com/amehta/credlens/internal/history"
	"github.com/amehta/credlens/internal/report"
	"github.com/amehta/credlens/internal/validate"
)

var (
	analyzeURL  string
	analyzeText string
	analyzeFile string
	analyzeJSON bool
)

const oneShotRenderWidth = 100

// analyzeCmd runs a single analysis without the TUI, for scripting and
// quick checks.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis and print the verdict",
	Long: `Submit exactly one input (--url, --text, or --file) to the analysis
service and print the verdict. --json emits the service payload verbatim
instead of the rendered report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := oneShotRequest()
		if err != nil {
			return err
		}

		cfg := loadedConfig()
		client := buildClient(cfg)

		onProgress := func(percent int) {
			fmt.Fprintf(os.Stderr, "\ruploading %d%%", percent)
			if percent >= 100 {
				fmt.Fprintln(os.Stderr)
			}
		}
		verdict, err := client.Analyze(context.Background(), req, onProgress)
		if err != nil {
			var aerr *analyzer.Error
			if errors.As(err, &aerr) {
				return errors.New(aerr.Message)
			}
			return err
		}

		if analyzeJSON {
			payload, err := json.MarshalIndent(verdict, "", "  ")
			if err != nil {
				return fmt.Errorf("encode verdict: %w", err)
			}
			fmt.Println(string(payload))
		} else {
			display := report.Project(verdict)
			fmt.Println(report.Render(display, oneShotRenderWidth))
		}

		if cfg.HistoryPath != "" {
			entry := historyEntryFor(req, verdict)
			if err := history.Append(cfg.HistoryPath, entry); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not record history: %v\n", err)
			}
		}
		return nil
	},
}

func oneShotRequest() (analyzer.Request, error) {
	set := 0
	for _, value := range []string{analyzeURL, analyzeText, analyzeFile} {
		if value != "" {
			set++
		}
	}
	if set != 1 {
		return analyzer.Request{}, errors.New("provide exactly one of --url, --text, or --file")
	}

	switch {
	case analyzeURL != "":
		return analyzer.Request{Modality: analyzer.ModalityURL, Data: analyzeURL}, nil
	case analyzeText != "":
		return analyzer.Request{Modality: analyzer.ModalityText, Data: analyzeText}, nil
	default:
		file, err := validate.StatFile(analyzeFile)
		if err != nil {
			return analyzer.Request{}, fmt.Errorf("read %s: %w", analyzeFile, err)
		}
		return analyzer.Request{Modality: analyzer.ModalityDocument, File: file}, nil
	}
}

func historyEntryFor(req analyzer.Request, verdict *analyzer.Verdict) history.Entry {
	input := req.Data
	if req.Modality == analyzer.ModalityDocument && req.File != nil {
		input = req.File.Name
	}
	display := report.Project(verdict)
	return history.Entry{
		AnalyzedAt: time.Now().UTC(),
		Modality:   string(req.Modality),
		Input:      history.Preview(input, 120),
		Score:      display.Score,
		Summary:    display.Summary,
	}
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "URL to analyze")
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "text to analyze")
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "document to analyze (pdf, doc, docx, txt, rtf)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw verdict payload")
	rootCmd.AddCommand(analyzeCmd)
}
