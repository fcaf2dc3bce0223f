package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amehta/credlens/internal/analyzer"
	"github.com/amehta/credlens/internal/history"
)

const healthProbeTimeout = 5 * time.Second

// analyzeJob submits one request. Upload progress for document submissions
// streams through the channel; the channel is closed once the request has
// settled so the listener can stand down.
func analyzeJob(client *analyzer.Client, req analyzer.Request, tag requestTag, progress chan int) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		defer close(progress)
		onProgress := func(percent int) {
			select {
			case progress <- percent:
			default:
				// The upload never waits on the UI; a dropped tick is
				// overwritten by the next one.
			}
		}
		verdict, err := client.Analyze(parent, req, onProgress)
		return analysisResultMsg{tag: tag, verdict: verdict, err: err}, err
	}
}

// listenProgress delivers the next progress tick for tag, or reports the
// stream closed. The model re-arms it after every tick.
func listenProgress(progress <-chan int, tag requestTag) tea.Cmd {
	return func() tea.Msg {
		percent, ok := <-progress
		if !ok {
			return progressDoneMsg{tag: tag}
		}
		return uploadProgressMsg{tag: tag, percent: percent, stream: progress}
	}
}

func healthJob(client *analyzer.Client) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, healthProbeTimeout)
		defer cancel()
		health, err := client.Health(ctx)
		return healthResultMsg{health: health, err: err}, err
	}
}

func recordHistoryJob(path string, entry history.Entry) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		err := history.Append(path, entry)
		return historySavedMsg{err: err}, err
	}
}
