package tui

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amehta/credlens/internal/analyzer"
	"github.com/amehta/credlens/internal/history"
	"github.com/amehta/credlens/internal/report"
	"github.com/amehta/credlens/internal/validate"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Client *analyzer.Client

	// HistoryPath is where successful verdicts are appended. Empty disables
	// history recording.
	HistoryPath string
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	urlInput := textinput.New()
	urlInput.Placeholder = urlPlaceholder
	urlInput.Focus()
	urlInput.CharLimit = urlInputLimit
	urlInput.Width = 70

	textInput := textarea.New()
	textInput.Placeholder = textPlaceholder
	textInput.CharLimit = textInputLimit
	textInput.SetWidth(70)
	textInput.SetHeight(8)

	picker := filepicker.New()
	picker.AllowedTypes = validate.AllowedExtensions
	if home, err := os.UserHomeDir(); err == nil {
		picker.CurrentDirectory = home
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	return &model{
		config:      config,
		bus:         newJobBus(),
		keys:        defaultKeyMap(),
		layout:      newPageLayout(),
		activeTab:   tabURL,
		urlInput:    urlInput,
		textInput:   textInput,
		picker:      picker,
		spinner:     spin,
		uploadBar:   bar,
		viewport:    vp,
		infoMessage: "Paste a URL, some text, or pick a document to begin.",
		jobs:        map[string]jobSnapshot{},
	}
}

type model struct {
	config Config
	bus    *jobBus
	keys   keyMap
	layout pageLayout

	activeTab tab

	urlInput   textinput.Model
	urlCheck   validate.Result
	urlTouched bool

	textInput textarea.Model

	picker       filepicker.Model
	selectedFile *validate.File
	fileNotice   string

	spinner   spinner.Model
	uploadBar progress.Model
	viewport  viewport.Model

	loading       bool
	uploadPercent int
	pending       *requestTag
	seq           int

	outcome      *report.DisplayModel
	errorMessage string
	infoMessage  string
	helpVisible  bool

	healthStatus string

	jobs     map[string]jobSnapshot
	jobOrder []string
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.picker.Init(),
		m.bus.Start(jobKindHealth, healthJob(m.config.Client)),
	)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.applyLayout(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case progress.FrameMsg:
		barModel, cmd := m.uploadBar.Update(msg)
		m.uploadBar = barModel.(progress.Model)
		return m, cmd

	case jobStartedMsg:
		m.recordJob(msg.Snapshot)
		return m, nil

	case jobResultEnvelope:
		m.recordJob(msg.Snapshot)
		if msg.Payload != nil {
			return m.Update(msg.Payload)
		}
		return m, nil

	case analysisResultMsg:
		return m.handleAnalysisResult(msg)

	case uploadProgressMsg:
		return m.handleUploadProgress(msg)

	case progressDoneMsg:
		return m, nil

	case healthResultMsg:
		if msg.err != nil {
			m.healthStatus = "service unreachable"
			m.infoMessage = fmt.Sprintf("Analysis service at %s is not responding; submissions will fail until it is back.", m.config.Client.BaseURL())
			return m, nil
		}
		m.healthStatus = msg.health.Status
		if !msg.health.APIConfigured {
			m.infoMessage = "The analysis service is up but has no analysis backend configured."
		}
		return m, nil

	case historySavedMsg:
		if msg.err != nil {
			log.Printf("[history] append failed: %v", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveInput(msg)
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(m.nextTab(1)), nil
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(m.nextTab(-1)), nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Clear):
		if m.outcome != nil || m.errorMessage != "" {
			m.clearOutcome()
			m.infoMessage = "Cleared."
		} else if m.activeTab == tabDocument && m.selectedFile != nil {
			m.clearFile()
		}
		return m, nil
	case key.Matches(msg, m.keys.ScrollUp):
		// Without a settled result these keys belong to the active input.
		if m.outcome != nil {
			m.viewport.HalfViewUp()
			return m, nil
		}
	case key.Matches(msg, m.keys.ScrollDn):
		if m.outcome != nil {
			m.viewport.HalfViewDown()
			return m, nil
		}
	}

	if m.activeTab == tabURL && msg.Type == tea.KeyEnter {
		return m.submit()
	}
	return m.updateActiveInput(msg)
}

// updateActiveInput forwards a message to the component owned by the active
// tab. The filepicker also sees non-key messages so its directory reads
// settle regardless of which tab is in front.
func (m *model) updateActiveInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, isKey := msg.(tea.KeyMsg)
	var cmds []tea.Cmd

	if m.activeTab == tabDocument || !isKey {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)

		if m.activeTab == tabDocument {
			if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
				m.selectFile(path)
			}
			if didSelect, _ := m.picker.DidSelectDisabledFile(msg); didSelect {
				m.selectedFile = nil
				m.fileNotice = "Unsupported file type. Allowed: PDF, DOC, DOCX, TXT, RTF."
			}
		}
	}

	if isKey {
		switch m.activeTab {
		case tabURL:
			var cmd tea.Cmd
			m.urlInput, cmd = m.urlInput.Update(msg)
			cmds = append(cmds, cmd)
			m.refreshURLCheck()
		case tabText:
			var cmd tea.Cmd
			m.textInput, cmd = m.textInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// selectFile validates a picked path immediately. Invalid picks are dropped
// so a stale selection can never be submitted.
func (m *model) selectFile(path string) {
	m.uploadPercent = 0
	file, err := validate.StatFile(path)
	if err != nil {
		m.selectedFile = nil
		m.fileNotice = "Could not read the selected file. Please pick it again."
		return
	}
	if result := validate.ValidateFile(file); !result.Valid {
		m.selectedFile = nil
		m.fileNotice = result.Message
		return
	}
	m.selectedFile = file
	m.errorMessage = ""
	m.fileNotice = fmt.Sprintf("Selected %s (%s)", file.Name, validate.FormatFileSize(file.Size))
}

func (m *model) clearFile() {
	m.selectedFile = nil
	m.fileNotice = ""
	m.uploadPercent = 0
}

func (m *model) refreshURLCheck() {
	value := strings.TrimSpace(m.urlInput.Value())
	if value == "" {
		m.urlTouched = false
		m.urlCheck = validate.Result{}
		return
	}
	m.urlTouched = true
	m.urlCheck = validate.ValidateURL(value)
	// Accepted corrections are folded back into the input as the user
	// types, so what is shown is exactly what will be submitted.
	if m.urlCheck.Valid && m.urlCheck.Corrected != "" {
		m.urlInput.SetValue(m.urlCheck.Corrected)
		m.urlInput.CursorEnd()
	}
}

func (m *model) nextTab(step int) tab {
	idx := (int(m.activeTab) + step + len(tabSequence)) % len(tabSequence)
	return tabSequence[idx]
}

// switchTab moves to another input mode. Per-tab content is preserved, but
// the settled outcome and any error belong to the tab that produced them and
// are cleared. An in-flight request is abandoned; its result will arrive
// with a tag that no longer matches and be discarded.
func (m *model) switchTab(next tab) *model {
	if next == m.activeTab {
		return m
	}
	if m.activeTab == tabURL {
		m.urlTouched = false
		m.urlCheck = validate.Result{}
	}
	m.clearOutcome()
	m.pending = nil
	m.loading = false
	m.infoMessage = ""
	m.activeTab = next

	m.urlInput.Blur()
	m.textInput.Blur()
	switch next {
	case tabURL:
		m.urlInput.Focus()
		m.refreshURLCheck()
	case tabText:
		m.textInput.Focus()
	}
	return m
}

func (m *model) clearOutcome() {
	m.outcome = nil
	m.errorMessage = ""
	m.uploadPercent = 0
	m.viewport.SetContent("")
	m.viewport.GotoTop()
}

// canAnalyze reports whether the active tab currently holds submittable
// input. It gates both the analyze keybinding and the call-to-action line.
func (m *model) canAnalyze() bool {
	if m.loading {
		return false
	}
	switch m.activeTab {
	case tabURL:
		return m.urlTouched && m.urlCheck.Valid
	case tabText:
		return validate.ValidText(m.textInput.Value())
	case tabDocument:
		// Re-validated at check time so a selection that went stale on
		// disk cannot ride through the gate.
		return validate.ValidateFile(m.selectedFile).Valid
	default:
		return false
	}
}

func (m *model) submit() (tea.Model, tea.Cmd) {
	if !m.canAnalyze() {
		if m.loading {
			return m, nil
		}
		m.errorMessage = m.blockedReason()
		return m, nil
	}

	req := m.buildRequest()
	m.seq++
	tag := requestTag{modality: req.Modality, seq: m.seq}
	m.pending = &tag
	m.loading = true
	m.clearOutcome()
	m.infoMessage = fmt.Sprintf("Analyzing %s…", req.Modality)

	progressCh := make(chan int, 16)
	return m, tea.Batch(
		m.bus.Start(jobKindAnalyze, analyzeJob(m.config.Client, req, tag, progressCh)),
		listenProgress(progressCh, tag),
		m.spinner.Tick,
	)
}

func (m *model) buildRequest() analyzer.Request {
	switch m.activeTab {
	case tabText:
		return analyzer.Request{Modality: analyzer.ModalityText, Data: m.textInput.Value()}
	case tabDocument:
		return analyzer.Request{Modality: analyzer.ModalityDocument, File: m.selectedFile}
	default:
		data := m.urlInput.Value()
		if m.urlCheck.Corrected != "" {
			data = m.urlCheck.Corrected
		}
		return analyzer.Request{Modality: analyzer.ModalityURL, Data: data}
	}
}

func (m *model) blockedReason() string {
	switch m.activeTab {
	case tabURL:
		if m.urlTouched && m.urlCheck.Message != "" {
			return m.urlCheck.Message
		}
		return "Please enter a URL."
	case tabText:
		return fmt.Sprintf("Please provide more than %d characters of text.", validate.MinTextLength)
	case tabDocument:
		return "Please select a file."
	default:
		return ""
	}
}

func (m *model) handleAnalysisResult(msg analysisResultMsg) (tea.Model, tea.Cmd) {
	if m.pending == nil || *m.pending != msg.tag || msg.tag.modality != m.activeTab.modality() {
		log.Printf("[tui] discarding stale %s result (seq=%d)", msg.tag.modality, msg.tag.seq)
		return m, nil
	}
	m.pending = nil
	m.loading = false
	m.infoMessage = ""

	if msg.err != nil {
		m.outcome = nil
		m.uploadPercent = 0
		m.errorMessage = userFacingMessage(msg.err)
		return m, nil
	}

	m.uploadPercent = 100
	display := report.Project(msg.verdict)
	m.outcome = &display
	m.errorMessage = ""
	m.viewport.SetContent(report.Render(display, m.layout.viewportWidth))
	m.viewport.GotoTop()
	m.infoMessage = "Analysis complete."

	if m.config.HistoryPath == "" {
		return m, nil
	}
	entry := history.Entry{
		AnalyzedAt: time.Now().UTC(),
		Modality:   string(msg.tag.modality),
		Input:      m.historyInput(msg.tag.modality),
		Score:      display.Score,
		Summary:    display.Summary,
	}
	return m, m.bus.Start(jobKindHistory, recordHistoryJob(m.config.HistoryPath, entry))
}

func (m *model) historyInput(modality analyzer.Modality) string {
	switch modality {
	case analyzer.ModalityText:
		return history.Preview(strings.TrimSpace(m.textInput.Value()), 120)
	case analyzer.ModalityDocument:
		if m.selectedFile != nil {
			return m.selectedFile.Name
		}
		return ""
	default:
		if m.urlCheck.Corrected != "" {
			return m.urlCheck.Corrected
		}
		return strings.TrimSpace(m.urlInput.Value())
	}
}

func (m *model) handleUploadProgress(msg uploadProgressMsg) (tea.Model, tea.Cmd) {
	// Keep draining the stream even when the submission is stale so the
	// uploader can finish; stale ticks just never reach the bar.
	cmds := []tea.Cmd{listenProgress(msg.stream, msg.tag)}
	if m.pending != nil && *m.pending == msg.tag && msg.percent > m.uploadPercent {
		m.uploadPercent = msg.percent
		cmds = append(cmds, m.uploadBar.SetPercent(float64(msg.percent)/100))
	}
	return m, tea.Batch(cmds...)
}

func userFacingMessage(err error) string {
	var aerr *analyzer.Error
	if errors.As(err, &aerr) {
		return aerr.Message
	}
	return "Something went wrong during analysis. Please try again."
}

func (m *model) recordJob(snapshot jobSnapshot) {
	if _, seen := m.jobs[snapshot.ID]; !seen {
		m.jobOrder = append(m.jobOrder, snapshot.ID)
		if len(m.jobOrder) > 8 {
			delete(m.jobs, m.jobOrder[0])
			m.jobOrder = m.jobOrder[1:]
		}
	}
	m.jobs[snapshot.ID] = snapshot
}

func (m *model) applyLayout(width, height int) {
	m.layout.Update(width, height)
	m.urlInput.Width = m.layout.inputWidth
	m.textInput.SetWidth(m.layout.inputWidth)
	m.textInput.SetHeight(m.layout.textAreaHeight)
	m.picker.Height = m.layout.pickerHeight
	m.uploadBar.Width = m.layout.inputWidth
	m.viewport.Width = m.layout.viewportWidth
	m.viewport.Height = m.layout.viewportHeight
	if m.outcome != nil {
		m.viewport.SetContent(report.Render(*m.outcome, m.layout.viewportWidth))
	}
}
