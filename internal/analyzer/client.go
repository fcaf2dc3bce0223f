package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/amehta/credlens/internal/validate"
)

const (
	// DefaultBaseURL matches the analysis service's local development address.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultSubmitTimeout bounds url/text submissions. Document uploads get
	// DefaultUploadTimeout because server-side extraction is slower.
	DefaultSubmitTimeout = 45 * time.Second
	DefaultUploadTimeout = 2 * time.Minute

	uploadFieldName  = "file"
	maxResponseBytes = 2 << 20
)

// Config wires a Client. Zero values fall back to the defaults above.
type Config struct {
	BaseURL       string
	SubmitTimeout time.Duration
	UploadTimeout time.Duration
	HTTPClient    *http.Client
	Cache         *VerdictCache
}

// Client submits analysis requests to the credibility service and classifies
// failures into the error taxonomy. It refuses to dispatch input that fails
// local validation, even if the caller already gates on it.
type Client struct {
	base          string
	submitTimeout time.Duration
	uploadTimeout time.Duration
	client        *http.Client
	cache         *VerdictCache
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	submit := cfg.SubmitTimeout
	if submit <= 0 {
		submit = DefaultSubmitTimeout
	}
	upload := cfg.UploadTimeout
	if upload <= 0 {
		upload = DefaultUploadTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		// Deadlines come from per-request contexts; a client-wide timeout
		// would also cut off slow document uploads.
		client = &http.Client{}
	}
	return &Client{
		base:          base,
		submitTimeout: submit,
		uploadTimeout: upload,
		client:        client,
		cache:         cfg.Cache,
	}
}

// BaseURL reports the service address the client talks to.
func (c *Client) BaseURL() string { return c.base }

// Analyze submits the request and returns the service's verdict. onProgress
// is only invoked for document uploads and may be nil.
func (c *Client) Analyze(ctx context.Context, req Request, onProgress ProgressFunc) (*Verdict, error) {
	switch req.Modality {
	case ModalityURL, ModalityText:
		return c.analyzeJSON(ctx, req)
	case ModalityDocument:
		return c.analyzeDocument(ctx, req, onProgress)
	default:
		return nil, invalidInput("Unknown analysis type.")
	}
}

func (c *Client) analyzeJSON(ctx context.Context, req Request) (*Verdict, error) {
	data := strings.TrimSpace(req.Data)
	if req.Modality == ModalityURL {
		result := validate.ValidateURL(data)
		if !result.Valid {
			return nil, invalidInput(result.Message)
		}
		if result.Corrected != "" {
			data = result.Corrected
		}
	} else if !validate.ValidText(data) {
		return nil, invalidInput(fmt.Sprintf("Please provide more than %d characters of text.", validate.MinTextLength))
	}

	if verdict, found := c.cache.Get(req.Modality, data); found {
		return verdict, nil
	}

	body, err := json.Marshal(map[string]string{
		"type": string(req.Modality),
		"data": data,
	})
	if err != nil {
		return nil, classify(err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.submitTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, classify(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	verdict, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}
	c.cache.Put(req.Modality, data, verdict)
	return verdict, nil
}

func (c *Client) analyzeDocument(ctx context.Context, req Request, onProgress ProgressFunc) (*Verdict, error) {
	if req.File == nil {
		return nil, invalidInput("Please select a file.")
	}
	// Re-stat so validity reflects the file as it exists right now, not the
	// state captured when it was picked.
	file, err := validate.StatFile(req.File.Path)
	if err != nil {
		return nil, invalidInput("The selected file is no longer readable. Please pick it again.")
	}
	if result := validate.ValidateFile(file); !result.Valid {
		return nil, invalidInput(result.Message)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("type", string(ModalityDocument)); err != nil {
		return nil, classify(err)
	}
	part, err := writer.CreateFormFile(uploadFieldName, file.Name)
	if err != nil {
		return nil, classify(err)
	}
	source, err := os.Open(file.Path)
	if err != nil {
		return nil, invalidInput("The selected file is no longer readable. Please pick it again.")
	}
	_, err = io.Copy(part, source)
	source.Close()
	if err != nil {
		return nil, classify(fmt.Errorf("read %s: %w", file.Name, err))
	}
	if err := writer.Close(); err != nil {
		return nil, classify(err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	upload := newProgressReader(bytes.NewReader(body.Bytes()), int64(body.Len()), onProgress)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/analyze", upload)
	if err != nil {
		return nil, classify(err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())
	httpReq.ContentLength = int64(body.Len())

	return c.do(httpReq)
}

// Health probes the service's liveness/capability endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	ctx, cancel := context.WithTimeout(ctx, c.submitTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/health", nil)
	if err != nil {
		return nil, classify(err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classify(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeServiceError(resp.StatusCode, payload)
	}
	var health Health
	if err := json.Unmarshal(payload, &health); err != nil {
		return nil, classify(fmt.Errorf("decode health payload: %w", err))
	}
	return &health, nil
}

func (c *Client) do(req *http.Request) (*Verdict, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classify(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeServiceError(resp.StatusCode, payload)
	}

	var verdict Verdict
	if err := json.Unmarshal(payload, &verdict); err != nil {
		return nil, classify(fmt.Errorf("decode verdict: %w", err))
	}
	return &verdict, nil
}

// decodeServiceError surfaces the service's own message verbatim when the
// error payload carries one; anything else is an unknown failure.
func decodeServiceError(status int, payload []byte) *Error {
	var wire struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(payload, &wire); err == nil && strings.TrimSpace(wire.Error) != "" {
		return serviceRejected(wire.Error, fmt.Errorf("service returned status %d", status))
	}
	return &Error{Kind: KindUnknown, Message: msgUnknown, cause: fmt.Errorf("unexpected status %d", status)}
}
