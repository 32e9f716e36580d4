package chat

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/calmmind/calmmind/internal/logging"
	"github.com/calmmind/calmmind/internal/metrics"
	"github.com/calmmind/calmmind/internal/retry"
	"github.com/calmmind/calmmind/internal/traces"
)

// Generator produces LLM completions. Satisfied by OllamaClient; tests
// substitute a canned implementation.
type Generator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
	Stream(ctx context.Context, prompt, system string, fn func(token string) error) error
}

// OllamaClient talks to a local Ollama server over its HTTP API.
type OllamaClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

// NewOllamaClient creates a client for the Ollama server at baseURL.
func NewOllamaClient(baseURL, model string, timeout time.Duration) *OllamaClient {
	return &OllamaClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
	}
}

// Model returns the configured model name.
func (o *OllamaClient) Model() string {
	return o.model
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate requests a single non-streaming completion.
func (o *OllamaClient) Generate(ctx context.Context, prompt, system string) (string, error) {
	ctx, span := traces.StartSpan(ctx, "ollama.generate", traces.Model(o.model))
	defer span.End()

	start := time.Now()
	var body io.ReadCloser
	// Transport failures are retried; post marks HTTP status errors permanent.
	err := retry.Do(ctx, 3, 200*time.Millisecond, func() error {
		var postErr error
		body, postErr = o.post(ctx, generateRequest{
			Model:  o.model,
			Prompt: prompt,
			System: system,
			Stream: false,
		})
		return postErr
	})
	metrics.OllamaRequestDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.OllamaRequestsTotal.WithLabelValues("error").Inc()
		return "", err
	}
	defer body.Close()
	metrics.OllamaRequestsTotal.WithLabelValues("ok").Inc()

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read ollama response: %w", err)
	}

	var resp generateResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("parse ollama response: %w", err)
	}
	return resp.Response, nil
}

// Stream requests a streaming completion and calls fn for every token
// as it arrives. Ollama streams newline-delimited JSON chunks; the
// final chunk has done=true and an empty response.
func (o *OllamaClient) Stream(ctx context.Context, prompt, system string, fn func(token string) error) error {
	ctx, span := traces.StartSpan(ctx, "ollama.stream", traces.Model(o.model))
	defer span.End()

	start := time.Now()
	body, err := o.post(ctx, generateRequest{
		Model:  o.model,
		Prompt: prompt,
		System: system,
		Stream: true,
	})
	if err != nil {
		metrics.OllamaRequestsTotal.WithLabelValues("error").Inc()
		return err
	}
	defer func() {
		body.Close()
		metrics.OllamaRequestDuration.WithLabelValues("stream").Observe(time.Since(start).Seconds())
	}()
	metrics.OllamaRequestsTotal.WithLabelValues("ok").Inc()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk generateResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			logging.L(ctx).Warn("skipping malformed ollama chunk", "error", err)
			continue
		}
		if chunk.Response != "" {
			if err := fn(chunk.Response); err != nil {
				return err
			}
		}
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read ollama stream: %w", err)
	}
	return nil
}

// post sends the generate request and returns the response body on 200.
// The caller must close the returned reader. Non-200 responses are wrapped
// as permanent errors since the server answered; only transport failures
// are worth retrying.
func (o *OllamaClient) post(ctx context.Context, payload generateRequest) (io.ReadCloser, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode == http.StatusNotFound {
			var errResp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(body, &errResp); err == nil &&
				strings.Contains(errResp.Error, "model") && strings.Contains(errResp.Error, "not found") {
				return nil, retry.Permanent(fmt.Errorf("model %q not found, run: ollama pull %s", o.model, o.model))
			}
		}
		return nil, retry.Permanent(fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body)))
	}

	return resp.Body, nil
}
