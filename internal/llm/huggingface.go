package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HFConfig holds configuration for the Hugging Face inference API clients.
type HFConfig struct {
	APIKey  string
	Model   string        // generation or embedding model id, e.g. "mistralai/Mistral-7B-Instruct-v0.2"
	BaseURL string        // default: https://api-inference.huggingface.co
	Timeout time.Duration // default: 60s
}

func (c *HFConfig) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api-inference.huggingface.co"
	}
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
}

// HFClient implements TextGenerator using the Hugging Face text-generation
// inference API.
type HFClient struct {
	cfg            HFConfig
	client         *http.Client
	circuitBreaker *CircuitBreaker
}

// NewHFClient creates a new Hugging Face generation client.
func NewHFClient(cfg HFConfig) *HFClient {
	cfg.applyDefaults()
	if cfg.Model == "" {
		cfg.Model = "mistralai/Mistral-7B-Instruct-v0.2"
	}
	return &HFClient{
		cfg:            cfg,
		client:         &http.Client{Timeout: cfg.Timeout},
		circuitBreaker: NewCircuitBreaker("HFGeneration"),
	}
}

// hfGenerateRequest is the request body for POST /models/{model}.
type hfGenerateRequest struct {
	Inputs     string           `json:"inputs"`
	Parameters hfGenerateParams `json:"parameters"`
}

type hfGenerateParams struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

// hfGenerateResponse is the response body from POST /models/{model}.
type hfGenerateResponse []struct {
	GeneratedText string `json:"generated_text"`
}

// Complete sends a completion request and returns the generated text.
func (c *HFClient) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := c.circuitBreaker.Execute(ctx, func() (interface{}, error) {
		return c.complete(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, ErrCircuitOpen) {
			return "", fmt.Errorf("huggingface circuit breaker open: %w", err)
		}
		return "", err
	}
	return result.(string), nil
}

func (c *HFClient) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	reqBody := hfGenerateRequest{
		Inputs: prompt,
		Parameters: hfGenerateParams{
			MaxNewTokens: 300,
			Temperature:  0.2,
		},
	}

	body, err := c.post(ctx, c.cfg.BaseURL+"/models/"+url.PathEscape(c.cfg.Model), reqBody)
	if err != nil {
		return "", err
	}

	var respData hfGenerateResponse
	if err := json.Unmarshal(body, &respData); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(respData) == 0 {
		return "", fmt.Errorf("huggingface returned no generations")
	}
	return respData[0].GeneratedText, nil
}

// GetModel returns the configured model name.
func (c *HFClient) GetModel() string {
	return c.cfg.Model
}

// post sends a JSON POST request with bearer auth and returns the raw body.
func (c *HFClient) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	return hfPost(ctx, c.client, c.cfg.APIKey, url, payload)
}

// Compile-time assertion.
var _ TextGenerator = (*HFClient)(nil)

// HFEmbeddingClient implements EmbeddingGenerator using the Hugging Face
// feature-extraction pipeline. The pipeline accepts a batch of texts and
// returns a parallel batch of vectors.
type HFEmbeddingClient struct {
	cfg            HFConfig
	client         *http.Client
	circuitBreaker *CircuitBreaker
}

// NewHFEmbeddingClient creates a new Hugging Face embedding client.
func NewHFEmbeddingClient(cfg HFConfig) *HFEmbeddingClient {
	cfg.applyDefaults()
	if cfg.Model == "" {
		cfg.Model = "sentence-transformers/all-MiniLM-L6-v2"
	}
	if cfg.Timeout == 60*time.Second {
		cfg.Timeout = 30 * time.Second
	}
	return &HFEmbeddingClient{
		cfg:            cfg,
		client:         &http.Client{Timeout: cfg.Timeout},
		circuitBreaker: NewCircuitBreaker("HFEmbedding"),
	}
}

// hfEmbedRequest is the request body for the feature-extraction pipeline.
type hfEmbedRequest struct {
	Inputs []string `json:"inputs"`
}

// Embed generates an embedding vector for a single text.
func (c *HFEmbeddingClient) Embed(ctx context.Context, text string) ([]float64, error) {
	vecs, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch generates one embedding per input text, in order.
func (c *HFEmbeddingClient) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	result, err := c.circuitBreaker.Execute(ctx, func() (interface{}, error) {
		return c.embedBatch(ctx, texts)
	})
	if err != nil {
		if errors.Is(err, ErrCircuitOpen) {
			return nil, fmt.Errorf("huggingface embedding circuit breaker open: %w", err)
		}
		return nil, err
	}
	return result.([][]float64), nil
}

func (c *HFEmbeddingClient) embedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	endpoint := c.cfg.BaseURL + "/pipeline/feature-extraction/" + url.PathEscape(c.cfg.Model)
	body, err := hfPost(ctx, c.client, c.cfg.APIKey, endpoint, hfEmbedRequest{Inputs: texts})
	if err != nil {
		return nil, err
	}

	var vecs [][]float64
	if err := json.Unmarshal(body, &vecs); err != nil {
		return nil, fmt.Errorf("failed to decode embeddings: %w", err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("huggingface returned %d embeddings for %d inputs", len(vecs), len(texts))
	}
	return vecs, nil
}

// GetModel returns the configured model name.
func (c *HFEmbeddingClient) GetModel() string {
	return c.cfg.Model
}

// Compile-time assertion.
var _ EmbeddingGenerator = (*HFEmbeddingClient)(nil)

// hfPost sends a JSON POST request with bearer auth and returns the raw
// response body, erroring on any non-200 status.
func hfPost(ctx context.Context, client *http.Client, apiKey, url string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("huggingface returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
