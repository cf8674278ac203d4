package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OpenAIProvider talks to any OpenAI-compatible endpoint (OpenAI itself,
// DeepSeek, and the like) selected by base URL.
type OpenAIProvider struct {
	apiKey     string
	baseURL    string
	model      string
	embedModel string
	client     *http.Client
}

func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &OpenAIProvider{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		embedModel: "text-embedding-3-small",
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

func (o *OpenAIProvider) info(model string) ProviderInfo {
	return ProviderInfo{Name: "openai", Model: model}
}

func (o *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, ProviderInfo, error) {
	if o.apiKey == "" {
		return CompletionResponse{}, o.info(o.model), fmt.Errorf("api key missing")
	}
	payload, _ := json.Marshal(map[string]any{
		"model":      o.model,
		"max_tokens": req.MaxTokens,
		"messages": []map[string]string{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.User},
		},
	})
	body, err := o.post(ctx, "/v1/chat/completions", payload)
	if err != nil {
		return CompletionResponse{}, o.info(o.model), err
	}
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return CompletionResponse{}, o.info(o.model), fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return CompletionResponse{}, o.info(o.model), fmt.Errorf("completion returned empty choices")
	}
	return CompletionResponse{Text: strings.TrimSpace(parsed.Choices[0].Message.Content)}, o.info(o.model), nil
}

func (o *OpenAIProvider) Embed(ctx context.Context, req EmbedRequest) ([][]float32, ProviderInfo, error) {
	if o.apiKey == "" {
		return nil, o.info(o.embedModel), fmt.Errorf("api key missing")
	}
	payload, _ := json.Marshal(map[string]any{"model": o.embedModel, "input": req.Inputs})
	body, err := o.post(ctx, "/v1/embeddings", payload)
	if err != nil {
		return nil, o.info(o.embedModel), err
	}
	var parsed struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, o.info(o.embedModel), fmt.Errorf("decode embedding response: %w", err)
	}
	out := make([][]float32, 0, len(parsed.Data))
	for _, d := range parsed.Data {
		out = append(out, matchDimension(d.Embedding, req.Dimension))
	}
	return out, o.info(o.embedModel), nil
}

func (o *OpenAIProvider) post(ctx context.Context, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s error %d: %s", path, resp.StatusCode, string(body))
	}
	return body, nil
}

// matchDimension truncates or zero-pads a vector to the requested dimension
// so the store's column width always matches. Zero keeps the native size.
func matchDimension(v []float32, dim int) []float32 {
	if dim <= 0 || len(v) == dim {
		return v
	}
	if len(v) > dim {
		return v[:dim]
	}
	out := make([]float32, dim)
	copy(out, v)
	return out
}
