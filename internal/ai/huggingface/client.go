package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/spigell/career-matcher/internal/ai"
	"github.com/spigell/career-matcher/internal/utils"
)

const (
	apiURL       = "https://router.huggingface.co/hf-inference/models"
	defaultModel = "mistralai/Mistral-7B-Instruct-v0.2"
	userAgent    = "spigell/career-matcher"
	contentType  = "application/json"

	defaultTimeout = 30 * time.Second
	maxNewTokens   = 150
	temperature    = 0.7
	// Responses bigger than this are not explanations.
	maxBodySize = 1 << 20
)

// Client calls the Hugging Face inference API for text generation.
type Client struct {
	token      string
	model      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

// New creates a client for model, defaulting to Mistral-7B-Instruct when model is empty.
func New(logger *zap.Logger, token, model string) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("huggingface api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		token:  token,
		model:  model,
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		UserAgent: userAgent,
		APIURL:    apiURL,
	}, nil
}

// GenerateContent makes a single inference call and returns the cleaned generated text.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(request{
		Inputs: prompt,
		Parameters: parameters{
			MaxNewTokens:   maxNewTokens,
			Temperature:    temperature,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal inference request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", strings.TrimRight(c.APIURL, "/"), c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	req = c.setHeaders(req)

	resp, err := c.request(req)
	if err != nil {
		return "", fmt.Errorf("huggingface request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read huggingface response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("bad status: %s: %s", resp.Status, utils.TruncateForLog(string(data), 200))
	}

	return parseResponse(data)
}

func (c *Client) Provider() string {
	return ai.ProviderHuggingFace
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Content-Type", contentType)

	return req
}

// parseResponse accepts either [{"generated_text": "..."}] or {"generated_text": "..."}.
func parseResponse(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("malformed huggingface response: %s", utils.TruncateForLog(string(data), 200))
	}

	result := gjson.ParseBytes(data)
	if msg := result.Get("error"); msg.Exists() {
		return "", fmt.Errorf("huggingface error: %s", msg.String())
	}

	var text gjson.Result
	switch {
	case result.IsArray():
		text = result.Get("0.generated_text")
	case result.IsObject():
		text = result.Get("generated_text")
	}

	if text.Type != gjson.String {
		return "", errors.New("huggingface response has no generated_text")
	}

	cleaned := strings.NewReplacer("[INST]", "", "[/INST]", "").Replace(text.String())
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "", fmt.Errorf("huggingface: %w", ai.ErrEmptyResponse)
	}

	return cleaned, nil
}
