package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel   = "gemini-2.5-flash-image"
	defaultTimeout = 5 * time.Minute
)

// Config carries the backend connection settings.
type Config struct {
	APIKey  string
	APIBase string
	Model   string
	Timeout time.Duration
}

// Client calls the image generation API to translate screenshot text.
// Safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.APIBase == "" {
		cfg.APIBase = defaultAPIBase
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// TranslateImage submits one screenshot and returns the translated
// image bytes. Any response without an image part is an error; the
// caller decides whether to retry, this client never does.
func (c *Client) TranslateImage(ctx context.Context, req ImageRequest) ([]byte, error) {
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}

	body := generateRequest{
		Contents: []content{
			{
				Parts: []part{
					{Text: buildInstruction(req)},
					{InlineData: &inlineData{
						MimeType: req.MimeType,
						Data:     base64.StdEncoding.EncodeToString(req.Data),
					}},
				},
			},
		},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"IMAGE"},
		},
	}
	if req.AspectRatio != "" {
		body.GenerationConfig.ImageConfig = &imageConfig{AspectRatio: req.AspectRatio}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s:generateContent", c.cfg.APIBase, c.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("image translation request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image translation API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 300))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if len(parsed.Candidates) == 0 {
		if parsed.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("request blocked: %s", parsed.PromptFeedback.BlockReason)
		}
		return nil, fmt.Errorf("no candidates in response")
	}

	for _, p := range parsed.Candidates[0].Content.Parts {
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return nil, fmt.Errorf("decode image payload: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("no image part in response")
}

// buildInstruction produces the natural-language prompt naming the
// source and target languages plus the do-not-translate list.
func buildInstruction(req ImageRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb,
		"Translate all %s text in this app screenshot into %s. ",
		req.SourceLanguage, req.TargetLanguage)
	sb.WriteString("Keep the layout, colors, device frames and imagery exactly as they are; only replace the rendered text. ")
	sb.WriteString("Match the original font weight and size as closely as possible.")
	if len(req.PreserveWords) > 0 {
		sb.WriteString(" Do not translate the following words, keep them verbatim: ")
		sb.WriteString(strings.Join(req.PreserveWords, ", "))
		sb.WriteString(".")
	}
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
