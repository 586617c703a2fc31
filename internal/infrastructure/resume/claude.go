package resume

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"talent-hub/internal/config"
	domain "talent-hub/internal/domain/resume"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"
)

const extractionPrompt = `Extract the candidate details from the attached resume and return them as a JSON object with exactly these fields:

{
  "name": "string",
  "email": "string",
  "phone": "string",
  "skills": ["string"],
  "experience": [{"title": "string", "company": "string", "start_date": "YYYY-MM-DD", "end_date": "YYYY-MM-DD", "description": "string"}],
  "education": [{"school": "string", "degree": "string", "field_of_study": "string", "start_year": 0, "end_year": 0}]
}

Rules:
1. Return ONLY valid JSON.
2. Use "" for missing strings, [] for missing lists and 0 for missing years.
3. List each skill once, as written in the resume.
4. If the document is not a resume, return the structure with empty values.`

// Claude extracts resume fields with the Anthropic Messages API.
type Claude struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	timeout   time.Duration
	logger    logrus.FieldLogger
}

func NewClaude(cfg config.ResumeConfig, logger logrus.FieldLogger) *Claude {
	return &Claude{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey)),
		model:     anthropic.Model(cfg.Model),
		maxTokens: 2048,
		timeout:   60 * time.Second,
		logger:    logger,
	}
}

func (c *Claude) Extract(ctx context.Context, doc domain.Document) (domain.Parsed, error) {
	kind, err := Sniff(doc.Data)
	if err != nil {
		return domain.Parsed{}, err
	}

	var source anthropic.ContentBlockParamUnion
	switch kind {
	case KindPDF:
		source = anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
			Data: base64.StdEncoding.EncodeToString(doc.Data),
		})
	default:
		source = anthropic.NewDocumentBlock(anthropic.PlainTextSourceParam{Data: string(doc.Data)})
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(source, anthropic.NewTextBlock(extractionPrompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == 400 {
			// The API rejects documents it cannot open.
			return domain.Parsed{}, fmt.Errorf("%w: %v", domain.ErrUnparseable, err)
		}
		return domain.Parsed{}, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	var text string
	for _, block := range resp.Content {
		if t := block.AsText().Text; t != "" {
			text = t
			break
		}
	}
	parsed, err := ParseResponse(text)
	if err != nil {
		return domain.Parsed{}, err
	}

	c.logger.WithFields(logrus.Fields{
		"file":    doc.Filename,
		"kind":    kind,
		"skills":  len(parsed.Skills),
		"latency": time.Since(start),
	}).Info("resume extracted")
	return parsed, nil
}

// ParseResponse decodes the model's JSON answer, tolerating a markdown code
// fence around it.
func ParseResponse(text string) (domain.Parsed, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Parsed{}, fmt.Errorf("%w: empty extraction response", domain.ErrUnparseable)
	}
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	var p domain.Parsed
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return domain.Parsed{}, fmt.Errorf("%w: %v", domain.ErrUnparseable, err)
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []domain.Experience{}
	}
	if p.Education == nil {
		p.Education = []domain.Education{}
	}
	return p, nil
}
