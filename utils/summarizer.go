package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"abinterior/service"

	openai "github.com/sashabaranov/go-openai"
)

const defaultSummaryModel = "gpt-4o-mini"

// OpenAISummarizer asks a chat model to summarise a customer's payment history.
type OpenAISummarizer struct {
	Client  *openai.Client
	Model   string
	Timeout time.Duration
}

func NewOpenAISummarizer(apiKey, model string) *OpenAISummarizer {
	return NewOpenAISummarizerWithConfig(openai.DefaultConfig(apiKey), model)
}

func NewOpenAISummarizerWithConfig(cfg openai.ClientConfig, model string) *OpenAISummarizer {
	if model == "" {
		model = defaultSummaryModel
	}
	return &OpenAISummarizer{
		Client:  openai.NewClientWithConfig(cfg),
		Model:   model,
		Timeout: 60 * time.Second,
	}
}

var summaryInstructions = map[service.SummaryKind]string{
	service.SummaryLatest:  "Summarise only the most recent transactions.",
	service.SummaryAll:     "Summarise the whole transaction history.",
	service.SummaryBalance: "Summarise the amounts billed, the amounts paid and the balance still owed.",
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, history string, kind service.SummaryKind) (string, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf("Transaction History:\n%s\n\nSummary Type: %s\n%s\n\nSummary:",
		history, kind, summaryInstructions[kind])

	resp, err := s.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a financial assistant specializing in summarizing customer payment activity. Amounts are in Indian Rupees.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
