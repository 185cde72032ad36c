// Package ai provides the text-generation capability behind every
// AI-backed page, built on an Ark chat model through an eino chain.
package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/oguzkopan/teletext-sub000/internal/config"
	"github.com/oguzkopan/teletext-sub000/internal/model/session"
)

// ConfigError reports a permanently unconfigured backend, as opposed to
// a transient upstream failure. Handlers render it as a setup page.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ai backend not configured; missing %s", strings.Join(e.Missing, ", "))
}

// Service runs generation requests through the compiled chat chain.
type Service struct {
	cfg   config.AIConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the chat chain. A missing credential comes back as
// a *ConfigError so callers can tell "set it up" apart from "retry".
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	if !cfg.Enabled() {
		return nil, &ConfigError{Missing: cfg.Missing()}
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{cfg: cfg, chain: runnable}, nil
}

// Generate produces the model's answer to prompt given the conversation
// history. The configured timeout bounds the upstream call.
func (s *Service) Generate(ctx context.Context, promptText string, history []session.Turn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	input := map[string]any{
		"system":  systemPrompt,
		"history": buildHistoryMessages(history),
		"query":   promptText,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run generation chain: %w", err)
	}

	log.Printf("[ai] generated response, prompt length=%d, answer length=%d",
		len(promptText), len(response.Content))
	return response.Content, nil
}

// buildHistoryMessages converts stored turns into model messages,
// keeping only the most recent exchanges.
func buildHistoryMessages(history []session.Turn) []*schema.Message {
	const historyLimit = 10

	if len(history) == 0 {
		return nil
	}

	startIdx := 0
	if len(history) > historyLimit {
		startIdx = len(history) - historyLimit
	}

	messages := make([]*schema.Message, 0, len(history)-startIdx)
	for _, turn := range history[startIdx:] {
		switch turn.Role {
		case session.RoleUser:
			messages = append(messages, schema.UserMessage(turn.Text))
		case session.RoleModel:
			messages = append(messages, schema.AssistantMessage(turn.Text, nil))
		}
	}

	return messages
}
