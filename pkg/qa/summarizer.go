package qa

import (
	"context"
	"fmt"
	"strings"

	"ai-helpdesk-be/internal/pkg/logger"
	"ai-helpdesk-be/pkg/llm"
)

// EmptySummary is returned whenever there is nothing meaningful to summarize
// or the model call fails.
const EmptySummary = "Brief interaction with no significant details"

const summaryPromptTemplate = `You are a support bot tasked with summarizing a conversation log **in English only**. **Do not use external knowledge, assumptions, or general information.** Provide a concise summary (up to 100 words) based solely on the provided conversation log. If the log is empty or lacks meaningful content, return: "Brief interaction with no significant details."

Conversation Log:
%s

Summary (in English):`

// LLMSummarizer produces the closing-email summary via the LLM provider.
type LLMSummarizer struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

var _ Summarizer = &LLMSummarizer{}

func NewLLMSummarizer(provider llm.LLMProvider, log logger.ILogger) *LLMSummarizer {
	return &LLMSummarizer{provider: provider, logger: log}
}

func (s *LLMSummarizer) Summarize(ctx context.Context, logText string) string {
	if strings.TrimSpace(logText) == "" {
		return EmptySummary
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, logText)
	summary, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("SUMMARIZER", "Failed to summarize session", map[string]interface{}{
			"error": err.Error(),
		})
		return EmptySummary
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return EmptySummary
	}

	// Hard cap at 100 words regardless of what the model returns.
	words := strings.Fields(summary)
	if len(words) > 100 {
		summary = strings.Join(words[:100], " ") + "..."
	}
	return summary
}
