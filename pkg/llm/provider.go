package llm

import "context"

// Message is a single chat turn in provider-neutral form.
type Message struct {
	Role    string
	Content string
}

// Options for a single generation call.
type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string
}

type Option func(*Options)

func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = t }
}

func WithMaxTokens(n int) Option {
	return func(o *Options) { o.MaxTokens = n }
}

// LLMProvider abstracts the language model used for transcript summarization.
type LLMProvider interface {
	Chat(ctx context.Context, history []Message, opts ...Option) (string, error)
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)
}
