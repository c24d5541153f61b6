package assistant

import (
	"context"
	"strings"
)

// StaticProvider is the no-dependency provider used in dev and tests. It
// keys canned responses off prompt content so every flow gets a plausible
// answer without a model behind it.
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider { return &StaticProvider{} }

func (p *StaticProvider) Complete(ctx context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "restocked"):
		return "Milk\nBread\nEggs", nil
	case strings.Contains(prompt, "self-care"):
		return "Take a short walk, drink some water, and get to bed a little earlier tonight. Small resets add up.", nil
	default:
		return "I'm a placeholder assistant. Configure an Ollama or Gemini provider for real answers.", nil
	}
}
