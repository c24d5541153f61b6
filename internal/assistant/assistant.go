// Package assistant implements the household AI advisory functions: free-form
// chat, grocery restock suggestions, and self-care advice. Each flow
// validates its input, renders one prompt, makes a single completion call,
// and validates the output. There is no retry and no streaming.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/flathive/flathive/internal/model"
)

// Completer is a one-shot text completion provider.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Assistant runs the advisory flows over an injected provider.
type Assistant struct {
	completer Completer
}

func New(c Completer) *Assistant { return &Assistant{completer: c} }

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatReply struct {
	Response string `json:"response"`
}

const chatPrompt = `You are FlatHive's household assistant. You help flatmates
with shared-living questions: splitting expenses, organizing chores, planning
events, and keeping the flat running smoothly. Keep answers short and
practical.

Flatmate's message: %s`

// Chat answers a free-form flatmate message.
func (a *Assistant) Chat(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", model.ErrValidation)
	}
	out, err := a.completer.Complete(ctx, fmt.Sprintf(chatPrompt, req.Message))
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	return &ChatReply{Response: strings.TrimSpace(out)}, nil
}

type GrocerySuggestionsRequest struct {
	PastPurchases []string `json:"pastPurchases"`
}

type GrocerySuggestionsReply struct {
	Suggestions []string `json:"suggestions"`
}

// fallbackSuggestions is returned without a provider call when there is no
// purchase history to reason over.
var fallbackSuggestions = []string{"Milk", "Bread", "Eggs", "Rice", "Cooking oil"}

const groceryPrompt = `A shared flat's recent grocery purchases, one per line:

%s

Suggest up to 5 items the flat is likely to need restocked soon. Reply with
one item name per line and nothing else.`

// GrocerySuggestions proposes restock items from purchase history.
func (a *Assistant) GrocerySuggestions(ctx context.Context, req GrocerySuggestionsRequest) (*GrocerySuggestionsReply, error) {
	past := make([]string, 0, len(req.PastPurchases))
	for _, p := range req.PastPurchases {
		if s := strings.TrimSpace(p); s != "" {
			past = append(past, s)
		}
	}
	if len(past) == 0 {
		return &GrocerySuggestionsReply{Suggestions: append([]string(nil), fallbackSuggestions...)}, nil
	}

	out, err := a.completer.Complete(ctx, fmt.Sprintf(groceryPrompt, strings.Join(past, "\n")))
	if err != nil {
		return nil, fmt.Errorf("grocery suggestions completion: %w", err)
	}
	suggestions := parseLines(out, 5)
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("grocery suggestions: empty completion")
	}
	return &GrocerySuggestionsReply{Suggestions: suggestions}, nil
}

type SelfCareRequest struct {
	Mood              model.Mood         `json:"mood"`
	SleepHours        float64            `json:"sleepHours"`
	ProductivityLevel model.Productivity `json:"productivityLevel"`
}

type SelfCareReply struct {
	SelfCareAdvice string `json:"selfCareAdvice"`
}

const selfCarePrompt = `A flatmate logged today's wellness check-in:
mood: %s, sleep: %.1f hours, productivity: %s.

Give one short, encouraging paragraph of self-care advice tailored to that
check-in. No lists, no preamble.`

// SelfCareAdvice tailors a short piece of advice to a wellness check-in.
func (a *Assistant) SelfCareAdvice(ctx context.Context, req SelfCareRequest) (*SelfCareReply, error) {
	if !model.ValidMood(req.Mood) {
		return nil, fmt.Errorf("%w: unknown mood %q", model.ErrValidation, req.Mood)
	}
	if !model.ValidProductivity(req.ProductivityLevel) {
		return nil, fmt.Errorf("%w: unknown productivity level %q", model.ErrValidation, req.ProductivityLevel)
	}
	if req.SleepHours < 0 || req.SleepHours > 24 {
		return nil, fmt.Errorf("%w: sleep hours must be between 0 and 24", model.ErrValidation)
	}
	out, err := a.completer.Complete(ctx, fmt.Sprintf(selfCarePrompt, req.Mood, req.SleepHours, req.ProductivityLevel))
	if err != nil {
		return nil, fmt.Errorf("self-care completion: %w", err)
	}
	advice := strings.TrimSpace(out)
	if advice == "" {
		return nil, fmt.Errorf("self-care advice: empty completion")
	}
	return &SelfCareReply{SelfCareAdvice: advice}, nil
}

// parseLines splits a completion into at most limit non-empty trimmed lines,
// stripping common list markers.
func parseLines(s string, limit int) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*• \t")
		for i := 1; i <= 9; i++ {
			line = strings.TrimPrefix(line, fmt.Sprintf("%d.", i))
			line = strings.TrimPrefix(line, fmt.Sprintf("%d)", i))
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}
