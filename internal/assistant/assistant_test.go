package assistant

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flathive/flathive/internal/model"
)

type fakeCompleter struct {
	reply  string
	err    error
	calls  int
	prompt string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.reply, f.err
}

func TestChat(t *testing.T) {
	fc := &fakeCompleter{reply: "  Split the bill three ways.  "}
	a := New(fc)

	reply, err := a.Chat(context.Background(), ChatRequest{Message: "How do we split rent?"})
	require.NoError(t, err)
	assert.Equal(t, "Split the bill three ways.", reply.Response)
	assert.Contains(t, fc.prompt, "How do we split rent?")
}

func TestChatRequiresMessage(t *testing.T) {
	fc := &fakeCompleter{reply: "hi"}
	a := New(fc)

	_, err := a.Chat(context.Background(), ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Zero(t, fc.calls)
}

func TestChatPropagatesProviderError(t *testing.T) {
	a := New(&fakeCompleter{err: errors.New("model offline")})
	_, err := a.Chat(context.Background(), ChatRequest{Message: "hello"})
	assert.Error(t, err)
}

func TestGrocerySuggestionsParsesLines(t *testing.T) {
	fc := &fakeCompleter{reply: "- Milk\n2. Bread\n\n* Eggs\n"}
	a := New(fc)

	reply, err := a.GrocerySuggestions(context.Background(), GrocerySuggestionsRequest{
		PastPurchases: []string{"Milk", "Pasta"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk", "Bread", "Eggs"}, reply.Suggestions)
	assert.Contains(t, fc.prompt, "Pasta")
}

func TestGrocerySuggestionsEmptyHistorySkipsProvider(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("must not be called")}
	a := New(fc)

	reply, err := a.GrocerySuggestions(context.Background(), GrocerySuggestionsRequest{
		PastPurchases: []string{"", "   "},
	})
	require.NoError(t, err)
	assert.Equal(t, fallbackSuggestions, reply.Suggestions)
	assert.Zero(t, fc.calls)
}

func TestGrocerySuggestionsCapsAtFive(t *testing.T) {
	fc := &fakeCompleter{reply: "a\nb\nc\nd\ne\nf\ng"}
	a := New(fc)

	reply, err := a.GrocerySuggestions(context.Background(), GrocerySuggestionsRequest{PastPurchases: []string{"x"}})
	require.NoError(t, err)
	assert.Len(t, reply.Suggestions, 5)
}

func TestGrocerySuggestionsEmptyCompletionIsError(t *testing.T) {
	a := New(&fakeCompleter{reply: "\n\n  \n"})
	_, err := a.GrocerySuggestions(context.Background(), GrocerySuggestionsRequest{PastPurchases: []string{"x"}})
	assert.Error(t, err)
}

func TestSelfCareAdvice(t *testing.T) {
	fc := &fakeCompleter{reply: "Rest up tonight."}
	a := New(fc)

	reply, err := a.SelfCareAdvice(context.Background(), SelfCareRequest{
		Mood:              model.MoodStressed,
		SleepHours:        5.5,
		ProductivityLevel: model.ProductivityLow,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rest up tonight.", reply.SelfCareAdvice)
}

func TestSelfCareAdviceValidation(t *testing.T) {
	a := New(&fakeCompleter{reply: "ok"})
	ctx := context.Background()

	cases := []SelfCareRequest{
		{Mood: "Ecstatic", SleepHours: 8, ProductivityLevel: model.ProductivityHigh},
		{Mood: model.MoodHappy, SleepHours: 8, ProductivityLevel: "Hyper"},
		{Mood: model.MoodHappy, SleepHours: -1, ProductivityLevel: model.ProductivityHigh},
		{Mood: model.MoodHappy, SleepHours: 25, ProductivityLevel: model.ProductivityHigh},
	}
	for _, req := range cases {
		_, err := a.SelfCareAdvice(ctx, req)
		assert.ErrorIs(t, err, model.ErrValidation, "req %+v", req)
	}
}

func TestStaticProviderCoversAllFlows(t *testing.T) {
	a := New(NewStaticProvider())
	ctx := context.Background()

	chat, err := a.Chat(ctx, ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, chat.Response)

	gro, err := a.GrocerySuggestions(ctx, GrocerySuggestionsRequest{PastPurchases: []string{"Milk"}})
	require.NoError(t, err)
	assert.NotEmpty(t, gro.Suggestions)

	sc, err := a.SelfCareAdvice(ctx, SelfCareRequest{Mood: model.MoodHappy, SleepHours: 8, ProductivityLevel: model.ProductivityHigh})
	require.NoError(t, err)
	assert.NotEmpty(t, sc.SelfCareAdvice)
}
