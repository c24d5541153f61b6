package api_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flathive/flathive/internal/api"
	"github.com/flathive/flathive/internal/assistant"
	"github.com/flathive/flathive/internal/auth"
	"github.com/flathive/flathive/internal/events"
	"github.com/flathive/flathive/internal/live"
	"github.com/flathive/flathive/internal/model"
	"github.com/flathive/flathive/internal/store/memstore"
)

type testAPI struct {
	t     *testing.T
	srv   *httptest.Server
	token string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	st := memstore.New()
	jwt := auth.NewJWTManager("test-secret-key", time.Hour)
	router := api.NewRouter(api.Deps{
		Store:         st,
		Broker:        live.NewBroker(),
		Bus:           events.NewBus(),
		Assistant:     assistant.New(assistant.NewStaticProvider()),
		Authenticator: auth.NewPasswordAuthenticator(st.Flatmates()),
		JWT:           jwt,
		IsHealthy:     func() bool { return true },
		Log:           zerolog.Nop(),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testAPI{t: t, srv: srv}
}

// do issues a request, attaching the registered session token when present.
func (a *testAPI) do(method, path string, body interface{}) *http.Response {
	a.t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, a.srv.URL+path, rd)
	require.NoError(a.t, err)
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := a.srv.Client().Do(req)
	require.NoError(a.t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// register creates a flatmate account and stores its token on the client.
func (a *testAPI) register(email, name string) {
	a.t.Helper()
	resp := a.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"name":     name,
		"password": "hunter2hunter2",
	})
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)
	var body struct {
		Token    string          `json:"token"`
		Flatmate *model.Flatmate `json:"flatmate"`
	}
	decode(a.t, resp, &body)
	require.NotEmpty(a.t, body.Token)
	a.token = body.Token
}

func TestRegisterLoginMe(t *testing.T) {
	a := newTestAPI(t)
	a.register("ria@flat.test", "Ria")

	resp := a.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me model.Flatmate
	decode(t, resp, &me)
	assert.Equal(t, "ria@flat.test", me.Email)
	assert.Equal(t, "Ria", me.Name)
	assert.Empty(t, me.PasswordHash, "hash must never be serialized")

	resp = a.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ria@flat.test",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = a.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ria@flat.test",
		"password": "wrong password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	a := newTestAPI(t)
	for _, path := range []string{"/api/expenses", "/api/groceries", "/api/auth/me", "/api/groceries/watch"} {
		resp := a.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestExpenseCRUD(t *testing.T) {
	a := newTestAPI(t)
	a.register("dev@flat.test", "Dev")

	resp := a.do(http.MethodPost, "/api/expenses", map[string]interface{}{
		"name":     "March rent",
		"amount":   1200.0,
		"category": "Rent",
		"date":     time.Now().Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created model.Expense
	decode(t, resp, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Dev", created.PaidBy, "payer defaults to the session flatmate")

	resp = a.do(http.MethodGet, "/api/expenses", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed struct {
		Items []*model.Expense `json:"items"`
		Count int              `json:"count"`
	}
	decode(t, resp, &listed)
	require.Equal(t, 1, listed.Count)
	assert.Equal(t, created.ID, listed.Items[0].ID)

	created.Amount = 1250
	resp = a.do(http.MethodPut, "/api/expenses/"+created.ID, created)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated model.Expense
	decode(t, resp, &updated)
	assert.Equal(t, 1250.0, updated.Amount)

	resp = a.do(http.MethodDelete, "/api/expenses/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = a.do(http.MethodGet, "/api/expenses/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestExpenseValidation(t *testing.T) {
	a := newTestAPI(t)
	a.register("dev@flat.test", "Dev")

	resp := a.do(http.MethodPost, "/api/expenses", map[string]interface{}{
		"name":     "Mystery",
		"amount":   10.0,
		"category": "Not a category",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGroceryToggle(t *testing.T) {
	a := newTestAPI(t)
	a.register("dev@flat.test", "Dev")

	resp := a.do(http.MethodPost, "/api/groceries", map[string]interface{}{
		"name":     "Oat milk",
		"quantity": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item model.GroceryItem
	decode(t, resp, &item)
	require.False(t, item.Purchased)

	resp = a.do(http.MethodPost, "/api/groceries/"+item.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &item)
	assert.True(t, item.Purchased)

	resp = a.do(http.MethodPost, "/api/groceries/"+item.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &item)
	assert.False(t, item.Purchased)

	resp = a.do(http.MethodPost, "/api/groceries/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestPollVote(t *testing.T) {
	a := newTestAPI(t)
	a.register("dev@flat.test", "Dev")

	resp := a.do(http.MethodPost, "/api/polls", map[string]interface{}{
		"question": "Movie night pick?",
		"options": []map[string]interface{}{
			{"text": "Comedy"},
			{"text": "Horror"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var poll model.Poll
	decode(t, resp, &poll)

	resp = a.do(http.MethodPost, "/api/polls/"+poll.ID+"/vote", map[string]int{"optionIndex": 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &poll)
	assert.Equal(t, 1, poll.Options[0].Votes)

	// Changing the vote moves it rather than double counting.
	resp = a.do(http.MethodPost, "/api/polls/"+poll.ID+"/vote", map[string]int{"optionIndex": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &poll)
	assert.Equal(t, 0, poll.Options[0].Votes)
	assert.Equal(t, 1, poll.Options[1].Votes)

	resp = a.do(http.MethodPost, "/api/polls/"+poll.ID+"/vote", map[string]int{"optionIndex": 9})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// Create endpoints rebuild records through the model constructors, so
// write-time defaults hold no matter what the client sends.
func TestCreateAppliesWriteTimeDefaults(t *testing.T) {
	a := newTestAPI(t)
	a.register("dev@flat.test", "Dev")

	// Empty assignee falls back to the Unassigned sentinel and the
	// author flatmate is stamped server-side.
	resp := a.do(http.MethodPost, "/api/chores", map[string]interface{}{"name": "Take out trash"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var chore model.Chore
	decode(t, resp, &chore)
	assert.Equal(t, model.ChoreUnassigned, chore.AssignedTo)
	assert.NotEmpty(t, chore.FlatmateID)

	// A client claiming purchased:true still gets an unpurchased item.
	resp = a.do(http.MethodPost, "/api/groceries", map[string]interface{}{
		"name":      "Rice",
		"quantity":  1,
		"purchased": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var item model.GroceryItem
	decode(t, resp, &item)
	assert.False(t, item.Purchased)

	// Pre-filled tallies are zeroed at creation.
	resp = a.do(http.MethodPost, "/api/polls", map[string]interface{}{
		"question": "Dinner?",
		"options": []map[string]interface{}{
			{"text": "Dal", "votes": 7, "voters": []string{"ghost"}},
			{"text": "Pasta"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var poll model.Poll
	decode(t, resp, &poll)
	require.Len(t, poll.Options, 2)
	assert.Zero(t, poll.Options[0].Votes)
	assert.Empty(t, poll.Options[0].Voters)

	// Notes denormalize the session author and rotate the palette.
	for i, want := range []string{"yellow", "green"} {
		resp = a.do(http.MethodPost, "/api/notes", map[string]interface{}{
			"content": "note body",
			"color":   "chartreuse",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var note model.Note
		decode(t, resp, &note)
		assert.Equal(t, want, note.Color, "note %d", i)
		assert.Equal(t, "Dev", note.Author)
		assert.NotEmpty(t, note.AuthorID)
		assert.False(t, note.CreatedAt.IsZero())
	}

	// Tasks always start incomplete.
	resp = a.do(http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":     "Pay electricity bill",
		"completed": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var task model.Task
	decode(t, resp, &task)
	assert.False(t, task.Completed)
}

func TestAssistantEndpoints(t *testing.T) {
	a := newTestAPI(t)
	a.register("dev@flat.test", "Dev")

	resp := a.do(http.MethodPost, "/api/assistant/chat", assistant.ChatRequest{Message: "How do we split rent?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var chat assistant.ChatReply
	decode(t, resp, &chat)
	assert.NotEmpty(t, chat.Response)

	resp = a.do(http.MethodPost, "/api/assistant/chat", assistant.ChatRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = a.do(http.MethodPost, "/api/assistant/grocery-suggestions", assistant.GrocerySuggestionsRequest{
		PastPurchases: []string{"Milk", "Eggs"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var grocery assistant.GrocerySuggestionsReply
	decode(t, resp, &grocery)
	assert.NotEmpty(t, grocery.Suggestions)

	resp = a.do(http.MethodPost, "/api/assistant/self-care", assistant.SelfCareRequest{
		Mood:              model.MoodStressed,
		SleepHours:        5,
		ProductivityLevel: model.ProductivityLow,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var care assistant.SelfCareReply
	decode(t, resp, &care)
	assert.NotEmpty(t, care.SelfCareAdvice)

	resp = a.do(http.MethodPost, "/api/assistant/self-care", assistant.SelfCareRequest{
		Mood:       "Furious",
		SleepHours: 5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	a := newTestAPI(t)

	resp := a.do(http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]interface{}
	decode(t, resp, &health)
	assert.Equal(t, "healthy", health["status"])

	resp = a.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// TestWatchStreamsSnapshots drives the SSE endpoint end to end: connect with
// a query-param token, read the initial snapshot, mutate the collection, and
// read the refreshed snapshot.
func TestWatchStreamsSnapshots(t *testing.T) {
	a := newTestAPI(t)
	a.register("dev@flat.test", "Dev")

	resp := a.do(http.MethodPost, "/api/groceries", map[string]interface{}{"name": "Coffee", "quantity": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	req, err := http.NewRequest(http.MethodGet, a.srv.URL+"/api/groceries/watch?token="+a.token, nil)
	require.NoError(t, err)
	stream, err := a.srv.Client().Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	require.Equal(t, http.StatusOK, stream.StatusCode)
	require.Equal(t, "text/event-stream", stream.Header.Get("Content-Type"))

	events := make(chan sseEvent, 8)
	go readSSE(stream.Body, events)

	first := waitEvent(t, events)
	require.Equal(t, "snapshot", first.name)
	assert.Contains(t, first.data, "Coffee")

	resp = a.do(http.MethodPost, "/api/groceries", map[string]interface{}{"name": "Sugar", "quantity": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-events:
			require.Equal(t, "snapshot", ev.name)
			if strings.Contains(ev.data, "Sugar") {
				return
			}
		case <-deadline:
			t.Fatal("never observed the refreshed snapshot")
		}
	}
}

func TestWatchDocumentTracksVotes(t *testing.T) {
	a := newTestAPI(t)
	a.register("dev@flat.test", "Dev")

	resp := a.do(http.MethodPost, "/api/polls", map[string]interface{}{
		"question": "Dinner?",
		"options": []map[string]interface{}{
			{"text": "Pizza"},
			{"text": "Curry"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var poll model.Poll
	decode(t, resp, &poll)

	req, err := http.NewRequest(http.MethodGet, a.srv.URL+"/api/polls/"+poll.ID+"/watch?token="+a.token, nil)
	require.NoError(t, err)
	stream, err := a.srv.Client().Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	require.Equal(t, http.StatusOK, stream.StatusCode)

	events := make(chan sseEvent, 8)
	go readSSE(stream.Body, events)

	first := waitEvent(t, events)
	require.Equal(t, "snapshot", first.name)
	assert.Contains(t, first.data, `"exists":true`)
	assert.Contains(t, first.data, "Pizza")

	resp = a.do(http.MethodPost, "/api/polls/"+poll.ID+"/vote", map[string]int{"optionIndex": 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case ev := <-events:
			require.Equal(t, "snapshot", ev.name)
			if strings.Contains(ev.data, `"votes":1`) {
				return
			}
		case <-deadline:
			t.Fatal("never observed the vote in the document stream")
		}
	}
}

func TestWatchRejectsBadQuery(t *testing.T) {
	a := newTestAPI(t)
	a.register("dev@flat.test", "Dev")

	req, err := http.NewRequest(http.MethodGet, a.srv.URL+"/api/groceries/watch?token="+a.token+"&where=broken", nil)
	require.NoError(t, err)
	resp, err := a.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type sseEvent struct {
	name string
	data string
}

func readSSE(r io.Reader, out chan<- sseEvent) {
	scanner := bufio.NewScanner(r)
	var ev sseEvent
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data = strings.TrimPrefix(line, "data: ")
		case line == "" && ev.name != "":
			out <- ev
			ev = sseEvent{}
		}
	}
}

func waitEvent(t *testing.T, events <-chan sseEvent) sseEvent {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for SSE event")
		return sseEvent{}
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	a := newTestAPI(t)
	resp, err := http.Get(fmt.Sprintf("%s/api/nope", a.srv.URL))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
