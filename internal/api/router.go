package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/flathive/flathive/internal/api/recovery"
	"github.com/flathive/flathive/internal/api/respond"
	"github.com/flathive/flathive/internal/api/validate"
	"github.com/flathive/flathive/internal/assistant"
	"github.com/flathive/flathive/internal/auth"
	"github.com/flathive/flathive/internal/events"
	"github.com/flathive/flathive/internal/live"
	"github.com/flathive/flathive/internal/model"
	"github.com/flathive/flathive/internal/store"
)

// Deps are the router's collaborators, built by the composition root.
type Deps struct {
	Store         store.Store
	Broker        *live.Broker
	Bus           *events.Bus
	Assistant     *assistant.Assistant
	Authenticator *auth.PasswordAuthenticator
	JWT           *auth.JWTManager
	IsHealthy     func() bool
	Log           zerolog.Logger
}

// NewRouter wires every route and the middleware stack.
func NewRouter(d Deps) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)
	router.Use(LoggingMiddleware(d.Log))
	router.Use(MetricsMiddleware)

	authHandler := NewAuthHandler(d.Authenticator, d.JWT, d.Store.Flatmates())
	healthHandler := NewHealthHandler(d.IsHealthy)
	assistantHandler := NewAssistantHandler(d.Assistant)

	// Public routes. Everything else under /api requires a session.
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(auth.RequireSession(d.JWT, func(w http.ResponseWriter, r *http.Request, err error) {
		respond.WriteUnauthorized(w, err.Error())
	}))

	protected.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)
	protected.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)

	protected.HandleFunc("/assistant/chat", assistantHandler.Chat).Methods(http.MethodPost)
	protected.HandleFunc("/assistant/grocery-suggestions", assistantHandler.GrocerySuggestions).Methods(http.MethodPost)
	protected.HandleFunc("/assistant/self-care", assistantHandler.SelfCare).Methods(http.MethodPost)

	// Watches first: their literal "watch" segment must win over the
	// CRUD routes' {id} pattern.
	registerWatches(protected, d)
	registerCollections(protected, d)

	return router
}

// registerCollections wires the CRUD resources. Create paths rebuild the
// decoded record through the model constructors so write-time defaults and
// session denormalization apply in one place.
func registerCollections(r *mux.Router, d Deps) {
	s := d.Store

	resource[model.Flatmate]{
		name: store.CollectionFlatmates,
		create: func(req *http.Request, rec *model.Flatmate) (*model.Flatmate, error) {
			return s.Flatmates().Create(req.Context(), rec)
		},
		get: func(req *http.Request, id string) (*model.Flatmate, error) {
			return s.Flatmates().Get(req.Context(), id)
		},
		list: func(req *http.Request) ([]*model.Flatmate, error) {
			return s.Flatmates().List(req.Context())
		},
		update: func(req *http.Request, rec *model.Flatmate) (*model.Flatmate, error) {
			return s.Flatmates().Update(req.Context(), rec)
		},
		remove: func(req *http.Request, id string) error {
			return s.Flatmates().Delete(req.Context(), id)
		},
	}.register(r, d.Broker)

	resource[model.Expense]{
		name:           store.CollectionExpenses,
		validateCreate: validate.CreateExpense,
		create: func(req *http.Request, rec *model.Expense) (*model.Expense, error) {
			exp := model.NewExpense(rec.Name, rec.Amount, rec.Category, rec.Date, sessionFlatmate(req), time.Now())
			return s.Expenses().Create(req.Context(), exp)
		},
		get: func(req *http.Request, id string) (*model.Expense, error) {
			return s.Expenses().Get(req.Context(), id)
		},
		list: func(req *http.Request) ([]*model.Expense, error) {
			return s.Expenses().List(req.Context())
		},
		update: func(req *http.Request, rec *model.Expense) (*model.Expense, error) {
			return s.Expenses().Update(req.Context(), rec)
		},
		remove: func(req *http.Request, id string) error {
			return s.Expenses().Delete(req.Context(), id)
		},
	}.register(r, d.Broker)

	resource[model.GroceryItem]{
		name:           store.CollectionGroceries,
		validateCreate: validate.CreateGroceryItem,
		create: func(req *http.Request, rec *model.GroceryItem) (*model.GroceryItem, error) {
			return s.Groceries().Create(req.Context(), model.NewGroceryItem(rec.Name, rec.Quantity, sessionFlatmate(req)))
		},
		get: func(req *http.Request, id string) (*model.GroceryItem, error) {
			return s.Groceries().Get(req.Context(), id)
		},
		list: func(req *http.Request) ([]*model.GroceryItem, error) {
			return s.Groceries().List(req.Context())
		},
		update: func(req *http.Request, rec *model.GroceryItem) (*model.GroceryItem, error) {
			return s.Groceries().Update(req.Context(), rec)
		},
		remove: func(req *http.Request, id string) error {
			return s.Groceries().Delete(req.Context(), id)
		},
		toggle: func(req *http.Request, id string) (*model.GroceryItem, error) {
			return s.Groceries().TogglePurchased(req.Context(), id)
		},
	}.register(r, d.Broker)

	resource[model.Chore]{
		name:           store.CollectionChores,
		validateCreate: validate.CreateChore,
		create: func(req *http.Request, rec *model.Chore) (*model.Chore, error) {
			return s.Chores().Create(req.Context(), model.NewChore(rec.Name, rec.AssignedTo, sessionFlatmate(req)))
		},
		get: func(req *http.Request, id string) (*model.Chore, error) {
			return s.Chores().Get(req.Context(), id)
		},
		list: func(req *http.Request) ([]*model.Chore, error) {
			return s.Chores().List(req.Context())
		},
		update: func(req *http.Request, rec *model.Chore) (*model.Chore, error) {
			return s.Chores().Update(req.Context(), rec)
		},
		remove: func(req *http.Request, id string) error {
			return s.Chores().Delete(req.Context(), id)
		},
		toggle: func(req *http.Request, id string) (*model.Chore, error) {
			return s.Chores().ToggleCompleted(req.Context(), id)
		},
	}.register(r, d.Broker)

	resource[model.Event]{
		name:           store.CollectionEvents,
		validateCreate: validate.CreateEvent,
		create: func(req *http.Request, rec *model.Event) (*model.Event, error) {
			return s.Events().Create(req.Context(), model.NewEvent(rec.Title, rec.Date, rec.Type, sessionFlatmate(req)))
		},
		get: func(req *http.Request, id string) (*model.Event, error) {
			return s.Events().Get(req.Context(), id)
		},
		list: func(req *http.Request) ([]*model.Event, error) {
			return s.Events().List(req.Context())
		},
		update: func(req *http.Request, rec *model.Event) (*model.Event, error) {
			return s.Events().Update(req.Context(), rec)
		},
		remove: func(req *http.Request, id string) error {
			return s.Events().Delete(req.Context(), id)
		},
	}.register(r, d.Broker)

	resource[model.Poll]{
		name:           store.CollectionPolls,
		validateCreate: validate.CreatePoll,
		create: func(req *http.Request, rec *model.Poll) (*model.Poll, error) {
			texts := make([]string, 0, len(rec.Options))
			for _, o := range rec.Options {
				texts = append(texts, o.Text)
			}
			return s.Polls().Create(req.Context(), model.NewPoll(rec.Question, texts, sessionFlatmate(req)))
		},
		get: func(req *http.Request, id string) (*model.Poll, error) {
			return s.Polls().Get(req.Context(), id)
		},
		list: func(req *http.Request) ([]*model.Poll, error) {
			return s.Polls().List(req.Context())
		},
		update: func(req *http.Request, rec *model.Poll) (*model.Poll, error) {
			return s.Polls().Update(req.Context(), rec)
		},
		remove: func(req *http.Request, id string) error {
			return s.Polls().Delete(req.Context(), id)
		},
	}.register(r, d.Broker)

	// Vote POST /api/polls/{id}/vote
	r.HandleFunc("/polls/{id}/vote", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			OptionIndex int `json:"optionIndex"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			respond.WriteBadRequest(w, "Invalid JSON")
			return
		}
		poll, err := s.Polls().Vote(req.Context(), mux.Vars(req)["id"], body.OptionIndex, sessionID(req))
		if err != nil {
			respond.WriteStoreError(w, err)
			return
		}
		d.Broker.Notify(store.CollectionPolls)
		respond.WriteJSON(w, http.StatusOK, poll)
	}).Methods(http.MethodPost)

	resource[model.Note]{
		name:           store.CollectionNotes,
		validateCreate: validate.CreateNote,
		create: func(req *http.Request, rec *model.Note) (*model.Note, error) {
			n := model.NewNote(rec.Content, sessionFlatmate(req), noteSeq(req, s), time.Now())
			return s.Notes().Create(req.Context(), n)
		},
		get: func(req *http.Request, id string) (*model.Note, error) {
			return s.Notes().Get(req.Context(), id)
		},
		list: func(req *http.Request) ([]*model.Note, error) {
			return s.Notes().List(req.Context())
		},
		update: func(req *http.Request, rec *model.Note) (*model.Note, error) {
			return s.Notes().Update(req.Context(), rec)
		},
		remove: func(req *http.Request, id string) error {
			return s.Notes().Delete(req.Context(), id)
		},
	}.register(r, d.Broker)

	resource[model.MoodEntry]{
		name:           store.CollectionMoods,
		validateCreate: validate.CreateMoodEntry,
		create: func(req *http.Request, rec *model.MoodEntry) (*model.MoodEntry, error) {
			m := model.NewMoodEntry(rec.Date, rec.Mood, rec.SleepHours, rec.Productivity, sessionFlatmate(req), time.Now())
			return s.Moods().Create(req.Context(), m)
		},
		get: func(req *http.Request, id string) (*model.MoodEntry, error) {
			return s.Moods().Get(req.Context(), id)
		},
		list: func(req *http.Request) ([]*model.MoodEntry, error) {
			return s.Moods().List(req.Context())
		},
		update: func(req *http.Request, rec *model.MoodEntry) (*model.MoodEntry, error) {
			return s.Moods().Update(req.Context(), rec)
		},
		remove: func(req *http.Request, id string) error {
			return s.Moods().Delete(req.Context(), id)
		},
	}.register(r, d.Broker)

	resource[model.Service]{
		name:           store.CollectionServices,
		validateCreate: validate.CreateService,
		create: func(req *http.Request, rec *model.Service) (*model.Service, error) {
			return s.Services().Create(req.Context(), rec)
		},
		get: func(req *http.Request, id string) (*model.Service, error) {
			return s.Services().Get(req.Context(), id)
		},
		list: func(req *http.Request) ([]*model.Service, error) {
			return s.Services().List(req.Context())
		},
		update: func(req *http.Request, rec *model.Service) (*model.Service, error) {
			return s.Services().Update(req.Context(), rec)
		},
		remove: func(req *http.Request, id string) error {
			return s.Services().Delete(req.Context(), id)
		},
	}.register(r, d.Broker)

	resource[model.Task]{
		name:           store.CollectionTasks,
		validateCreate: validate.CreateTask,
		create: func(req *http.Request, rec *model.Task) (*model.Task, error) {
			return s.Tasks().Create(req.Context(), model.NewTask(rec.Title, rec.DueDate, sessionFlatmate(req)))
		},
		get: func(req *http.Request, id string) (*model.Task, error) {
			return s.Tasks().Get(req.Context(), id)
		},
		list: func(req *http.Request) ([]*model.Task, error) {
			return s.Tasks().List(req.Context())
		},
		update: func(req *http.Request, rec *model.Task) (*model.Task, error) {
			return s.Tasks().Update(req.Context(), rec)
		},
		remove: func(req *http.Request, id string) error {
			return s.Tasks().Delete(req.Context(), id)
		},
		toggle: func(req *http.Request, id string) (*model.Task, error) {
			return s.Tasks().ToggleCompleted(req.Context(), id)
		},
	}.register(r, d.Broker)

	resource[model.ClassSlot]{
		name:           store.CollectionClasses,
		validateCreate: validate.CreateClassSlot,
		create: func(req *http.Request, rec *model.ClassSlot) (*model.ClassSlot, error) {
			rec.FlatmateID = sessionID(req)
			return s.Classes().Create(req.Context(), rec)
		},
		get: func(req *http.Request, id string) (*model.ClassSlot, error) {
			return s.Classes().Get(req.Context(), id)
		},
		list: func(req *http.Request) ([]*model.ClassSlot, error) {
			return s.Classes().List(req.Context())
		},
		update: func(req *http.Request, rec *model.ClassSlot) (*model.ClassSlot, error) {
			return s.Classes().Update(req.Context(), rec)
		},
		remove: func(req *http.Request, id string) error {
			return s.Classes().Delete(req.Context(), id)
		},
	}.register(r, d.Broker)
}

// wireWatch adds the two SSE routes for one collection: the full-collection
// stream at /{name}/watch and the single-document stream at /{name}/{id}/watch.
func wireWatch[T any](r *mux.Router, d Deps, collection string,
	list func(ctx context.Context) ([]*T, error),
	get func(ctx context.Context, id string) (*T, error)) {
	r.HandleFunc("/"+collection+"/watch",
		watchCollection(d.Broker, d.Bus, collection, list)).Methods(http.MethodGet)
	r.HandleFunc("/"+collection+"/{id}/watch",
		watchDocument(d.Broker, d.Bus, collection, get)).Methods(http.MethodGet)
}

// registerWatches wires the SSE endpoints for every collection.
func registerWatches(r *mux.Router, d Deps) {
	s := d.Store

	wireWatch(r, d, store.CollectionFlatmates, s.Flatmates().List, s.Flatmates().Get)
	wireWatch(r, d, store.CollectionExpenses, s.Expenses().List, s.Expenses().Get)
	wireWatch(r, d, store.CollectionGroceries, s.Groceries().List, s.Groceries().Get)
	wireWatch(r, d, store.CollectionChores, s.Chores().List, s.Chores().Get)
	wireWatch(r, d, store.CollectionEvents, s.Events().List, s.Events().Get)
	wireWatch(r, d, store.CollectionPolls, s.Polls().List, s.Polls().Get)
	wireWatch(r, d, store.CollectionNotes, s.Notes().List, s.Notes().Get)
	wireWatch(r, d, store.CollectionMoods, s.Moods().List, s.Moods().Get)
	wireWatch(r, d, store.CollectionServices, s.Services().List, s.Services().Get)
	wireWatch(r, d, store.CollectionTasks, s.Tasks().List, s.Tasks().Get)
	wireWatch(r, d, store.CollectionClasses, s.Classes().List, s.Classes().Get)
}

func sessionID(r *http.Request) string {
	if sess := auth.SessionFrom(r.Context()); sess != nil {
		return sess.FlatmateID
	}
	return ""
}

// sessionFlatmate resolves the authenticated flatmate for the model
// constructors' write-time denormalization. Only ID and Name are populated.
func sessionFlatmate(r *http.Request) *model.Flatmate {
	sess := auth.SessionFrom(r.Context())
	if sess == nil {
		return nil
	}
	return &model.Flatmate{ID: sess.FlatmateID, Name: sessionName(r)}
}

// noteSeq is the palette rotation seed for new notes: the current note count.
func noteSeq(r *http.Request, s store.Store) int {
	existing, err := s.Notes().List(r.Context())
	if err != nil {
		return 0
	}
	return len(existing)
}

// sessionName resolves the display name behind the session, falling back
// to the email local part for tokens minted before names were a claim.
func sessionName(r *http.Request) string {
	sess := auth.SessionFrom(r.Context())
	if sess == nil {
		return ""
	}
	if sess.Name != "" {
		return sess.Name
	}
	if i := strings.IndexByte(sess.Email, '@'); i > 0 {
		return sess.Email[:i]
	}
	return sess.Email
}
