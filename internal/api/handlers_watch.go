package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/flathive/flathive/internal/api/respond"
	"github.com/flathive/flathive/internal/auth"
	"github.com/flathive/flathive/internal/events"
	"github.com/flathive/flathive/internal/live"
)

// failurePollInterval bounds how long a watch stream keeps a dead
// subscription open before telling the client.
const failurePollInterval = 250 * time.Millisecond

// heartbeatInterval paces SSE comment lines that keep idle streams alive
// through proxies.
const heartbeatInterval = 15 * time.Second

func writeHeartbeat(w http.ResponseWriter, flusher http.Flusher) {
	fmt.Fprint(w, ": ping\n\n")
	flusher.Flush()
}

// queryFromRequest builds the subscription query from URL parameters:
// repeated where=field|op|value, plus orderBy, desc and limit.
func queryFromRequest(r *http.Request, collection string) (*live.Query, error) {
	q := &live.Query{Collection: collection}
	for _, raw := range r.URL.Query()["where"] {
		parts := strings.SplitN(raw, "|", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("where must be field|op|value, got %q", raw)
		}
		q.Filters = append(q.Filters, live.Filter{Field: parts[0], Op: parts[1], Value: parts[2]})
	}
	q.OrderBy = r.URL.Query().Get("orderBy")
	q.Desc = r.URL.Query().Get("desc") == "true"
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("limit must be a positive integer, got %q", raw)
		}
		q.Limit = n
	}
	return q, nil
}

// sessionFetch re-attaches the request's session to the subscriber's fetch
// context and enforces the access gate, so an anonymous watch fails into the
// permission-error path rather than silently reading.
func sessionFetch[T any](sess *auth.Session, fetch func(ctx context.Context) ([]T, error)) live.FetchFunc[T] {
	return func(ctx context.Context) ([]T, error) {
		ctx = auth.WithSession(ctx, sess)
		if err := auth.Authorize(ctx); err != nil {
			return nil, err
		}
		return fetch(ctx)
	}
}

// watchCollection streams query snapshots over SSE. Each broker signal on the
// collection produces one "snapshot" event carrying the full filtered result
// set; a dead subscription produces one final "error" event.
func watchCollection[T any](broker *live.Broker, bus *events.Bus, collection string, list func(ctx context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			respond.WriteInternalError(w, "streaming unsupported")
			return
		}
		q, err := queryFromRequest(r, collection)
		if err != nil {
			respond.WriteBadRequest(w, err.Error())
			return
		}

		updates := make(chan []T, 1)
		sub := live.NewCollectionSubscriber(broker, bus, sessionFetch(auth.SessionFrom(r.Context()), list), func(items []T) {
			// keep only the latest snapshot
			select {
			case updates <- items:
			default:
				select {
				case <-updates:
				default:
				}
				updates <- items
			}
		})
		defer sub.Close()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		sub.SetQuery(q)

		ticker := time.NewTicker(failurePollInterval)
		defer ticker.Stop()
		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()
		for {
			select {
			case <-r.Context().Done():
				return
			case items := <-updates:
				writeSSE(w, flusher, "snapshot", items)
			case <-heartbeat.C:
				writeHeartbeat(w, flusher)
			case <-ticker.C:
				if sub.Failed() {
					writeSSE(w, flusher, "error", map[string]string{"error": "permission denied", "path": collection})
					return
				}
			}
		}
	}
}

// watchDocument streams one record's snapshots over SSE. Absence is reported
// as {"exists": false}, not an error.
func watchDocument[T any](broker *live.Broker, bus *events.Bus, collection string, get func(ctx context.Context, id string) (T, error)) http.HandlerFunc {
	type docEvent struct {
		Exists bool `json:"exists"`
		Doc    T    `json:"doc,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			respond.WriteInternalError(w, "streaming unsupported")
			return
		}
		id := mux.Vars(r)["id"]
		sess := auth.SessionFrom(r.Context())

		updates := make(chan docEvent, 1)
		fetch := func(ctx context.Context) (T, error) {
			ctx = auth.WithSession(ctx, sess)
			var zero T
			if err := auth.Authorize(ctx); err != nil {
				return zero, err
			}
			return get(ctx, id)
		}
		sub := live.NewDocumentSubscriber(broker, bus, fetch, func(doc T, exists bool) {
			ev := docEvent{Exists: exists, Doc: doc}
			select {
			case updates <- ev:
			default:
				select {
				case <-updates:
				default:
				}
				updates <- ev
			}
		})
		defer sub.Close()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		sub.SetPath(collection, id)

		ticker := time.NewTicker(failurePollInterval)
		defer ticker.Stop()
		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()
		for {
			select {
			case <-r.Context().Done():
				return
			case ev := <-updates:
				writeSSE(w, flusher, "snapshot", ev)
			case <-heartbeat.C:
				writeHeartbeat(w, flusher)
			case <-ticker.C:
				if sub.Failed() {
					writeSSE(w, flusher, "error", map[string]string{"error": "permission denied", "path": collection + "/" + id})
					return
				}
			}
		}
	}
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}
