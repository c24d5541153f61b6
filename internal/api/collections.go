// Package api is the HTTP transport: gorilla/mux routes, per-collection CRUD
// handlers, SSE watch endpoints, the assistant and auth endpoints, and the
// logging/metrics/recovery middleware stack.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/flathive/flathive/internal/api/respond"
	"github.com/flathive/flathive/internal/live"
)

// resource wires one collection's repository operations onto the router.
// Every mutation notifies the broker so watch subscribers refetch.
type resource[T any] struct {
	name           string
	validateCreate func(*T) error
	create         func(r *http.Request, rec *T) (*T, error)
	get            func(r *http.Request, id string) (*T, error)
	list           func(r *http.Request) ([]*T, error)
	update         func(r *http.Request, rec *T) (*T, error)
	remove         func(r *http.Request, id string) error
	// toggle is optional; when set it adds POST /{id}/toggle.
	toggle func(r *http.Request, id string) (*T, error)
}

// register adds the collection's routes under {name} relative to the
// router's prefix.
func (res resource[T]) register(r *mux.Router, broker *live.Broker) {
	base := "/" + res.name

	r.HandleFunc(base, func(w http.ResponseWriter, req *http.Request) {
		var rec T
		if err := json.NewDecoder(req.Body).Decode(&rec); err != nil {
			respond.WriteBadRequest(w, "Invalid JSON")
			return
		}
		if res.validateCreate != nil {
			if err := res.validateCreate(&rec); err != nil {
				respond.WriteBadRequest(w, err.Error())
				return
			}
		}
		out, err := res.create(req, &rec)
		if err != nil {
			respond.WriteStoreError(w, err)
			return
		}
		broker.Notify(res.name)
		respond.WriteJSON(w, http.StatusCreated, out)
	}).Methods(http.MethodPost)

	r.HandleFunc(base, func(w http.ResponseWriter, req *http.Request) {
		items, err := res.list(req)
		if err != nil {
			respond.WriteStoreError(w, err)
			return
		}
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"items": items,
			"count": len(items),
		})
	}).Methods(http.MethodGet)

	r.HandleFunc(base+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		out, err := res.get(req, mux.Vars(req)["id"])
		if err != nil {
			respond.WriteStoreError(w, err)
			return
		}
		respond.WriteJSON(w, http.StatusOK, out)
	}).Methods(http.MethodGet)

	r.HandleFunc(base+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		var rec T
		if err := json.NewDecoder(req.Body).Decode(&rec); err != nil {
			respond.WriteBadRequest(w, "Invalid JSON")
			return
		}
		out, err := res.update(req, withID(&rec, mux.Vars(req)["id"]))
		if err != nil {
			respond.WriteStoreError(w, err)
			return
		}
		broker.Notify(res.name)
		respond.WriteJSON(w, http.StatusOK, out)
	}).Methods(http.MethodPut)

	r.HandleFunc(base+"/{id}", func(w http.ResponseWriter, req *http.Request) {
		if err := res.remove(req, mux.Vars(req)["id"]); err != nil {
			respond.WriteStoreError(w, err)
			return
		}
		broker.Notify(res.name)
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	if res.toggle != nil {
		r.HandleFunc(base+"/{id}/toggle", func(w http.ResponseWriter, req *http.Request) {
			out, err := res.toggle(req, mux.Vars(req)["id"])
			if err != nil {
				respond.WriteStoreError(w, err)
				return
			}
			broker.Notify(res.name)
			respond.WriteJSON(w, http.StatusOK, out)
		}).Methods(http.MethodPost)
	}
}

// withID copies the path ID onto the decoded record. Records carry their ID
// in a field named ID with json tag "id"; re-encoding through JSON keeps this
// free of reflection on struct internals.
func withID[T any](rec *T, id string) *T {
	raw, err := json.Marshal(rec)
	if err != nil {
		return rec
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return rec
	}
	idRaw, _ := json.Marshal(id)
	m["id"] = idRaw
	merged, err := json.Marshal(m)
	if err != nil {
		return rec
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return rec
	}
	return &out
}
