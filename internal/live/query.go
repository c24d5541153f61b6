package live

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Filter is one field predicate. Op is one of ==, !=, <, <=, >, >=.
type Filter struct {
	Field string      `json:"field"`
	Op    string      `json:"op"`
	Value interface{} `json:"value"`
}

// Query describes what a subscriber wants from a collection. Two queries are
// the same subscription iff their Keys are equal; changing any field of a
// subscriber's query tears down the old watch and starts a new one.
type Query struct {
	Collection string   `json:"collection"`
	Filters    []Filter `json:"filters,omitempty"`
	OrderBy    string   `json:"orderBy,omitempty"`
	Desc       bool     `json:"desc,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}

// Key is the canonical serialization of the query, used for structural
// equality. Filters compare in the order given, not as a set.
func (q *Query) Key() string {
	if q == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(q.Collection)
	for _, f := range q.Filters {
		v, _ := json.Marshal(f.Value)
		fmt.Fprintf(&sb, "|%s %s %s", f.Field, f.Op, v)
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.Desc {
			dir = "desc"
		}
		fmt.Fprintf(&sb, "|order:%s:%s", q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, "|limit:%d", q.Limit)
	}
	return sb.String()
}

// Apply evaluates the query over a result set: filter, then sort, then limit.
// Records are compared on their JSON field names, so it works uniformly for
// every model type.
func Apply[T any](q *Query, items []T) ([]T, error) {
	if q == nil {
		return items, nil
	}
	type rec struct {
		item   T
		fields map[string]interface{}
	}
	recs := make([]rec, 0, len(items))
	for _, it := range items {
		raw, err := json.Marshal(it)
		if err != nil {
			return nil, err
		}
		var m map[string]interface{}
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		recs = append(recs, rec{item: it, fields: m})
	}

	filtered := recs[:0]
	for _, r := range recs {
		ok := true
		for _, f := range q.Filters {
			match, err := matches(r.fields[f.Field], f.Op, f.Value)
			if err != nil {
				return nil, err
			}
			if !match {
				ok = false
				break
			}
		}
		if ok {
			filtered = append(filtered, r)
		}
	}

	if q.OrderBy != "" {
		sort.SliceStable(filtered, func(i, j int) bool {
			less := compare(filtered[i].fields[q.OrderBy], filtered[j].fields[q.OrderBy]) < 0
			if q.Desc {
				return !less && compare(filtered[i].fields[q.OrderBy], filtered[j].fields[q.OrderBy]) != 0
			}
			return less
		})
	}

	if q.Limit > 0 && len(filtered) > q.Limit {
		filtered = filtered[:q.Limit]
	}

	out := make([]T, len(filtered))
	for i, r := range filtered {
		out[i] = r.item
	}
	return out, nil
}

func matches(field interface{}, op string, want interface{}) (bool, error) {
	c := compare(field, normalize(want))
	switch op {
	case "==":
		return c == 0, nil
	case "!=":
		return c != 0, nil
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	case ">=":
		return c >= 0, nil
	default:
		return false, fmt.Errorf("unsupported filter op %q", op)
	}
}

// normalize maps a caller-supplied value onto the JSON type system so it
// compares against unmarshalled fields.
func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}

// compare orders two JSON values. Mixed or non-orderable types compare by
// their serialized form, which keeps sorting deterministic.
func compare(a, b interface{}) int {
	if af, ok := a.(float64); ok {
		if bf, ok := b.(float64); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs)
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	return strings.Compare(string(ja), string(jb))
}
