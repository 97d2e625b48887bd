package httputil

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/canvasbench/pkg/errors"
)

// Query reads typed URL query parameters. The first parse failure is kept
// and returned by [Query.Err]; later reads return their defaults.
type Query struct {
	values url.Values
	err    error
}

// NewQuery wraps the query of r.
func NewQuery(r *http.Request) *Query {
	return &Query{values: r.URL.Query()}
}

// Err returns the first parse failure as an INVALID_INPUT error.
func (q *Query) Err() error { return q.err }

func (q *Query) raw(key string) (string, bool) {
	if q.err != nil {
		return "", false
	}
	v := strings.TrimSpace(q.values.Get(key))
	return v, v != ""
}

func (q *Query) fail(key, v string, err error) {
	q.err = errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s %q", key, v)
}

// String returns the parameter or def when it is missing.
func (q *Query) String(key, def string) string {
	if v, ok := q.raw(key); ok {
		return v
	}
	return def
}

// Int parses an integer parameter.
func (q *Query) Int(key string, def int) int {
	v, ok := q.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fail(key, v, err)
		return def
	}
	return n
}

// Float parses a float parameter.
func (q *Query) Float(key string, def float64) float64 {
	v, ok := q.raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		q.fail(key, v, err)
		return def
	}
	return f
}

// Bool parses a boolean parameter. "1", "true", "on" and friends count.
func (q *Query) Bool(key string, def bool) bool {
	v, ok := q.raw(key)
	if !ok {
		return def
	}
	if v == "on" {
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.fail(key, v, err)
		return def
	}
	return b
}

// List splits a comma separated parameter, dropping empty items.
func (q *Query) List(key string) []string {
	v, ok := q.raw(key)
	if !ok {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
