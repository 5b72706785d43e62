package manifest

import (
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/schema"
)

var schemaDecoder = schema.NewDecoder()

// ParseSpec parses the compact command-line form of an entry:
//
//	tensor?name=x&rank=4&elem=int&shape=1,2,3,4
//	scalar?name=y&scalar=float64
//	shape?name=s&rank=3
//	other?name=cfg&expr=Config%3CB%3E
//
// The kind may instead be given as a kind= parameter. Values are URL-decoded,
// so '+' in an expression must be written as %2B. The entry is not validated.
func ParseSpec(s string) (Entry, error) {
	kind, query, found := strings.Cut(s, "?")
	if !found && strings.Contains(s, "=") {
		kind, query = "", s
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return Entry{}, errors.Wrapf(err, "parse spec %q", s)
	}

	// Allow comma-separated shapes alongside repeated shape= keys.
	if shape, ok := values["shape"]; ok {
		var dims []string
		for _, v := range shape {
			for _, dim := range strings.Split(v, ",") {
				if strings.TrimSpace(dim) == "" {
					return Entry{}, errors.WithHint(
						errors.Newf("parse spec %q: empty shape dimension in %q", s, v),
						"list every dimension, e.g. shape=1,2,3; omit shape when it is unknown")
				}
				dims = append(dims, dim)
			}
		}
		values["shape"] = dims
	}

	var e Entry
	if err := schemaDecoder.Decode(&e, values); err != nil {
		return Entry{}, errors.WithHint(
			errors.Wrapf(err, "parse spec %q", s),
			"known keys are kind, name, rank, elem, scalar, shape and expr")
	}

	if kind != "" {
		if e.Kind != "" && e.Kind != kind {
			return Entry{}, errors.Newf("parse spec %q: kind %q conflicts with kind=%s", s, kind, e.Kind)
		}
		e.Kind = kind
	}
	return e, nil
}

// ParseSpecs parses each spec in order.
func ParseSpecs(specs []string) (*Manifest, error) {
	m := &Manifest{Types: make([]Entry, 0, len(specs))}
	for _, s := range specs {
		e, err := ParseSpec(s)
		if err != nil {
			return nil, err
		}
		m.Types = append(m.Types, e)
	}
	return m, nil
}
