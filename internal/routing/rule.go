// Package routing decides which targets must absorb an event.
//
// Every target type (a read model or the task creation workflow) registers a
// Table naming the event kinds it subscribes to, an explicit Rule per kind
// and an optional default Rule. New resolves every subscription to exactly
// one rule up front, with explicit rules taking precedence over the default,
// and refuses to build a Router when a subscribed kind resolves to nothing.
// Route then only evaluates already-resolved rules.
package routing

import (
	"errors"
	"fmt"

	"github.com/jsamuelsen11/taskflow/internal/domain/event"
)

// ErrMissingEnrichment is returned when a derived rule is evaluated for an
// event that carries no enrichment. The correlation supplier must enrich
// every event before routing, so this is an internal fault, not a condition
// callers should recover from.
var ErrMissingEnrichment = errors.New("routing: derived rule evaluated without enrichment")

// Shape identifies how a Rule computes identities.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeStatic
	ShapeDirect
	ShapeDerived
)

func (s Shape) String() string {
	switch s {
	case ShapeStatic:
		return "static"
	case ShapeDirect:
		return "direct"
	case ShapeDerived:
		return "derived"
	default:
		return "none"
	}
}

// Rule maps an event and its enrichment to the identities of one target
// type. The zero Rule is "no rule".
type Rule struct {
	shape   Shape
	static  string
	direct  func(event.Envelope) string
	derived func(event.Envelope, *event.Enrichment) []string
}

// Static always returns id.
func Static(id string) Rule {
	return Rule{shape: ShapeStatic, static: id}
}

// Direct returns the identity extract finds on the event. An empty result
// means the event addresses no instance.
func Direct(extract func(event.Envelope) string) Rule {
	return Rule{shape: ShapeDirect, direct: extract}
}

// Derived returns the identities derive computes from the enrichment.
func Derived(derive func(event.Envelope, *event.Enrichment) []string) Rule {
	return Rule{shape: ShapeDerived, derived: derive}
}

// ByEntity routes to the envelope's entity id.
func ByEntity() Rule {
	return Direct(func(env event.Envelope) string { return env.EntityID })
}

// ByProcess routes to the workflow that caused the event, if any.
func ByProcess() Rule {
	return Direct(func(env event.Envelope) string { return env.ProcessID })
}

// ByLabels routes to every label affected by the event.
func ByLabels() Rule {
	return Derived(func(_ event.Envelope, aux *event.Enrichment) []string { return aux.LabelIDs })
}

// ByProcesses routes to every in-flight workflow whose subject the event
// concerns.
func ByProcesses() Rule {
	return Derived(func(_ event.Envelope, aux *event.Enrichment) []string { return aux.ProcessIDs })
}

// Shape reports how the rule computes identities.
func (r Rule) Shape() Shape {
	return r.shape
}

// IsZero reports whether r is the empty rule.
func (r Rule) IsZero() bool {
	return r.shape == ShapeNone
}

// Resolve evaluates the rule. Empty identities are dropped.
func (r Rule) Resolve(env event.Envelope, aux *event.Enrichment) ([]string, error) {
	switch r.shape {
	case ShapeStatic:
		return []string{r.static}, nil
	case ShapeDirect:
		if id := r.direct(env); id != "" {
			return []string{id}, nil
		}
		return nil, nil
	case ShapeDerived:
		if aux == nil {
			return nil, fmt.Errorf("%s event %s: %w", env.Kind, env.ID, ErrMissingEnrichment)
		}
		return compact(r.derived(env, aux)), nil
	default:
		return nil, errors.New("routing: empty rule")
	}
}

// compact drops empty and repeated identities, keeping first-seen order.
func compact(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
