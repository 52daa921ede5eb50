package routing

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jsamuelsen11/taskflow/internal/domain/event"
)

// ErrUnmappedKind is reported by New when a target subscribes to a kind
// that neither an explicit rule nor a default rule covers.
var ErrUnmappedKind = errors.New("routing: subscribed kind has no rule")

// Table is the routing registration of one target type.
type Table struct {
	// Target names the target type, e.g. "all-tasks".
	Target string

	// Subscribes lists the event kinds the target absorbs.
	Subscribes []event.Kind

	// Rules holds explicit per-kind rules. An explicit rule always wins
	// over Default.
	Rules map[event.Kind]Rule

	// Default covers subscribed kinds without an explicit rule.
	Default Rule
}

// Delivery addresses one instance of one target type.
type Delivery struct {
	Target string
	ID     string
}

// String implements fmt.Stringer.
func (d Delivery) String() string {
	return d.Target + "/" + d.ID
}

type binding struct {
	target string
	rule   Rule
}

// Router routes events to target instances using resolved tables.
type Router struct {
	byKind  map[event.Kind][]binding
	targets []string
}

// New validates the tables and resolves every subscription to one rule.
// All registration defects are reported together.
func New(tables ...Table) (*Router, error) {
	r := &Router{byKind: make(map[event.Kind][]binding)}

	var errs []error
	seen := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		if t.Target == "" {
			errs = append(errs, errors.New("routing: table without target name"))
			continue
		}
		if _, dup := seen[t.Target]; dup {
			errs = append(errs, fmt.Errorf("routing: target %q registered twice", t.Target))
			continue
		}
		seen[t.Target] = struct{}{}

		bindings, err := resolve(t)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for kind, rule := range bindings {
			r.byKind[kind] = append(r.byKind[kind], binding{target: t.Target, rule: rule})
		}
		r.targets = append(r.targets, t.Target)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return r, nil
}

// resolve picks the rule for every subscribed kind of t.
func resolve(t Table) (map[event.Kind]Rule, error) {
	var errs []error
	out := make(map[event.Kind]Rule, len(t.Subscribes))

	for _, kind := range t.Subscribes {
		if !kind.IsValid() {
			errs = append(errs, fmt.Errorf("routing: target %q subscribes to unknown kind %q", t.Target, kind))
			continue
		}
		if _, dup := out[kind]; dup {
			errs = append(errs, fmt.Errorf("routing: target %q subscribes to %q twice", t.Target, kind))
			continue
		}

		rule, ok := t.Rules[kind]
		if !ok || rule.IsZero() {
			rule = t.Default
		}
		if rule.IsZero() {
			errs = append(errs, fmt.Errorf("target %q, kind %q: %w", t.Target, kind, ErrUnmappedKind))
			continue
		}
		out[kind] = rule
	}

	for kind := range t.Rules {
		if !slices.Contains(t.Subscribes, kind) {
			errs = append(errs, fmt.Errorf("routing: target %q has a rule for unsubscribed kind %q", t.Target, kind))
		}
	}

	return out, errors.Join(errs...)
}

// Route returns the target instances that must absorb env. Targets are
// visited in registration order; identities within a target are unique.
// An error is returned only for a derived rule evaluated without enrichment.
func (r *Router) Route(env event.Envelope, aux *event.Enrichment) ([]Delivery, error) {
	bindings := r.byKind[env.Kind]
	if len(bindings) == 0 {
		return nil, nil
	}

	var out []Delivery
	for _, b := range bindings {
		ids, err := b.rule.Resolve(env, aux)
		if err != nil {
			return nil, fmt.Errorf("routing %s to %s: %w", env.Kind, b.target, err)
		}
		for _, id := range ids {
			out = append(out, Delivery{Target: b.target, ID: id})
		}
	}
	return out, nil
}

// NeedsEnrichment reports whether routing kind evaluates any derived rule.
func (r *Router) NeedsEnrichment(kind event.Kind) bool {
	for _, b := range r.byKind[kind] {
		if b.rule.Shape() == ShapeDerived {
			return true
		}
	}
	return false
}

// Targets returns the registered target names in registration order.
func (r *Router) Targets() []string {
	return slices.Clone(r.targets)
}

// RuleFor returns the rule resolved for target and kind.
func (r *Router) RuleFor(target string, kind event.Kind) (Rule, bool) {
	for _, b := range r.byKind[kind] {
		if b.target == target {
			return b.rule, true
		}
	}
	return Rule{}, false
}
