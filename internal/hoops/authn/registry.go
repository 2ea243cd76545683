package authn

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/pkg/httpx"
)

// KnownStrategies lists every name accepted by ParseStrategies.
var KnownStrategies = []string{domain.StrategyStatic, domain.StrategySession, domain.StrategyExternal}

// ParseStrategies parses a comma separated AUTH_STRATEGIES value. Names are
// trimmed and lower-cased; duplicates keep their first position.
func ParseStrategies(csv string) ([]string, error) {
	var out []string
	for part := range strings.SplitSeq(csv, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !slices.Contains(KnownStrategies, name) {
			return nil, fmt.Errorf("authn: unknown strategy %q (want one of %s)", name, strings.Join(KnownStrategies, ", "))
		}
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("authn: no strategies enabled")
	}
	return out, nil
}

// Registry holds the enabled strategies in precedence order and builds the
// per-endpoint gates.
type Registry struct {
	ordered []Strategy
}

// NewRegistry keeps the given order. Nil entries are skipped; two strategies
// with the same name are an error.
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	r := &Registry{}
	for _, s := range strategies {
		if s == nil {
			continue
		}
		if _, dup := r.Get(s.Name()); dup {
			return nil, fmt.Errorf("authn: strategy %q registered twice", s.Name())
		}
		r.ordered = append(r.ordered, s)
	}
	return r, nil
}

func (r *Registry) Get(name string) (Strategy, bool) {
	for _, s := range r.ordered {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

func (r *Registry) Enabled(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the enabled strategy names in precedence order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ordered))
	for _, s := range r.ordered {
		names = append(names, s.Name())
	}
	return names
}

func (r *Registry) All() []Strategy {
	return slices.Clone(r.ordered)
}

// Only returns the enabled strategies among names, in registry order.
func (r *Registry) Only(names ...string) []Strategy {
	var out []Strategy
	for _, s := range r.ordered {
		if slices.Contains(names, s.Name()) {
			out = append(out, s)
		}
	}
	return out
}

// Require gates an endpoint on the named strategies, or on every enabled one
// when names is empty. Naming only disabled strategies yields a gate that
// rejects everything.
func (r *Registry) Require(names ...string) httpx.Middleware {
	if len(names) == 0 {
		return Require(r.All()...)
	}
	return Require(r.Only(names...)...)
}
