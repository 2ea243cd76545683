package identity

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
)

// go-oidc flattens key set errors into a string, so failures to fetch keys
// are recorded on a probe carried in the context instead.
type fetchProbe struct{ err error }

type probeKey struct{}

func withProbe(ctx context.Context, p *fetchProbe) context.Context {
	return context.WithValue(ctx, probeKey{}, p)
}

type observedKeySet struct {
	oidc.KeySet
}

func (k observedKeySet) VerifySignature(ctx context.Context, jwt string) ([]byte, error) {
	payload, err := k.KeySet.VerifySignature(ctx, jwt)
	if err != nil && isFetchError(err) {
		if p, ok := ctx.Value(probeKey{}).(*fetchProbe); ok {
			p.err = err
		}
	}
	return payload, err
}

func isFetchError(err error) bool {
	var uerr *url.Error
	return errors.As(err, &uerr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		strings.HasPrefix(err.Error(), "fetching keys")
}
