package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/tenuestore/tenue-backend/pkg/logger"
)

// URLSigner turns object keys into readable URLs and recognises URLs that
// already point into the bucket.
type URLSigner interface {
	ObjectURL(key string) (string, error)
	ObjectKeyFromURL(raw string) (string, bool)
}

// Resolver converts stored image references (object keys or absolute URLs)
// into URLs the storefront can display.
type Resolver struct {
	signer URLSigner
	logg   *logger.Logger
}

func NewResolver(signer URLSigner, logg *logger.Logger) (*Resolver, error) {
	if signer == nil {
		return nil, fmt.Errorf("url signer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Resolver{signer: signer, logg: logg}, nil
}

// Resolve returns a displayable URL for ref. Absolute URLs into the bucket
// are re-signed; other absolute URLs pass through untouched. Anything else is
// treated as an object key. ok is false when nothing usable can be produced.
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}

	if strings.HasPrefix(strings.ToLower(ref), "http") {
		key, found := r.signer.ObjectKeyFromURL(ref)
		if !found {
			return ref, true
		}
		signed, err := r.signer.ObjectURL(key)
		if err != nil {
			r.logg.Warn(r.logg.WithFields(ctx, map[string]any{"object_key": key, "error": err.Error()}), "media.resign_failed")
			return ref, true
		}
		return signed, true
	}

	signed, err := r.signer.ObjectURL(ref)
	if err != nil {
		r.logg.Warn(r.logg.WithFields(ctx, map[string]any{"object_key": ref, "error": err.Error()}), "media.resolve_failed")
		return "", false
	}
	return signed, true
}

// ResolveAll resolves refs in order and drops the ones that fail.
func (r *Resolver) ResolveAll(ctx context.Context, refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if u, ok := r.Resolve(ctx, ref); ok {
			out = append(out, u)
		}
	}
	return out
}
