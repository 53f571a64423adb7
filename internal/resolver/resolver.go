// Package resolver maps a request path onto the serving root.
package resolver

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/HMasataka/tinyhttpd/internal/fsys"
	"github.com/HMasataka/tinyhttpd/internal/wire"
	"github.com/samber/lo"
)

const DefaultIndexFile = "index.html"

type Options struct {
	IndexFile string
}

func DefaultOptions() Options {
	return Options{
		IndexFile: DefaultIndexFile,
	}
}

// Query is the input every policy sees.
type Query struct {
	// Decoded is the percent-decoded request path.
	Decoded string
	// Name is Decoded with one leading '/' removed.
	Name string
}

// Policy reports whether it answers q. Policies run in order and the first
// match wins.
type Policy interface {
	Resolve(ctx context.Context, q Query) (Target, bool)
}

type PolicyFunc func(ctx context.Context, q Query) (Target, bool)

func (f PolicyFunc) Resolve(ctx context.Context, q Query) (Target, bool) {
	return f(ctx, q)
}

type Resolver struct {
	fs       fsys.Filesystem
	codec    *wire.Codec
	options  Options
	policies []Policy
}

func New(fs fsys.Filesystem, codec *wire.Codec, options Options) *Resolver {
	if options.IndexFile == "" {
		options.IndexFile = DefaultIndexFile
	}

	r := &Resolver{
		fs:      fs,
		codec:   codec,
		options: options,
	}
	r.policies = r.DefaultPolicies()

	return r
}

// WithPolicies replaces the policy chain. NotFound is returned when no policy
// matches.
func (r *Resolver) WithPolicies(policies ...Policy) *Resolver {
	r.policies = policies
	return r
}

// DefaultPolicies returns the chain: root index, root listing, directory,
// file.
func (r *Resolver) DefaultPolicies() []Policy {
	return []Policy{
		PolicyFunc(r.rootIndex),
		PolicyFunc(r.rootListing),
		PolicyFunc(r.directory),
		PolicyFunc(r.file),
	}
}

func (r *Resolver) Resolve(ctx context.Context, rawPath string) Target {
	decoded := r.codec.Unescape(rawPath)
	q := Query{
		Decoded: decoded,
		Name:    strings.TrimPrefix(decoded, "/"),
	}

	for _, p := range r.policies {
		if t, ok := p.Resolve(ctx, q); ok {
			return t
		}
	}

	return NotFound()
}

// rootIndex answers every request with the root index file when there is one.
func (r *Resolver) rootIndex(_ context.Context, _ Query) (Target, bool) {
	if r.fs.IsFile(r.options.IndexFile) {
		return File(r.options.IndexFile), true
	}
	return Target{}, false
}

func (r *Resolver) rootListing(ctx context.Context, q Query) (Target, bool) {
	if q.Decoded != "/" {
		return Target{}, false
	}
	return r.listing(ctx, ""), true
}

func (r *Resolver) directory(ctx context.Context, q Query) (Target, bool) {
	if !r.fs.IsDir(q.Name) {
		return Target{}, false
	}

	entries, err := r.fs.ListDir(q.Name)
	if err != nil {
		slog.WarnContext(ctx, "failed to list directory", slog.String("name", q.Name), "error", err)
		return NotFound(), true
	}

	if lo.Contains(entries, r.options.IndexFile) {
		index := path.Join(q.Name, r.options.IndexFile)
		if r.fs.IsFile(index) {
			return File(index), true
		}
	}

	return Directory(q.Name, entries), true
}

func (r *Resolver) file(_ context.Context, q Query) (Target, bool) {
	if r.fs.IsFile(q.Name) {
		return File(q.Name), true
	}
	return Target{}, false
}

func (r *Resolver) listing(ctx context.Context, name string) Target {
	entries, err := r.fs.ListDir(name)
	if err != nil {
		slog.WarnContext(ctx, "failed to list directory", slog.String("name", name), "error", err)
		return NotFound()
	}
	return Directory(name, entries)
}
