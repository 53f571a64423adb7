package response

import (
	"context"
	"log/slog"

	"github.com/HMasataka/tinyhttpd/internal/fsys"
	"github.com/HMasataka/tinyhttpd/internal/resolver"
	"github.com/HMasataka/tinyhttpd/internal/wire"
)

type Options struct {
	Protocol   string
	ServerName string
	Statuses   StatusTable
}

func DefaultOptions() Options {
	return Options{
		Protocol:   "HTTP/1.1",
		ServerName: "MyServer v0.1",
		Statuses:   DefaultStatusTable(),
	}
}

// BuildFunc produces the body for one kind of target.
type BuildFunc func(ctx context.Context, t resolver.Target) (Outcome, []byte)

type Builder struct {
	fs       fsys.Filesystem
	codec    *wire.Codec
	options  Options
	builders map[resolver.Kind]BuildFunc
}

func NewBuilder(fs fsys.Filesystem, codec *wire.Codec, options Options) *Builder {
	if options.Statuses == nil {
		options.Statuses = DefaultStatusTable()
	}

	b := &Builder{
		fs:       fs,
		codec:    codec,
		options:  options,
		builders: make(map[resolver.Kind]BuildFunc),
	}

	b.Register(resolver.KindFile, b.file)
	b.Register(resolver.KindDirectory, b.directory)
	b.Register(resolver.KindNotFound, b.notFound)

	return b
}

func (b *Builder) Register(kind resolver.Kind, f BuildFunc) {
	b.builders[kind] = f
}

func (b *Builder) Build(ctx context.Context, t resolver.Target) *Response {
	f, ok := b.builders[t.Kind]
	if !ok {
		slog.WarnContext(ctx, "no builder registered", slog.String("kind", t.Kind.String()))
		f = b.notFound
	}

	outcome, body := f(ctx, t)
	return b.wrap(outcome, body)
}

// Malformed is the response for a request line that could not be parsed.
func (b *Builder) Malformed() *Response {
	return b.wrap(OutcomeMalformed, b.codec.Encode(ErrorBody))
}

func (b *Builder) wrap(outcome Outcome, body []byte) *Response {
	return &Response{
		Outcome:    outcome,
		StatusLine: b.options.Protocol + " " + b.options.Statuses.Status(outcome),
		Headers: []Header{
			{Name: "Server", Value: b.options.ServerName},
		},
		Body: body,
	}
}

func (b *Builder) file(ctx context.Context, t resolver.Target) (Outcome, []byte) {
	body, err := b.fs.ReadFile(t.Name)
	if err != nil {
		slog.WarnContext(ctx, "failed to read file", slog.String("name", t.Name), "error", err)
		return b.notFound(ctx, t)
	}
	return OutcomeOk, body
}

func (b *Builder) directory(_ context.Context, t resolver.Target) (Outcome, []byte) {
	return OutcomeOk, b.codec.Encode(renderListing(t))
}

func (b *Builder) notFound(_ context.Context, _ resolver.Target) (Outcome, []byte) {
	return OutcomeNotFound, b.codec.Encode(ErrorBody)
}
