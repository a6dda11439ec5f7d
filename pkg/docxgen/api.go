package docxgen

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

// Engine renders element trees into DOCX packages. An Engine holds only read-only
// configuration, so one value may serve concurrent renders.
type Engine struct {
	config *Config
	logger zerolog.Logger
}

// Option represents a configuration option for the engine.
type Option func(*Engine)

// WithLogger returns an option that sets the engine logger. Engines log nothing by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an engine with the default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		config: DefaultConfig().normalized(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewWithConfig creates an engine with a custom configuration. The configuration is
// validated and copied; later changes to config do not affect the engine.
func NewWithConfig(config *Config, opts ...Option) (*Engine, error) {
	if config == nil {
		return New(opts...), nil
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	e := New(opts...)
	e.config = config.normalized()
	return e, nil
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() *Config {
	cp := *e.config
	return &cp
}

// Reconcile converts an element tree into a DocumentModel
func (e *Engine) Reconcile(tree ElementDescriptor) (*DocumentModel, error) {
	model, err := reconcile(tree, e.config)
	if err != nil {
		return nil, err
	}
	e.logger.Debug().
		Int("paragraphs", len(model.Paragraphs())).
		Int("runs", model.RunCount()).
		Msg("reconciled")
	return model, nil
}

// Package runs the pipeline up to an assembled package without writing it
func (e *Engine) Package(tree ElementDescriptor) (*Package, error) {
	model, err := e.Reconcile(tree)
	if err != nil {
		return nil, err
	}

	parts, err := NewSerializer(e.config).Serialize(model)
	if err != nil {
		return nil, err
	}
	e.logger.Debug().Int("parts", len(parts)).Msg("serialized")

	pkg, err := NewPackageWriter(e.config.CompressionLevel).Assemble(parts)
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

// RenderBytes renders a tree into an in-memory DOCX archive
func (e *Engine) RenderBytes(tree ElementDescriptor) ([]byte, error) {
	pkg, err := e.Package(tree)
	if err != nil {
		return nil, err
	}
	data, err := pkg.Bytes()
	if err != nil {
		return nil, err
	}
	e.logger.Debug().Int("parts", len(pkg.Parts)).Int("bytes", len(data)).Msg("packaged")
	return data, nil
}

// RenderTo renders a tree and writes the archive to w. The archive is built in full
// before the first byte is written, so a render failure never reaches w.
func (e *Engine) RenderTo(ctx context.Context, tree ElementDescriptor, w io.Writer) error {
	data, err := e.RenderBytes(tree)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return newError(IOError, "publish", "", err, "render cancelled before writing")
	}
	if _, err := w.Write(data); err != nil {
		return newError(IOError, "publish", "", err, "failed to write archive")
	}
	e.logger.Debug().Int("bytes", len(data)).Msg("published")
	return nil
}

// Render renders a tree to the file at path, replacing any existing file atomically.
// On failure the destination is left as it was.
func (e *Engine) Render(ctx context.Context, tree ElementDescriptor, path string) error {
	data, err := e.RenderBytes(tree)
	if err != nil {
		return err
	}
	if err := publish(ctx, path, data, e.config.FileMode); err != nil {
		return err
	}
	e.logger.Debug().Str("dest", path).Int("bytes", len(data)).Msg("published")
	return nil
}

// Render renders a tree to path with the default configuration
func Render(ctx context.Context, tree ElementDescriptor, path string) error {
	return New().Render(ctx, tree, path)
}

// RenderTo renders a tree to w with the default configuration
func RenderTo(ctx context.Context, tree ElementDescriptor, w io.Writer) error {
	return New().RenderTo(ctx, tree, w)
}

// RenderBytes renders a tree into memory with the default configuration
func RenderBytes(tree ElementDescriptor) ([]byte, error) {
	return New().RenderBytes(tree)
}
