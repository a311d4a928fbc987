// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"errors"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"

	"github.com/ava-labs/decksvm/consts"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	exportTimeout = 10 * time.Second
	// Longer than [exportTimeout] so in-flight exports can finish.
	shutdownTimeout = 15 * time.Second

	defaultEndpoint = "http://localhost:9411/api/v2/spans"
)

var (
	_ trace.Tracer = (*tracer)(nil)

	ErrMissingEndpoint = errors.New("missing zipkin endpoint")
)

type Config struct {
	Enabled bool `json:"enabled"`

	// The fraction of traces to sample.
	// If >= 1 always samples.
	// If <= 0 never samples.
	SampleRate float64 `json:"sampleRate"`

	// Zipkin collector spans are exported to.
	Endpoint string `json:"endpoint"`
}

func NewDefaultConfig() Config {
	return Config{
		SampleRate: 1,
		Endpoint:   defaultEndpoint,
	}
}

type tracer struct {
	oteltrace.Tracer

	tp *sdktrace.TracerProvider
}

func (t *tracer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return t.tp.Shutdown(ctx)
}

// New returns a tracer exporting to zipkin, or one that records nothing when
// tracing is disabled.
func New(cfg Config) (trace.Tracer, error) {
	if !cfg.Enabled {
		return trace.Noop, nil
	}
	if len(cfg.Endpoint) == 0 {
		return nil, ErrMissingEndpoint
	}

	exporter, err := zipkin.New(cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithExportTimeout(exportTimeout)),
		sdktrace.WithResource(
			resource.NewWithAttributes(
				semconv.SchemaURL,
				attribute.String("version", consts.Version.String()),
				semconv.ServiceNameKey.String(consts.Name),
			),
		),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRate)),
	)
	return &tracer{
		Tracer: tp.Tracer(consts.Name),
		tp:     tp,
	}, nil
}
