package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "github.com/icco/goshogi/server"

// metrics holds the game counters. Every Server has its own registry so
// tests can build several servers in one process.
type metrics struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider

	commands metric.Int64Counter
	games    metric.Int64Counter
	ended    metric.Int64Counter
}

func newMetrics() (*metrics, error) {
	reg := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, err
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter(meterName)

	m := &metrics{registry: reg, provider: provider}
	if m.commands, err = meter.Int64Counter("goshogi.commands",
		metric.WithDescription("Commands run against games, by type and outcome.")); err != nil {
		return nil, err
	}
	if m.games, err = meter.Int64Counter("goshogi.games.created",
		metric.WithDescription("Games created, by rule.")); err != nil {
		return nil, err
	}
	if m.ended, err = meter.Int64Counter("goshogi.games.ended",
		metric.WithDescription("Games that reached the ended state, by rule.")); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *metrics) command(ctx context.Context, typ string, outcome string) {
	m.commands.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", typ),
		attribute.String("outcome", outcome),
	))
}

func (m *metrics) gameCreated(ctx context.Context, ruleID int) {
	m.games.Add(ctx, 1, metric.WithAttributes(attribute.Int("rule", ruleID)))
}

func (m *metrics) gameEnded(ctx context.Context, ruleID int) {
	m.ended.Add(ctx, 1, metric.WithAttributes(attribute.Int("rule", ruleID)))
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Shutdown flushes the meter provider.
func (m *metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
