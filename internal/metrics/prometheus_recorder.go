package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/yaklabco/docinspect/pkg/inspector"
)

const namespace = "docinspect"

// PrometheusRecorder implements inspector.Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	computeDuration *prom.HistogramVec
	published       *prom.CounterVec
	discarded       *prom.CounterVec
	fetches         *prom.CounterVec
}

var _ inspector.Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder constructs the collectors and registers them with
// reg. A nil reg gets a private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		computeDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "compute_duration_seconds",
			Help:      "Time spent computing a snapshot, by stream",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"stream"}),
		published: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "published_total",
			Help:      "Snapshots delivered to subscribers, by stream",
		}, []string{"stream"}),
		discarded: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "discarded_total",
			Help:      "Snapshots dropped before delivery, by stream and reason",
		}, []string{"stream", "reason"}),
		fetches: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "attribute_fetches_total",
			Help:      "File attribute fetches by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.computeDuration, pr.published, pr.discarded, pr.fetches)
	return pr
}

func (p *PrometheusRecorder) ObserveCompute(stream string, d time.Duration) {
	if p == nil {
		return
	}
	p.computeDuration.WithLabelValues(stream).Observe(d.Seconds())
}

func (p *PrometheusRecorder) Published(stream string) {
	if p == nil {
		return
	}
	p.published.WithLabelValues(stream).Inc()
}

func (p *PrometheusRecorder) Discarded(stream, reason string) {
	if p == nil {
		return
	}
	p.discarded.WithLabelValues(stream, reason).Inc()
}

func (p *PrometheusRecorder) AttributeFetch(result string) {
	if p == nil {
		return
	}
	p.fetches.WithLabelValues(result).Inc()
}
