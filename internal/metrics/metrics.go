// Package metrics exposes taxonomy and workflow counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ppiankov/diatax/internal/model"
	"github.com/ppiankov/diatax/internal/taxonomy"
)

var keywordsDesc = prometheus.NewDesc(
	"diatax_taxonomy_keywords",
	"Number of keywords per taxonomy category",
	[]string{"category"},
	nil,
)

// TaxonomyCollector reads keyword counts from the store on each scrape
type TaxonomyCollector struct {
	store *taxonomy.Store
}

// Describe sends the metric descriptor to the channel.
func (c *TaxonomyCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- keywordsDesc
}

// Collect emits one gauge per category, including the reserved bucket.
func (c *TaxonomyCollector) Collect(ch chan<- prometheus.Metric) {
	c.store.View(func(t *taxonomy.Taxonomy) {
		for _, cat := range t.Categories() {
			ch <- prometheus.MustNewConstMetric(
				keywordsDesc,
				prometheus.GaugeValue,
				float64(len(t.Keywords(cat))),
				string(cat),
			)
		}
	})
}

// Metrics owns a private registry so tests and multiple servers in one
// process do not collide on the default registerer.
type Metrics struct {
	Registry *prometheus.Registry

	scans           prometheus.Counter
	discovered      prometheus.Counter
	classifications *prometheus.CounterVec
	suggestions     *prometheus.CounterVec
	callsAnalyzed   *prometheus.CounterVec
}

// New creates the metric set. store may be nil, in which case no taxonomy
// gauges are exported.
func New(store *taxonomy.Store) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		scans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "diatax_scans_total",
			Help: "Discovery scans completed",
		}),
		discovered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "diatax_discovered_keywords_total",
			Help: "Keywords added to the unclassified bucket by discovery scans",
		}),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "diatax_classifications_total",
			Help: "Classification attempts by target category and outcome",
		}, []string{"category", "outcome"}),
		suggestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "diatax_suggestions_total",
			Help: "LLM category suggestions by outcome",
		}, []string{"outcome"}),
		callsAnalyzed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "diatax_calls_analyzed_total",
			Help: "Calls run through the analysis pipeline by outcome",
		}, []string{"outcome"}),
	}

	m.Registry.MustRegister(
		m.scans,
		m.discovered,
		m.classifications,
		m.suggestions,
		m.callsAnalyzed,
		collectors.NewGoCollector(),
	)
	if store != nil {
		m.Registry.MustRegister(&TaxonomyCollector{store: store})
	}
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// RecordScan counts a completed scan and the keywords it added
func (m *Metrics) RecordScan(added int) {
	if m == nil {
		return
	}
	m.scans.Inc()
	m.discovered.Add(float64(added))
}

// RecordClassification counts a classification attempt
func (m *Metrics) RecordClassification(target model.Category, err error) {
	if m == nil {
		return
	}
	label := string(target)
	if !target.IsRecognized() {
		label = "invalid"
	}
	m.classifications.WithLabelValues(label, outcome(err)).Inc()
}

// RecordSuggestion counts a suggestion; cached answers are tracked separately
func (m *Metrics) RecordSuggestion(cached bool, err error) {
	if m == nil {
		return
	}
	o := outcome(err)
	if err == nil && cached {
		o = "cached"
	}
	m.suggestions.WithLabelValues(o).Inc()
}

// RecordCall counts an analyzed call
func (m *Metrics) RecordCall(err error) {
	if m == nil {
		return
	}
	m.callsAnalyzed.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
