package menu

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// WritePrometheus writes r in the Prometheus text exposition format, suitable
// for the node_exporter textfile collector.
func WritePrometheus(w io.Writer, r *Report) error {
	reg := prometheus.NewRegistry()

	up := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cronwatch_scan_success",
		Help: "Whether every host could be scanned for failure records.",
	})
	perHost := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cronwatch_failing_jobs",
		Help: "Number of cron jobs whose most recent run failed.",
	}, []string{"host"})
	total := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cronwatch_failing_jobs_total",
		Help: "Number of failing cron jobs across all hosts.",
	})
	reg.MustRegister(up, perHost, total)

	if !r.Failed() {
		up.Set(1)
		for _, h := range r.Hosts {
			perHost.WithLabelValues(h.Host).Set(float64(len(h.Jobs)))
		}
		total.Set(float64(r.Total))
	}

	families, err := reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
