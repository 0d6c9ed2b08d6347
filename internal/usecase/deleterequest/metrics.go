package deleterequest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const resultSkipped = "skipped"

var (
	submittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "deletereq",
		Name:      "requests_submitted_total",
		Help:      "Delete requests persisted through the intake endpoint.",
	})

	processedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "deletereq",
		Name:      "requests_processed_total",
		Help:      "Processing attempts by outcome (sent, error, skipped).",
	}, []string{"result"})
)
