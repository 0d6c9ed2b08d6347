package mailer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSent  = "sent"
	resultError = "error"
)

var deliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "deletereq",
	Name:      "mail_deliveries_total",
	Help:      "Deletion request emails handed to the mail provider, by provider and result.",
}, []string{"provider", "result"})

var deliveryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "deletereq",
	Name:      "mail_delivery_duration_seconds",
	Help:      "Time spent in the mail provider call.",
	Buckets:   prometheus.DefBuckets,
}, []string{"provider"})
