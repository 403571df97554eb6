package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fulexo",
		Subsystem: "worker",
		Name:      "jobs_total",
		Help:      "Background jobs processed, by type and outcome.",
	}, []string{"type", "status"})

	jobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fulexo",
		Subsystem: "worker",
		Name:      "job_duration_seconds",
		Help:      "Background job duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"type"})

	syncedEntities = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fulexo",
		Subsystem: "sync",
		Name:      "entities_total",
		Help:      "Entities upserted by store syncs.",
	}, []string{"entity"})
)
