// SPDX-License-Identifier: MIT

// Package metrics holds the prometheus collectors shared by numcore packages.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "numcore"

var (
	BufferBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "buffer_bytes",
		Help:      "Bytes currently held by live buffers across all arenas",
	})

	BufferAllocations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "buffer_allocations_total",
		Help:      "Total number of successful buffer allocations",
	})

	BufferReleases = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "buffer_releases_total",
		Help:      "Total number of buffer releases",
	})

	AllocationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "buffer_allocation_failures_total",
		Help:      "Total number of allocation requests the allocator could not satisfy",
	})

	StatusErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_errors_total",
		Help:      "Numerical errors raised, by status code",
	}, []string{"code"})

	KernelDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "kernel_duration_seconds",
		Help:      "Histogram of backend kernel execution times",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
	}, []string{"kernel"})
)

// RecordAlloc accounts for a successful allocation of n bytes.
func RecordAlloc(n int) {
	BufferAllocations.Inc()
	BufferBytes.Add(float64(n))
}

// RecordRelease accounts for releasing n bytes.
func RecordRelease(n int) {
	BufferReleases.Inc()
	BufferBytes.Sub(float64(n))
}

// RecordAllocFailure counts an unsatisfied allocation.
func RecordAllocFailure() {
	AllocationFailures.Inc()
}

// RecordStatus counts a raised error under its status code name.
func RecordStatus(code string) {
	StatusErrors.WithLabelValues(code).Inc()
}

// RecordKernelDuration observes the duration of one backend kernel call.
func RecordKernelDuration(kernel string, d time.Duration) {
	KernelDuration.WithLabelValues(kernel).Observe(d.Seconds())
}

// TimeKernel returns a func that records the elapsed time when called.
// Typical use: defer metrics.TimeKernel("gemm")().
func TimeKernel(kernel string) func() {
	start := time.Now()
	return func() { RecordKernelDuration(kernel, time.Since(start)) }
}
