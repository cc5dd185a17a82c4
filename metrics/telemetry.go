// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics exposes the registry meters. Meters are no-ops until
// InitializePrometheusMetrics is called.
package metrics

import (
	"net/http"
	"sync"
)

// provider creates the meters. The process holds a single provider.
type provider interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter
	GetOrCreateHandler() http.Handler
}

var metrics provider = noopProvider{}

// Histogram buckets, in milliseconds. Registry operations run against an in-process
// state and are expected to settle well below the HTTP round trip.
var (
	BucketOps      = []int64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000}
	BucketHTTPReqs = []int64{
		0, 1, 2, 5, 10, 20, 50, 100, 200,
		300, 500, 750, 1000, 2000, 5000, 10000,
	}
)

type (
	// CountMeter only goes up.
	CountMeter interface{ Add(int64) }
	// CountVecMeter only goes up, per label set.
	CountVecMeter interface {
		AddWithLabel(int64, map[string]string)
	}
	// GaugeMeter tracks a value that moves both ways.
	GaugeMeter interface {
		Add(int64)
		Set(int64)
	}
	// HistogramVecMeter buckets observations per label set.
	HistogramVecMeter interface {
		ObserveWithLabels(int64, map[string]string)
	}
)

// HTTPHandler serves the collected meters, nil when metrics are disabled.
func HTTPHandler() http.Handler { return metrics.GetOrCreateHandler() }

func Counter(name string) CountMeter { return metrics.GetOrCreateCountMeter(name) }

func CounterVec(name string, labels []string) CountVecMeter {
	return metrics.GetOrCreateCountVecMeter(name, labels)
}

func Gauge(name string) GaugeMeter { return metrics.GetOrCreateGaugeMeter(name) }

func HistogramVec(name string, labels []string, buckets []int64) HistogramVecMeter {
	return metrics.GetOrCreateHistogramVecMeter(name, labels, buckets)
}

// LazyLoad resolves f once, on the first call of the returned func. Package level
// meters are declared this way so that they bind to the provider chosen at startup.
func LazyLoad[T any](f func() T) func() T {
	var (
		once sync.Once
		v    T
	)
	return func() T {
		once.Do(func() { v = f() })
		return v
	}
}

func LazyLoadCounter(name string) func() CountMeter {
	return LazyLoad(func() CountMeter { return Counter(name) })
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return LazyLoad(func() CountVecMeter { return CounterVec(name, labels) })
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return LazyLoad(func() GaugeMeter { return Gauge(name) })
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return LazyLoad(func() HistogramVecMeter { return HistogramVec(name, labels, buckets) })
}
