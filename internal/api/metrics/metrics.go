// Package metrics defines and registers all custom Prometheus metrics for the
// BuildScape marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// RegistrationsTotal counts successful account registrations.
// Label:
//   - role: "regular" or "serviceProvider"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful account registrations, by role.",
	},
	[]string{"role"},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - reason: "missing_header", "malformed_header", "expired", "invalid"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth middleware, by reason.",
	},
	[]string{"reason"},
)

// ProjectsCreatedTotal counts newly created projects.
// Label:
//   - category: "construction", "interior-design", "renovation", "maintenance"
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created, by category.",
	},
	[]string{"category"},
)

// UploadsTotal counts files accepted by the upload gate.
// Label:
//   - field: the multipart field name ("avatar", "documents", ...)
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of files stored by the upload gate, by field.",
	},
	[]string{"field"},
)

// UploadRejectionsTotal counts files refused by the upload gate.
// Label:
//   - reason: "size", "count", "type"
var UploadRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_rejections_total",
		Help:      "Total number of upload rejections, by reason.",
	},
	[]string{"reason"},
)

// ProviderSearchesTotal counts provider directory searches.
var ProviderSearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_searches_total",
		Help:      "Total number of provider directory searches.",
	},
)
