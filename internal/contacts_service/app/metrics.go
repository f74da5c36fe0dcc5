package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aradsms/contacts_service/internal/contacts_service/domain"
)

var (
	contactOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contacts_api",
			Name:      "contact_operations_total",
			Help:      "Total contact operations by outcome.",
		},
		[]string{"operation", "outcome"}, // outcome: "success", "invalid", "not_found", "error"
	)

	contactsStoredGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "contacts_api",
			Name:      "contacts_stored",
			Help:      "Number of contacts currently held in memory.",
		},
	)

	eventsPublishedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contacts_api",
			Name:      "events_published_total",
			Help:      "Contact events handed to the message broker.",
		},
		[]string{"subject", "status"},
	)
)

func operationOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func observeOperation(operation string, err error) {
	contactOperationsCounter.WithLabelValues(operation, operationOutcome(err)).Inc()
}
