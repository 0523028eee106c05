package domain

import (
	"context"

	"github.com/tphakala/video-enrichment-api/internal/logger"
)

// Service availability values
const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

// HealthStatus is the healthcheck payload
type HealthStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// HealthManager reports service availability
type HealthManager struct {
	name string
	db   Pinger
	log  logger.Logger
}

// Status pings the database when one is configured
func (m *HealthManager) Status(ctx context.Context) HealthStatus {
	status := HealthStatus{Name: m.name, Status: StatusUp}
	if m.db == nil {
		return status
	}
	if err := m.db.Ping(ctx); err != nil {
		m.log.Warn("healthcheck database ping failed", logger.Error(err))
		status.Status = StatusDown
	}
	return status
}
