package datastore

import (
	"time"

	"gorm.io/gorm"

	"github.com/tphakala/video-enrichment-api/internal/errors"
	"github.com/tphakala/video-enrichment-api/internal/observability/metrics"
)

// AuditPlugin stamps created_by and updated_by with a fixed actor.
type AuditPlugin struct {
	actor string
}

// NewAuditPlugin creates the plugin for actor
func NewAuditPlugin(actor string) *AuditPlugin {
	return &AuditPlugin{actor: actor}
}

// Name implements gorm.Plugin
func (p *AuditPlugin) Name() string {
	return "audit"
}

// Initialize implements gorm.Plugin
func (p *AuditPlugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("audit:before_create", p.beforeCreate); err != nil {
		return err
	}
	return db.Callback().Update().Before("gorm:update").Register("audit:before_update", p.beforeUpdate)
}

func (p *AuditPlugin) beforeCreate(db *gorm.DB) {
	if db.Statement.Schema == nil || p.actor == "" {
		return
	}
	if db.Statement.Schema.LookUpField("created_by") != nil {
		db.Statement.SetColumn("created_by", p.actor, true)
	}
	if db.Statement.Schema.LookUpField("updated_by") != nil {
		db.Statement.SetColumn("updated_by", p.actor, true)
	}
}

func (p *AuditPlugin) beforeUpdate(db *gorm.DB) {
	if db.Statement.Schema == nil || p.actor == "" {
		return
	}
	if db.Statement.Schema.LookUpField("updated_by") != nil {
		db.Statement.SetColumn("updated_by", p.actor, true)
	}
}

const metricsStartKey = "metrics:start"

// MetricsPlugin records every statement in DatastoreMetrics.
type MetricsPlugin struct {
	metrics *metrics.DatastoreMetrics
}

// NewMetricsPlugin creates the plugin
func NewMetricsPlugin(m *metrics.DatastoreMetrics) *MetricsPlugin {
	return &MetricsPlugin{metrics: m}
}

// Name implements gorm.Plugin
func (p *MetricsPlugin) Name() string {
	return "metrics"
}

// Initialize implements gorm.Plugin
func (p *MetricsPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		op       string
		register func(string, func(*gorm.DB)) error
		after    func(string, func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		if err := h.register("metrics:before_"+h.op, p.start); err != nil {
			return err
		}
		if err := h.after("metrics:after_"+h.op, p.finish(h.op)); err != nil {
			return err
		}
	}
	return nil
}

func (p *MetricsPlugin) start(db *gorm.DB) {
	db.InstanceSet(metricsStartKey, time.Now())
}

func (p *MetricsPlugin) finish(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(metricsStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}

		status := metrics.StatusSuccess
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			status = metrics.StatusError
		}

		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		p.metrics.RecordOperation(op, table, status, time.Since(start).Seconds())
	}
}
