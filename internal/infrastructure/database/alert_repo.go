package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ctabot/internal/domain/entities"
	"ctabot/internal/ports/output"
)

var _ output.AlertRepository = (*AlertRepository)(nil)

// AlertRepository implements output.AlertRepository on PostgreSQL. The table
// mirrors the in-memory collection; position keeps insertion order.
type AlertRepository struct {
	pool *pgxpool.Pool
}

func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

const selectAlerts = `
SELECT trigger_time, massing_time, location, role_id, message, link, channel_id, message_id
FROM cta_alerts
ORDER BY position`

const insertAlert = `
INSERT INTO cta_alerts (position, trigger_time, massing_time, location, role_id, message, link, channel_id, message_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func (r *AlertRepository) Load(ctx context.Context) ([]entities.Alert, error) {
	rows, err := r.pool.Query(ctx, selectAlerts)
	if err != nil {
		return nil, fmt.Errorf("select alerts: %w", err)
	}
	alerts, err := pgx.CollectRows(rows, scanAlert)
	if err != nil {
		return nil, fmt.Errorf("scan alerts: %w", err)
	}
	if alerts == nil {
		alerts = []entities.Alert{}
	}
	return alerts, nil
}

// Save replaces the table contents in one transaction.
func (r *AlertRepository) Save(ctx context.Context, alerts []entities.Alert) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM cta_alerts`); err != nil {
		return fmt.Errorf("clear alerts: %w", err)
	}
	batch := &pgx.Batch{}
	for i, a := range alerts {
		var link *string
		if a.Link != "" {
			link = &a.Link
		}
		batch.Queue(insertAlert, i, a.TriggerTime, a.MassingTime, a.Location, a.RoleID, a.Message, link,
			a.Notification.ChannelID, a.Notification.MessageID)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert alerts: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func scanAlert(row pgx.CollectableRow) (entities.Alert, error) {
	var (
		a    entities.Alert
		link *string
	)
	err := row.Scan(&a.TriggerTime, &a.MassingTime, &a.Location, &a.RoleID, &a.Message, &link,
		&a.Notification.ChannelID, &a.Notification.MessageID)
	if link != nil {
		a.Link = *link
	}
	return a, err
}
