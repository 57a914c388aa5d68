package gormrepo

import (
	"context"
	"encoding/json"
	"time"

	"hearthverse/internal/domain/event"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventJournal struct {
	db *gorm.DB
}

func NewEventJournal(db *gorm.DB) EventJournal {
	return EventJournal{db: db}
}

func (j EventJournal) Append(ctx context.Context, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]eventRow, 0, len(events))
	for _, e := range events {
		data, _ := json.Marshal(e.Data)
		meta, _ := json.Marshal(e.Metadata)
		rows = append(rows, eventRow{
			EventID:   e.ID,
			Type:      e.Type,
			AgentID:   e.AgentID,
			Timestamp: e.Timestamp,
			Data:      data,
			Metadata:  meta,
		})
	}
	return getDBFromCtx(ctx, j.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (j EventJournal) ListSince(ctx context.Context, since time.Time, limit int) ([]event.Event, error) {
	rows := []eventRow{}
	query := getDBFromCtx(ctx, j.db).Order("occurred_at asc")
	if !since.IsZero() {
		query = query.Where("occurred_at > ?", since)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		var data, meta map[string]any
		if len(row.Data) > 0 {
			_ = json.Unmarshal(row.Data, &data)
		}
		if len(row.Metadata) > 0 {
			_ = json.Unmarshal(row.Metadata, &meta)
		}
		out = append(out, event.Event{
			ID:        row.EventID,
			Type:      row.Type,
			AgentID:   row.AgentID,
			Timestamp: row.Timestamp,
			Data:      data,
			Metadata:  meta,
		})
	}
	return out, nil
}
