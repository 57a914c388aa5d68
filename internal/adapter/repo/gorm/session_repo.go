package gormrepo

import (
	"context"
	"time"

	"hearthverse/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionJournal struct {
	db *gorm.DB
}

func NewSessionJournal(db *gorm.DB) SessionJournal {
	return SessionJournal{db: db}
}

func (j SessionJournal) EnsureActive(ctx context.Context, sessionID string, startedAt time.Time) error {
	row := sessionRow{SessionID: sessionID, StartedAt: startedAt, Active: true}
	return getDBFromCtx(ctx, j.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.Assignments(map[string]any{"active": true}),
		}).
		Create(&row).Error
}

func (j SessionJournal) Close(ctx context.Context, sessionID, cause string, endedAt time.Time) error {
	res := getDBFromCtx(ctx, j.db).
		Model(&sessionRow{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]any{"active": false, "cause": cause, "ended_at": endedAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}
