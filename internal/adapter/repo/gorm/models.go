package gormrepo

import "time"

type eventRow struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	EventID   string    `gorm:"column:event_id;uniqueIndex;size:64"`
	Type      string    `gorm:"column:event_type;index;size:64"`
	AgentID   string    `gorm:"column:agent_id;index;size:64"`
	Timestamp time.Time `gorm:"column:occurred_at;index"`
	Data      []byte    `gorm:"column:data"`
	Metadata  []byte    `gorm:"column:metadata"`
}

func (eventRow) TableName() string { return "domain_events" }

type sessionRow struct {
	SessionID string     `gorm:"column:session_id;primaryKey;size:64"`
	StartedAt time.Time  `gorm:"column:started_at"`
	EndedAt   *time.Time `gorm:"column:ended_at"`
	Cause     string     `gorm:"column:cause;size:64"`
	Active    bool       `gorm:"column:active;index"`
}

func (sessionRow) TableName() string { return "simulation_sessions" }
