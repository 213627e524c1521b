package models

import "time"

// Event types
const (
	EventTypeMartRefreshed   = "MART_REFRESHED"
	EventTypeReportGenerated = "REPORT_GENERATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// MartRefreshedEvent is published by the ETL pipeline after it rewrites the
// mart table. The service invalidates its caches on receipt.
type MartRefreshedEvent struct {
	BaseEvent
	Source   string `json:"source"`
	RowCount int    `json:"row_count,omitempty"`
}

// ReportGeneratedEvent is published after a report download is served.
type ReportGeneratedEvent struct {
	BaseEvent
	ReportID string   `json:"report_id"`
	Month    string   `json:"month"`
	States   []string `json:"states,omitempty"`
	Filename string   `json:"filename"`
}
