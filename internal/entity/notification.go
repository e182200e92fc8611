package entity

import "time"

const NotificationHired = "hired"

type Notification struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	GigId     string    `json:"gigId"`
	GigTitle  string    `json:"gigTitle"`
	Timestamp time.Time `json:"timestamp"`
}
