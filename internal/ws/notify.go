package ws

import (
	"encoding/json"
	"time"

	"resume-review/internal/domain/profile"
)

type ProfileDecidedEvent struct {
	Type      string `json:"type"`
	JobID     string `json:"job_id"`
	ProfileID string `json:"profile_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ProfilesImportedEvent struct {
	Type      string `json:"type"`
	JobID     string `json:"job_id"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

// Notifier turns review events into broadcast frames. Safe to use with a nil
// hub; events are then dropped.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) ProfileDecided(jobID, profileID string, status profile.Status) {
	if n == nil {
		return
	}
	n.send(ProfileDecidedEvent{
		Type:      "profile_decided",
		JobID:     jobID,
		ProfileID: profileID,
		Status:    string(status),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *Notifier) ProfilesImported(jobID string, count int) {
	if n == nil || count <= 0 {
		return
	}
	n.send(ProfilesImportedEvent{
		Type:      "profiles_imported",
		JobID:     jobID,
		Count:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *Notifier) send(evt any) {
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
