package entities

import (
	"time"

	"facemark.io/application/utils"
)

// An audit trail entry for a hardware device. One is appended on every
// registration and heartbeat so flaky terminals can be diagnosed after the fact.
type DeviceLog struct {
	DeviceID  string    `bson:"deviceID" json:"deviceID" validate:"required"`
	Event     string    `bson:"event" json:"event" validate:"required"`
	IPAddress string    `bson:"ipAddress" json:"ipAddress"`
	Status    string    `bson:"status" json:"status"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model DeviceLog) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	if model.Timestamp.IsZero() {
		model.Timestamp = now
	}
	model.UpdatedAt = now
	return &model
}
