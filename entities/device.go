package entities

import (
	"time"

	"facemark.io/application/utils"
)

// A registered hardware device - an attendance terminal or a teacher's
// bluetooth beacon used for proximity checks.
type Device struct {
	DeviceID   string    `bson:"deviceID" json:"deviceID" validate:"required"`
	DeviceName string    `bson:"deviceName" json:"deviceName" validate:"required"`
	DeviceType string    `bson:"deviceType" json:"deviceType" validate:"required"`
	Location   string    `bson:"location" json:"location"`
	MacAddress string    `bson:"macAddress" json:"macAddress"`
	IPAddress  string    `bson:"ipAddress" json:"ipAddress"`
	Status     string    `bson:"status" json:"status"`
	LastSync   time.Time `bson:"lastSync" json:"lastSync"`

	ID            string     `bson:"_id" json:"id"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deletedAt" json:"deletedAt"`
	DeletedReason *string    `bson:"deletedReason" json:"deletedReason"`
}

func (model Device) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		if model.ID == "" {
			model.ID = utils.GenerateULIDString()
		}
	}
	model.UpdatedAt = now
	return &model
}
