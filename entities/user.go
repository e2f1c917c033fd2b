package entities

import (
	"time"

	"facemark.io/application/utils"
)

// This represents a login account. Profile data lives on the role-specific
// Student or Teacher record linked through ProfileID.
type User struct {
	Name      string     `bson:"name" json:"name" validate:"required"`
	Email     string     `bson:"email" json:"email" validate:"required,email"`
	Password  string     `bson:"password" json:"-"`
	PersonID  string     `bson:"personID" json:"personID"` // student or teacher number
	Role      string     `bson:"role" json:"role"`
	Status    string     `bson:"status" json:"status"`
	ProfileID string     `bson:"profileID" json:"profileID"`
	LastLogin *time.Time `bson:"lastLogin" json:"lastLogin"`

	ID            string     `bson:"_id" json:"id"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deletedAt" json:"deletedAt"`
	DeletedReason *string    `bson:"deletedReason" json:"deletedReason"`
}

func (model User) ParseModel() any {
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
