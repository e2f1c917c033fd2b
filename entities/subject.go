package entities

import (
	"time"

	"facemark.io/application/utils"
)

type Subject struct {
	Name        string `bson:"name" json:"name" validate:"required"`
	Code        string `bson:"code" json:"code"`
	Department  string `bson:"department" json:"department"`
	TeacherID   string `bson:"teacherID" json:"teacherID"`
	TeacherName string `bson:"teacherName" json:"teacherName"`
	Description string `bson:"description" json:"description"`

	ID            string     `bson:"_id" json:"id"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deletedAt" json:"deletedAt"`
	DeletedReason *string    `bson:"deletedReason" json:"deletedReason"`
}

func (model Subject) ParseModel() any {
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
