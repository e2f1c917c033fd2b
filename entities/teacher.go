package entities

import (
	"time"

	"facemark.io/application/utils"
)

type Teacher struct {
	TeacherID  string `bson:"teacherID" json:"teacherID" validate:"required"`
	Name       string `bson:"name" json:"name" validate:"required"`
	Email      string `bson:"email" json:"email" validate:"required,email"`
	Department string `bson:"department" json:"department"`
	Phone      string `bson:"phone" json:"phone"`
	Status     string `bson:"status" json:"status"`
	UserID     string `bson:"userID" json:"userID"`

	FaceEncoding []float64 `bson:"faceEncoding" json:"-"`
	FaceImageRef string    `bson:"faceImageRef" json:"-"`

	TotalAttendance    int64            `bson:"totalAttendance" json:"totalAttendance"`
	TotalSessions      int64            `bson:"totalSessions" json:"totalSessions"`
	SubjectsAttendance map[string]int64 `bson:"subjectsAttendance" json:"subjectsAttendance"`
	SubjectsTotal      map[string]int64 `bson:"subjectsTotal" json:"subjectsTotal"`

	ID            string     `bson:"_id" json:"id"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deletedAt" json:"deletedAt"`
	DeletedReason *string    `bson:"deletedReason" json:"deletedReason"`
}

func (model Teacher) ParseModel() any {
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

func (model *Teacher) FaceEnrolled() bool {
	return len(model.FaceEncoding) != 0
}
