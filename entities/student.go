package entities

import (
	"time"

	"facemark.io/application/utils"
)

// This represents a student enrolled for face attendance
type Student struct {
	StudentID    string `bson:"studentID" json:"studentID" validate:"required"`
	Name         string `bson:"name" json:"name" validate:"required"`
	Email        string `bson:"email" json:"email" validate:"required,email"`
	Department   string `bson:"department" json:"department"`
	StudentClass string `bson:"studentClass" json:"studentClass"`
	Division     string `bson:"division" json:"division"`
	Phone        string `bson:"phone" json:"phone"`
	Status       string `bson:"status" json:"status"`
	UserID       string `bson:"userID" json:"userID"`

	// FaceEncoding is unset until the student enrolls a reference image,
	// either explicitly or lazily through their first accepted attendance mark.
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

func (model Student) ParseModel() any {
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

func (model *Student) FaceEnrolled() bool {
	return len(model.FaceEncoding) != 0
}

// Overall attendance percentage rounded to two decimal places.
func (model *Student) AttendancePercentage() float64 {
	if model.TotalSessions == 0 {
		return 0
	}
	return float64(int64(float64(model.TotalAttendance)/float64(model.TotalSessions)*100*100+0.5)) / 100
}
