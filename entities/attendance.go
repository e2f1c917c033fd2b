package entities

import (
	"time"

	"facemark.io/application/utils"
)

// One AttendanceRecord models one "present for subject S on day D" assertion.
// At most one non-superseded record may exist per (student, subject, day) —
// the datastore enforces this with a unique index keyed on those three fields.
type AttendanceRecord struct {
	StudentID   string    `bson:"studentID" json:"studentID"`
	StudentName string    `bson:"studentName" json:"studentName"`
	Subject     string    `bson:"subject" json:"subject"`
	Day         time.Time `bson:"day" json:"day"` // start of the UTC calendar day
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	Status      string    `bson:"status" json:"status"`
	Location    string    `bson:"location" json:"location"`

	// MatchDistance is only set for records produced by the automatic
	// face-match path. 0.0 marks the lazy-enrollment submission.
	MatchDistance *float64 `bson:"matchDistance" json:"matchDistance,omitempty"`
	Reason        string   `bson:"reason" json:"reason,omitempty"`
	MarkedBy      string   `bson:"markedBy" json:"markedBy"`

	ID            string     `bson:"_id" json:"id"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
	DeletedAt     *time.Time `bson:"deletedAt" json:"deletedAt"`
	DeletedReason *string    `bson:"deletedReason" json:"deletedReason"`
}

func (model AttendanceRecord) ParseModel() any {
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
