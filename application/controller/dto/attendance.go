package dto

type MarkAttendanceDTO struct {
	PersonID string `json:"personID" validate:"required,person_id"`
	Subject  string `json:"subject" validate:"required"`
	// base64 encoded capture, with or without a data URL prefix
	Image    string `json:"image" validate:"required"`
	Location string `json:"location"`
}

type ManualAttendanceDTO struct {
	PersonID string `json:"personID" validate:"required,person_id"`
	Role     string `json:"role" validate:"required,oneof=student teacher"`
	Subject  string `json:"subject" validate:"required"`
	Date     string `json:"date"` // YYYY-MM-DD, defaults to today
	Status   string `json:"status" validate:"required,oneof=Present Absent"`
	Reason   string `json:"reason"`
}

type EnrollFaceDTO struct {
	PersonID string `json:"personID" validate:"required,person_id"`
	Role     string `json:"role" validate:"required,oneof=student teacher"`
	Image    string `json:"image" validate:"required"`
}

type OverrideAttendanceDTO struct {
	Status *string `json:"status" validate:"omitempty,oneof=Present Absent"`
	Reason *string `json:"reason"`
}
