package dto

type CreateStudentDTO struct {
	StudentID    string `json:"studentID" validate:"required,person_id"`
	Name         string `json:"name" validate:"required,name_spacial_char"`
	Email        string `json:"email" validate:"required,email"`
	Department   string `json:"department"`
	StudentClass string `json:"studentClass"`
	Division     string `json:"division"`
	Phone        string `json:"phone"`
}

type UpdateStudentDTO struct {
	Name         *string `json:"name" validate:"omitempty,name_spacial_char"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Department   *string `json:"department"`
	StudentClass *string `json:"studentClass"`
	Division     *string `json:"division"`
	Phone        *string `json:"phone"`
	Status       *string `json:"status" validate:"omitempty,oneof=active inactive"`

	// FaceImage is a base64 capture. When present the reference encoding is
	// re-extracted and replaced.
	FaceImage *string `json:"faceImage"`
}
