package dto

type CreateSubjectDTO struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code"`
	Department  string `json:"department"`
	TeacherID   string `json:"teacherID" validate:"omitempty,person_id"`
	Description string `json:"description"`
}

type UpdateSubjectDTO struct {
	Code        *string `json:"code"`
	Department  *string `json:"department"`
	TeacherID   *string `json:"teacherID" validate:"omitempty,person_id"`
	Description *string `json:"description"`
}
