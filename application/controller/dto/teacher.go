package dto

type CreateTeacherDTO struct {
	TeacherID  string `json:"teacherID" validate:"required,person_id"`
	Name       string `json:"name" validate:"required,name_spacial_char"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

type UpdateTeacherDTO struct {
	Name       *string `json:"name" validate:"omitempty,name_spacial_char"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Department *string `json:"department"`
	Phone      *string `json:"phone"`
	Status     *string `json:"status" validate:"omitempty,oneof=active inactive"`
}
