package dto

type CreateNoticeDTO struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	// "all" or a class name
	TargetClass string `json:"targetClass" validate:"required"`
	Broadcast   bool   `json:"broadcast"`
}

type UpdateNoticeDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	TargetClass *string `json:"targetClass"`
}
