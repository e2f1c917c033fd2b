package dto

type RegisterUserDTO struct {
	Name         string `json:"name" validate:"required,name_spacial_char"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,password"`
	Role         string `json:"role" validate:"required,oneof=student teacher"`
	PersonID     string `json:"personID" validate:"required,person_id"`
	Department   string `json:"department"`
	StudentClass string `json:"studentClass"`
	Division     string `json:"division"`
	Phone        string `json:"phone"`
}

type LoginUserDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RequestPasswordResetDTO struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordDTO struct {
	Email       string `json:"email" validate:"required,email"`
	Otp         string `json:"otp" validate:"required,len=6"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

type VerifyTokenDTO struct {
	Token string `json:"token" validate:"required"`
}

type RefreshTokenDTO struct {
	Token string `json:"token" validate:"required"`
}

type ChangePasswordDTO struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}
