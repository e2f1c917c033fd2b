package dto

type RegisterDeviceDTO struct {
	DeviceID   string `json:"deviceID" validate:"required"`
	DeviceName string `json:"deviceName" validate:"required"`
	DeviceType string `json:"deviceType" validate:"required,oneof=terminal beacon camera"`
	Location   string `json:"location"`
	MacAddress string `json:"macAddress"`
}

type DeviceSyncDTO struct {
	DeviceID  string `json:"deviceID" validate:"required"`
	IPAddress string `json:"ipAddress"`
	Status    string `json:"status" validate:"omitempty,oneof=online offline"`
}

type UpdateDeviceDTO struct {
	DeviceName *string `json:"deviceName"`
	DeviceType *string `json:"deviceType" validate:"omitempty,oneof=terminal beacon camera"`
	Location   *string `json:"location"`
	Status     *string `json:"status" validate:"omitempty,oneof=online offline"`
}
