package fileupload

import (
	"os"

	"facemark.io/infrastructure/file_upload/azure"
	"facemark.io/infrastructure/file_upload/local"
	"facemark.io/infrastructure/file_upload/types"
)

var FileUploader types.FileUploaderType

func InitialiseFileUploader() {
	if os.Getenv("STORAGE_PROVIDER") == "local" {
		baseDir := os.Getenv("STORAGE_LOCAL_DIR")
		if baseDir == "" {
			baseDir = "./uploads"
		}
		FileUploader = &local.LocalDiskService{BaseDir: baseDir}
		return
	}
	FileUploader = &azure.AzureBlobService{
		AccountName:   os.Getenv("AZURE_STORAGE_ACCOUNT_NAME"),
		AccountKey:    os.Getenv("AZURE_STORAGE_ACCOUNT_KEY"),
		ContainerName: os.Getenv("AZURE_CONTAINER_NAME"),
	}
}
