package types

type FileUploaderType interface {
	UploadBytes(fileName string, data []byte) error
	GenerateDownloadURL(fileName string) (*string, error)
	CheckFileExists(fileName string) (bool, error)
	DeleteFile(fileName string) error
}
