package local

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// LocalDiskService keeps uploads on the host filesystem. It exists for
// development and single-machine installs without a cloud storage account.
type LocalDiskService struct {
	BaseDir string
}

func (service *LocalDiskService) resolve(fileName string) (string, error) {
	cleaned := filepath.Clean(filepath.Join(service.BaseDir, fileName))
	if !strings.HasPrefix(cleaned, filepath.Clean(service.BaseDir)+string(os.PathSeparator)) {
		return "", errors.New("file name escapes the storage directory")
	}
	return cleaned, nil
}

func (service *LocalDiskService) UploadBytes(fileName string, data []byte) error {
	path, err := service.resolve(fileName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (service *LocalDiskService) GenerateDownloadURL(fileName string) (*string, error) {
	path, err := service.resolve(fileName)
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func (service *LocalDiskService) CheckFileExists(fileName string) (bool, error) {
	path, err := service.resolve(fileName)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (service *LocalDiskService) DeleteFile(fileName string) error {
	path, err := service.resolve(fileName)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
