package azure

import (
	"context"
	"fmt"
	"time"

	"facemark.io/infrastructure/logger"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
)

type AzureBlobService struct {
	AccountName   string
	ContainerName string
	AccountKey    string
}

func (azservice *AzureBlobService) serviceURL() string {
	return fmt.Sprintf("https://%s.blob.core.windows.net/", azservice.AccountName)
}

func (azservice *AzureBlobService) client() (*azblob.Client, error) {
	credential, err := azblob.NewSharedKeyCredential(azservice.AccountName, azservice.AccountKey)
	if err != nil {
		logger.Error("error generating azblob shared key credential", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return azblob.NewClientWithSharedKeyCredential(azservice.serviceURL(), credential, nil)
}

func (azservice *AzureBlobService) UploadBytes(fileName string, data []byte) error {
	client, err := azservice.client()
	if err != nil {
		return err
	}
	_, err = client.UploadBuffer(context.TODO(), azservice.ContainerName, fileName, data, nil)
	if err != nil {
		logger.Error("error uploading blob", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "fileName",
			Data: fileName,
		})
		return err
	}
	return nil
}

func (azservice *AzureBlobService) blobClient(fileName string) (*blob.Client, error) {
	credential, err := azblob.NewSharedKeyCredential(azservice.AccountName, azservice.AccountKey)
	if err != nil {
		return nil, err
	}
	blobURL := fmt.Sprintf("%s%s/%s", azservice.serviceURL(), azservice.ContainerName, fileName)
	return blob.NewClientWithSharedKeyCredential(blobURL, credential, nil)
}

func (azservice *AzureBlobService) GenerateDownloadURL(fileName string) (*string, error) {
	client, err := azservice.blobClient(fileName)
	if err != nil {
		return nil, err
	}
	// url is valid for only 5 mins
	sasURL, err := client.GetSASURL(sas.BlobPermissions{Read: true}, time.Now().UTC().Add(5*time.Minute), nil)
	if err != nil {
		logger.Error("error generating blob sas url", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &sasURL, nil
}

func (azservice *AzureBlobService) CheckFileExists(fileName string) (bool, error) {
	client, err := azservice.blobClient(fileName)
	if err != nil {
		return false, err
	}
	_, err = client.GetProperties(context.TODO(), nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (azservice *AzureBlobService) DeleteFile(fileName string) error {
	client, err := azservice.client()
	if err != nil {
		return err
	}
	_, err = client.DeleteBlob(context.TODO(), azservice.ContainerName, fileName, nil)
	if err != nil {
		logger.Error("error deleting blob", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "fileName",
			Data: fileName,
		})
		return err
	}
	return nil
}
