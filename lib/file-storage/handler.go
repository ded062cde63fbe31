package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"solar-projects-backend/config"
)

type Provider interface {
	UploadAttachment(ctx context.Context, reportID, fileName string, file []byte) (storagePath string, err error)
	GetAttachment(ctx context.Context, storagePath string) ([]byte, error)
	DeleteAttachment(ctx context.Context, storagePath string) error
}

var Instance Provider

func NewInstance(s3client *minio.Client) {
	Instance = &impl{
		s3client: s3client,
	}
}

type impl struct {
	s3client *minio.Client
}

func (i impl) UploadAttachment(ctx context.Context, reportID, fileName string, file []byte) (string, error) {
	objectName := fmt.Sprintf("daily-reports/%s/%s%s", reportID, uuid.NewString(), path.Ext(fileName))
	_, err := i.s3client.PutObject(ctx, config.Conf.S3.BucketName, objectName,
		bytes.NewReader(file), int64(len(file)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return "", errors.Wrap(err, "attachment upload failed")
	}
	return objectName, nil
}

func (i impl) GetAttachment(ctx context.Context, storagePath string) ([]byte, error) {
	obj, err := i.s3client.GetObject(ctx, config.Conf.S3.BucketName, storagePath, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "attachment read failed")
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, "attachment read failed")
	}
	return data, nil
}

func (i impl) DeleteAttachment(ctx context.Context, storagePath string) error {
	err := i.s3client.RemoveObject(ctx, config.Conf.S3.BucketName, storagePath, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "attachment delete failed")
	}
	return nil
}
