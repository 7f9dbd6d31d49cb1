package filestorage

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	UploadFile(ctx context.Context, key string, fileReader io.Reader, fileSize int64, contentType string) error
	GetFile(ctx context.Context, key string) ([]byte, error)
	DeleteFile(ctx context.Context, key string) error
	MakeBucket(ctx context.Context) error
}

var Instance Provider

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func NewHandler(s3client *minio.Client, bucketName string) {
	Instance = &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

func (i impl) UploadFile(ctx context.Context, key string, fileReader io.Reader, fileSize int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, key, fileReader, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "failed to upload file")
	}
	return nil
}

func (i impl) GetFile(ctx context.Context, key string) ([]byte, error) {
	obj, err := i.s3client.GetObject(ctx, i.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get file")
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	return data, nil
}

func (i impl) DeleteFile(ctx context.Context, key string) error {
	err := i.s3client.RemoveObject(ctx, i.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "failed to delete file")
	}
	return nil
}

func (i impl) MakeBucket(ctx context.Context) error {
	exists, err := i.s3client.BucketExists(ctx, i.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	err = i.s3client.MakeBucket(ctx, i.bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
	if err != nil {
		return err
	}
	log.WithField("bucket", i.bucketName).Info("bucket created")
	return nil
}
