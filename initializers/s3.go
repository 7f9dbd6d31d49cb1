package initializers

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
	"pmfin-backend/config"
	filestorage "pmfin-backend/lib/file-storage"
)

func InitS3(ctx context.Context) {
	if config.Conf.S3.AccessKeyID == "" {
		log.Warn("S3 is not configured, attachments are kept in memory")
		filestorage.Instance = filestorage.NewMemory()
		return
	}
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		panic(err.Error())
	}
	filestorage.NewHandler(minioClient, config.Conf.S3.BucketName)
	if err = filestorage.Instance.MakeBucket(ctx); err != nil {
		log.WithError(err).Error("S3 bucket check failed")
		return
	}
	log.Info("S3 client initialized")
}
