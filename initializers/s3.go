package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	filestorage "solar-projects-backend/lib/file-storage"
	s3client "solar-projects-backend/s3"
)

func InitS3(ctx context.Context) {
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("s3 client init failed")
		return
	}
	if err = s3client.MakeBucket(ctx, minioClient); err != nil {
		log.WithError(err).Error("s3 bucket check failed")
		return
	}
	s3client.Client = minioClient
	filestorage.NewInstance(minioClient)
	log.Info("s3 client initialized")
}
