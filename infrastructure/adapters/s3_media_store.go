package adapters

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Amdaxx/podcast/application/ports/outbound"
	"github.com/Amdaxx/podcast/config"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

type s3MediaStore struct {
	logger   outbound.LoggerPort
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3MediaStore(s3Svc *s3.S3, s3Config *config.S3Config, logger outbound.LoggerPort) outbound.MediaStorePort {
	return &s3MediaStore{
		logger:   logger,
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

func (s *s3MediaStore) Save(ctx context.Context, req outbound.StoreMediaRequest) (*outbound.StoredMedia, error) {
	key := s.itemKey(req)

	putInput := &s3.PutObjectInput{
		Bucket:        aws.String(s.s3Config.BucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(req.Content),
		ContentLength: aws.Int64(int64(len(req.Content))),
		ContentType:   aws.String(req.ContentType),
	}

	if _, err := s.s3Svc.PutObjectWithContext(ctx, putInput); err != nil {
		s.logger.ErrorWithFields(err, "Failed to upload object to S3", map[string]interface{}{
			"bucket": s.s3Config.BucketName,
			"key":    key,
		})
		return nil, err
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.s3Config.BucketName, s.s3Config.Region, key)
	s.logger.DebugWithFields("Uploaded object to S3", map[string]interface{}{
		"url": url,
	})

	return &outbound.StoredMedia{
		URL: url,
		Key: key,
	}, nil
}

func (s *s3MediaStore) itemKey(req outbound.StoreMediaRequest) string {
	return fmt.Sprintf("users/%s/drafts/%s/%s/%s", req.UserID, req.DraftID, req.Kind, uuid.NewString())
}
