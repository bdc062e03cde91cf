package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/bouwconnect/backend/config"
)

const defaultPresignExpires = 15 * time.Minute

type s3Storage struct {
	client *s3.S3
	cfg    config.S3Configs
}

func NewS3Storage(cfg config.S3Configs) (*s3Storage, error) {
	awsConfig := &aws.Config{
		Region:           aws.String(cfg.Region),
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
		DisableSSL:       aws.Bool(cfg.SSLDisabled),
	}

	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, err
	}

	if cfg.PresignExpires == 0 {
		cfg.PresignExpires = defaultPresignExpires
	}

	return &s3Storage{client: s3.New(sess), cfg: cfg}, nil
}

func (s *s3Storage) DownloadURL(ctx context.Context, object *DownloadObject) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(object.Key),
	}

	if object.FileName != "" {
		input.ResponseContentDisposition = aws.String(
			fmt.Sprintf("attachment; filename=%q", object.FileName))
	}

	req, _ := s.client.GetObjectRequest(input)
	req.SetContext(ctx)

	url, err := req.Presign(s.cfg.PresignExpires)
	if err != nil {
		return "", fmt.Errorf("presign failed: %w, bucket %s, key %s", err, s.cfg.Bucket, object.Key)
	}

	return url, nil
}
