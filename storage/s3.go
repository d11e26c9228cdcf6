package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"portfolio/config"
)

// S3Store uploads images to an S3-compatible bucket.
type S3Store struct {
	bucket        string
	publicBaseURL string
	client        *s3.S3
	uploader      *s3manager.Uploader
}

func NewS3Store(cfg config.S3Bucket) (*S3Store, error) {
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(cfg.ForcePathStyle),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := s3.New(sess)
	return &S3Store{
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		client:        client,
		uploader:      s3manager.NewUploaderWithClient(client),
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, name string, r io.Reader, contentType string) (string, error) {
	input := &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
		Body:   r,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	out, err := s.uploader.UploadWithContext(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + name, nil
	}
	return out.Location, nil
}

func (s *S3Store) Delete(ctx context.Context, publicURL string) error {
	key, ok := s.keyFor(publicURL)
	if !ok {
		return ErrForeignURL
	}

	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) keyFor(publicURL string) (string, bool) {
	if s.publicBaseURL != "" {
		if !strings.HasPrefix(publicURL, s.publicBaseURL+"/") {
			return "", false
		}
		return strings.TrimPrefix(publicURL, s.publicBaseURL+"/"), true
	}

	u, err := url.Parse(publicURL)
	if err != nil || u.Path == "" {
		return "", false
	}
	p := strings.TrimPrefix(u.Path, "/")
	if strings.HasPrefix(p, s.bucket+"/") {
		return strings.TrimPrefix(p, s.bucket+"/"), true
	}
	if strings.HasPrefix(u.Host, s.bucket+".") {
		return p, true
	}
	return "", false
}
