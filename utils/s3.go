package utils

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Archiver stores analyzed images in S3 so classifications can be
// audited later.
type S3Archiver struct {
	client *s3.Client
	bucket string
}

// NewS3Archiver builds an archiver for the bucket named in S3_BUCKET.
// Returns nil when no bucket is configured; archival is optional.
func NewS3Archiver() (*S3Archiver, error) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, nil
	}

	region := os.Getenv("S3_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for S3: %w", err)
	}
	return &S3Archiver{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// Archive uploads the image under a date-stamped key and returns the key.
func (a *S3Archiver) Archive(imageData []byte) (string, error) {
	contentType := http.DetectContentType(imageData)
	now := time.Now()
	key := fmt.Sprintf("analyze/%s/%d.jpg", now.Format("2006-01-02"), now.UnixNano())

	_, err := a.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return key, nil
}
