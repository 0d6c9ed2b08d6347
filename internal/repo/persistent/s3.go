package persistent

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/andreyxaxa/Deletion-Request-Mailer/pkg/s3client"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// AttachmentRepo stores decoded attachment bytes. Keys look like attachments/<record id>.
type AttachmentRepo struct {
	*s3client.S3Client
	bucket string
}

func NewAttachmentRepo(s3c *s3client.S3Client, bucket string) *AttachmentRepo {
	return &AttachmentRepo{s3c, bucket}
}

func (r *AttachmentRepo) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("AttachmentRepo - Upload - r.Client.PutObject: %w", err)
	}

	return nil
}

func (r *AttachmentRepo) Download(ctx context.Context, key string) ([]byte, error) {
	result, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("AttachmentRepo - Download - r.Client.GetObject: %w", err)
	}
	defer result.Body.Close()

	b, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("AttachmentRepo - Download - io.ReadAll: %w", err)
	}

	return b, nil
}

func (r *AttachmentRepo) Delete(ctx context.Context, key string) error {
	_, err := r.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("AttachmentRepo - Delete - r.Client.DeleteObject: %w", err)
	}

	return nil
}
