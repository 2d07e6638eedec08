package services

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignExpiry bounds how long an upload or read URL stays valid.
const presignExpiry = 5 * time.Minute

// ImageService hands out presigned URLs for profile and candidate images.
type ImageService struct {
	Presigner *s3.PresignClient
	Bucket    string
	Now       func() time.Time
}

// NewImageService builds an ImageService over an S3 client.
func NewImageService(client *s3.Client, bucket string) *ImageService {
	return &ImageService{Presigner: s3.NewPresignClient(client), Bucket: bucket, Now: time.Now}
}

// GenerateUploadURL generates a presigned URL for uploading a file and
// returns it with the object key the file will be stored under.
func (is *ImageService) GenerateUploadURL(ctx context.Context, fileName, fileType string) (string, string, error) {
	if fileName == "" || fileType == "" {
		return "", "", &ValidationError{FieldErrors: map[string]string{"fileName": "fileName and fileType are required"}}
	}
	key := "profile-pics/" + is.Now().Format("20060102150405") + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(is.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presignedURL, err := is.Presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}
	return presignedURL.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a file
func (is *ImageService) GenerateReadURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", &ValidationError{FieldErrors: map[string]string{"key": "key is required"}}
	}
	params := &s3.GetObjectInput{
		Bucket: aws.String(is.Bucket),
		Key:    aws.String(key),
	}
	presignedURL, err := is.Presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return presignedURL.URL, nil
}
