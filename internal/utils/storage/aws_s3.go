package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"foodgram-backend/internal/utils"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var AllowImage = []string{"image/jpeg", "image/png", "image/webp"}

var (
	ErrContentTypeNotAllowed = errors.New("content type not allowed")
	ErrInvalidBase64Payload  = errors.New("invalid base64 image payload")
)

type (
	// AwsS3 stores uploaded media and hands back public links. Recipe
	// images arrive as base64 payloads and are served as URLs.
	AwsS3 interface {
		UploadBase64(ctx context.Context, fileName, folder, payload string, allowedTypes ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	region := utils.GetConfig("AWS_S3_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Printf("failed to load AWS config: %v", err)
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: utils.GetConfig("AWS_S3_BUCKET"),
		region: region,
	}
}

// UploadBase64 decodes an embedded base64 image (optionally a data URI)
// and stores it under folder/fileName, returning the object key.
func (a *awsS3) UploadBase64(ctx context.Context, fileName, folder, payload string, allowedTypes ...string) (string, error) {
	raw := payload
	if idx := strings.Index(raw, ";base64,"); idx != -1 {
		raw = raw[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrInvalidBase64Payload
	}

	contentType := http.DetectContentType(data)
	if len(allowedTypes) > 0 {
		allowed := false
		for _, t := range allowedTypes {
			if t == contentType {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", ErrContentTypeNotAllowed
		}
	}

	ext := "jpg"
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		ext = parts[1]
	}
	objectKey := fmt.Sprintf("%s/%s.%s", folder, fileName, ext)

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &a.bucket,
		Key:         &objectKey,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", err
	}

	return objectKey, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &a.bucket,
		Key:    &objectKey,
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
	return strings.TrimPrefix(link, prefix)
}
