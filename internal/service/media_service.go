package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
	cfg "pagepilot/configs"
	"pagepilot/internal/models"
	"pagepilot/internal/repository"
)

type MediaService interface {
	UploadImage(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error)
}

type mediaService struct {
	config cfg.Config
	ma     repository.MediaAssetRepository
}

func NewMediaService(config cfg.Config, ma repository.MediaAssetRepository) MediaService {
	return &mediaService{config: config, ma: ma}
}

func (s *mediaService) r2Client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.config.R2.AccessKey, s.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", s.config.R2.AccountID))
	}), nil
}

// UploadImage stores one post image in R2 and records the asset. Only jpeg and
// png are accepted; photo posts on the platform support nothing else here.
func (s *mediaService) UploadImage(ctx context.Context, userID int64, file *multipart.FileHeader) (string, error) {
	fileContent, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return "", &ValidationError{Reason: "unsupported file type"}
	}
	if fileType.Extension != "jpg" && fileType.Extension != "jpeg" && fileType.Extension != "png" {
		return "", &ValidationError{Reason: fmt.Sprintf("file type %s is not allowed", fileType.Extension)}
	}

	key, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	client, err := s.r2Client(ctx)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(fileType.MIME.Value),
	}
	if _, err := client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	fileURL := fmt.Sprintf("%s/%s", s.config.R2.PublicURL, key)

	asset := models.MediaAsset{
		UserID:   userID,
		FileName: key,
		FileType: fileType.MIME.Value,
		FileSize: file.Size,
		FileURL:  fileURL,
	}
	if _, err := s.ma.Create(ctx, nil, &asset); err != nil {
		return "", err
	}

	return fileURL, nil
}
