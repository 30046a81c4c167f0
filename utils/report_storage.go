package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/volcengine/ve-tos-golang-sdk/v2/tos"
)

// ReportStorageConfig holds the TOS connection settings for report exports.
type ReportStorageConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	AccessKeySecret string
	BucketName      string
	BaseURL         string
	Timeout         int // seconds
}

// ReportStorage uploads exported analytics reports to object storage.
type ReportStorage struct {
	config ReportStorageConfig
	client *tos.ClientV2
}

// NewReportStorage creates the TOS-backed report store.
func NewReportStorage(config ReportStorageConfig) (*ReportStorage, error) {
	if config.Endpoint == "" || config.AccessKeyID == "" || config.AccessKeySecret == "" || config.BucketName == "" {
		return nil, errors.New("incomplete TOS configuration")
	}

	if config.Timeout <= 0 {
		config.Timeout = 30
	}

	credential := tos.NewStaticCredentials(config.AccessKeyID, config.AccessKeySecret)

	tosClient, err := tos.NewClientV2(config.Endpoint,
		tos.WithCredentials(credential),
		tos.WithRegion(config.Region))
	if err != nil {
		return nil, fmt.Errorf("initialize TOS client: %w", err)
	}

	return &ReportStorage{
		config: config,
		client: tosClient,
	}, nil
}

// Close releases the client resources.
func (s *ReportStorage) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// UploadReport stores the report content under reports/<objectName> and
// returns the public URL.
func (s *ReportStorage) UploadReport(objectName string, content io.Reader) (string, error) {
	if objectName == "" {
		return "", errors.New("object name is required")
	}

	key := "reports/" + strings.TrimPrefix(objectName, "/")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.Timeout)*time.Second)
	defer cancel()

	input := &tos.PutObjectV2Input{
		PutObjectBasicInput: tos.PutObjectBasicInput{
			Bucket: s.config.BucketName,
			Key:    key,
		},
		Content: content,
	}

	if _, err := s.client.PutObjectV2(ctx, input); err != nil {
		return "", fmt.Errorf("upload report to TOS: %w", err)
	}

	return s.config.BaseURL + "/" + key, nil
}

// DeleteReport removes a stored report, accepting either the key or the full
// URL.
func (s *ReportStorage) DeleteReport(objectPath string) error {
	if strings.HasPrefix(objectPath, s.config.BaseURL) {
		objectPath = strings.TrimPrefix(objectPath, s.config.BaseURL+"/")
	}

	if objectPath == "" {
		return errors.New("invalid object path")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.Timeout)*time.Second)
	defer cancel()

	input := &tos.DeleteObjectV2Input{
		Bucket: s.config.BucketName,
		Key:    objectPath,
	}

	if _, err := s.client.DeleteObjectV2(ctx, input); err != nil {
		return fmt.Errorf("delete report from TOS: %w", err)
	}

	return nil
}

// ListReports lists stored report URLs.
func (s *ReportStorage) ListReports() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.Timeout)*time.Second)
	defer cancel()

	input := &tos.ListObjectsV2Input{
		Bucket: s.config.BucketName,
	}

	output, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("list TOS reports: %w", err)
	}

	files := make([]string, 0, len(output.Contents))
	for _, obj := range output.Contents {
		files = append(files, s.config.BaseURL+"/"+obj.Key)
	}

	return files, nil
}
