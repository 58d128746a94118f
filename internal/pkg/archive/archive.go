// Package archive uploads generated articles to S3-compatible storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appcfg "github.com/inkwell-app/inkwell/internal/config"
)

const articleContentType = "text/markdown; charset=utf-8"

// Store writes article objects under a key prefix in one bucket.
type Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// New builds a Store from the archive configuration. A custom endpoint
// implies path-style addressing, which most S3-compatible services expect.
func New(cfg appcfg.ArchiveConfig, optFns ...func(*s3.Options)) (*Store, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	region := strings.TrimSpace(cfg.Region)
	if bucket == "" || region == "" {
		return nil, fmt.Errorf("incomplete archive config: bucket/region are required")
	}

	opts := s3.Options{
		Region:     region,
		HTTPClient: &http.Client{Timeout: 45 * time.Second},
	}
	// S3-compatible services commonly reject the default CRC trailers.
	opts.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired

	accessKey := strings.TrimSpace(cfg.AccessKeyID)
	secretKey := strings.TrimSpace(cfg.SecretAccessKey)
	if accessKey != "" && secretKey != "" {
		opts.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""))
	} else {
		opts.Credentials = aws.AnonymousCredentials{}
	}

	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		normalized, err := normalizeEndpoint(endpoint)
		if err != nil {
			return nil, err
		}
		opts.BaseEndpoint = aws.String(normalized)
		opts.UsePathStyle = true
	}
	if cfg.PathStyle {
		opts.UsePathStyle = true
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Store{
		client: s3.New(opts),
		bucket: bucket,
		prefix: normalizeObjectKey(cfg.Prefix),
	}, nil
}

// ArticleKey returns <prefix>/<yyyy>/<mm>/<id>.md.
func (s *Store) ArticleKey(id string, created time.Time) string {
	created = created.UTC()
	return normalizeObjectKey(path.Join(
		s.prefix,
		fmt.Sprintf("%04d", created.Year()),
		fmt.Sprintf("%02d", int(created.Month())),
		id+".md",
	))
}

// PutArticle uploads body as the article object and returns its key.
func (s *Store) PutArticle(ctx context.Context, id string, created time.Time, body []byte) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("archive: article id is required")
	}
	key := s.ArticleKey(id, created)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(articleContentType),
	})
	if err != nil {
		return "", fmt.Errorf("archive put %s: %w", key, err)
	}
	return key, nil
}

func normalizeEndpoint(endpoint string) (string, error) {
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/")
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid archive endpoint: %s", endpoint)
	}
	return endpoint, nil
}

func normalizeObjectKey(key string) string {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	key = strings.Trim(key, "/")
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	return key
}
