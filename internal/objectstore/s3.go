package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/errors"
)

// S3Config configures the S3 client
type S3Config struct {
	Profile      string
	Region       string
	Endpoint     string
	UsePathStyle bool
	HTTPClient   *http.Client
}

// S3Store implements Store on Amazon S3 or a compatible service
type S3Store struct {
	client *s3.Client
}

// NewS3Store resolves credentials through the default AWS chain, optionally
// scoped to a shared-config profile.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, config.WithHTTPClient(cfg.HTTPClient))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3StoreWithClient(client), nil
}

// NewS3StoreWithClient wraps a preconfigured client
func NewS3StoreWithClient(client *s3.Client) *S3Store {
	return &S3Store{client: client}
}

// Backend returns "s3"
func (s *S3Store) Backend() string {
	return conf.StorageS3
}

// Exists issues a HEAD request for the object
func (s *S3Store) Exists(ctx context.Context, p Path) bool {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.Bucket),
		Key:    aws.String(p.Key),
	})
	return err == nil
}

// Upload puts the object, replacing any existing one
func (s *S3Store) Upload(ctx context.Context, p Path, data []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.Bucket),
		Key:           aws.String(p.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return wrapS3Error(err, "put_object", p)
	}
	return nil
}

// Download reads the whole object into memory
func (s *S3Store) Download(ctx context.Context, p Path) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.Bucket),
		Key:    aws.String(p.Key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrObjectNotFound
		}
		return nil, wrapS3Error(err, "get_object", p)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, wrapS3Error(err, "read_object", p)
	}
	return data, nil
}

// Delete removes the object. S3 reports success for missing keys.
func (s *S3Store) Delete(ctx context.Context, p Path) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.Bucket),
		Key:    aws.String(p.Key),
	})
	if err != nil && !isNotFound(err) {
		return wrapS3Error(err, "delete_object", p)
	}
	return nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}

func wrapS3Error(err error, operation string, p Path) error {
	return errors.New(err).
		Component("objectstore").
		Category(errors.CategoryObjectStore).
		Context("operation", operation).
		Context("bucket", p.Bucket).
		Build()
}
