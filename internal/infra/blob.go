package infra

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobStore keeps binary payloads (inspection images) outside the database.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	PresignURL(ctx context.Context, ref string, expira time.Duration) (string, error)
	Delete(ctx context.Context, ref string) error
}

// S3Config holds the bucket parameters; Endpoint enables S3-compatible
// servers such as MinIO.
type S3Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	PathStyle bool
}

// S3Store implements BlobStore on a single bucket. References returned by Put
// have the form s3://bucket/key.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3Store builds the client from the default AWS credential chain.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket requerido")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("s3: cargar credenciales: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Store{client: client, presign: s3.NewPresignClient(client), bucket: cfg.Bucket}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("s3: subir %s: %w", key, err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}

// PresignURL returns a temporary GET URL for a reference produced by Put.
func (s *S3Store) PresignURL(ctx context.Context, ref string, expira time.Duration) (string, error) {
	key, err := s.clave(ref)
	if err != nil {
		return "", err
	}
	if expira <= 0 {
		expira = 15 * time.Minute
	}
	out, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(po *s3.PresignOptions) { po.Expires = expira })
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

// Delete removes the object behind a reference produced by Put.
func (s *S3Store) Delete(ctx context.Context, ref string) error {
	key, err := s.clave(ref)
	if err != nil {
		return err
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("s3: eliminar %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) clave(ref string) (string, error) {
	key, ok := strings.CutPrefix(ref, "s3://"+s.bucket+"/")
	if !ok {
		return "", fmt.Errorf("s3: referencia ajena al bucket: %s", ref)
	}
	return key, nil
}

// EsReferenciaBlob reports whether a stored image value points to the blob store.
func EsReferenciaBlob(v string) bool { return strings.HasPrefix(v, "s3://") }
