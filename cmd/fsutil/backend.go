package main

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/jmgilman/go/file/errors"
	"github.com/jmgilman/go/file/fs/core"
	"github.com/jmgilman/go/file/fs/minio"
)

const (
	envAccessKey = "FSUTIL_S3_ACCESS_KEY"
	envSecretKey = "FSUTIL_S3_SECRET_KEY"
)

// s3Flags selects an S3-compatible bucket instead of the local disk.
type s3Flags struct {
	endpoint  string
	bucket    string
	accessKey string
	secretKey string
	useSSL    bool
	prefix    string
}

func (s *s3Flags) register(flags *pflag.FlagSet) {
	flags.StringVar(&s.bucket, "s3-bucket", "", "operate on this S3 bucket instead of the local disk")
	flags.StringVar(&s.endpoint, "s3-endpoint", "", "S3 endpoint, e.g. localhost:9000")
	flags.StringVar(&s.accessKey, "s3-access-key", "", "S3 access key (default $"+envAccessKey+")")
	flags.StringVar(&s.secretKey, "s3-secret-key", "", "S3 secret key (default $"+envSecretKey+")")
	flags.BoolVar(&s.useSSL, "s3-ssl", false, "connect to the S3 endpoint over HTTPS")
	flags.StringVar(&s.prefix, "s3-prefix", "", "key prefix used as the root directory")
}

// backend returns the S3 filesystem, or nil when no bucket is selected.
func (s *s3Flags) backend() (core.FS, error) {
	if s.bucket == "" {
		return nil, nil
	}

	accessKey := s.accessKey
	if accessKey == "" {
		accessKey = os.Getenv(envAccessKey)
	}
	secretKey := s.secretKey
	if secretKey == "" {
		secretKey = os.Getenv(envSecretKey)
	}

	mfs, err := minio.NewMinIO(minio.Config{
		Endpoint:  s.endpoint,
		Bucket:    s.bucket,
		AccessKey: accessKey,
		SecretKey: secretKey,
		UseSSL:    s.useSSL,
		Prefix:    s.prefix,
	})
	if err != nil {
		return nil, errors.WithContext(
			errors.Wrap(err, errors.CodeInvalidInput, "invalid s3 backend"),
			"bucket", s.bucket,
		)
	}
	return mfs, nil
}
