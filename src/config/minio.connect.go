package config

import (
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"filmoasis/src/logging"
)

// ConnectMinio returns nil when no endpoint is configured.
func ConnectMinio(s MinioSettings) (*minio.Client, error) {
	if !s.Enabled() {
		logging.Info().Msg("MinIO not configured, artwork mirror disabled")
		return nil, nil
	}

	client, err := minio.New(s.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
		Secure: s.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logging.Info().Str("endpoint", s.Endpoint).Str("bucket", s.Bucket).Msg("MinIO client ready")
	return client, nil
}
