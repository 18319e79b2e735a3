package files

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/sony/gobreaker/v2"

	"filmoasis/src/logging"
	"filmoasis/src/utils"
)

const maxImageBytes = 20 << 20

// Object is an open stored file. Callers close Reader.
type Object struct {
	Reader      io.ReadCloser
	Size        int64
	ContentType string
}

type image struct {
	data        []byte
	contentType string
}

// ArtworkStore mirrors remote artwork into a MinIO bucket and serves it back.
type ArtworkStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[image]
}

func NewArtworkStore(client *minio.Client, bucket, imageBaseURL string) *ArtworkStore {
	return &ArtworkStore{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(imageBaseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		breaker: newBreaker("artwork-download"),
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker[image] {
	return gobreaker.NewCircuitBreaker[image](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
}

// cleanKey normalises a request path into an object key, rejecting paths
// that escape the bucket root.
func cleanKey(p string) (string, error) {
	key := strings.TrimPrefix(path.Clean("/"+p), "/")
	if key == "" || key == "." {
		return "", utils.Invalid("Invalid file path")
	}
	return key, nil
}

// Open streams a stored object.
func (s *ArtworkStore) Open(ctx context.Context, filePath string) (*Object, error) {
	key, err := cleanKey(filePath)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, utils.StorageFailure("get object", err)
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if isMissing(err) {
			return nil, utils.NotFound("File not found")
		}
		return nil, utils.StorageFailure("stat object", err)
	}

	return &Object{Reader: obj, Size: stat.Size, ContentType: stat.ContentType}, nil
}

func isMissing(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	}
	return false
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *ArtworkStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	logging.Info().Str("bucket", s.bucket).Msg("created artwork bucket")
	return nil
}

// Mirror copies the image at source into the bucket unless it is already
// there, and returns its object key.
func (s *ArtworkStore) Mirror(ctx context.Context, source string) (string, error) {
	remote, key, err := s.resolve(source)
	if err != nil {
		return "", err
	}

	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err == nil {
		return key, nil
	}

	img, err := s.download(ctx, remote)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(img.data), int64(len(img.data)),
		minio.PutObjectOptions{ContentType: img.contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to minio: %w", err)
	}
	return key, nil
}

// resolve maps a TMDB image path or absolute URL to the URL to fetch and
// the object key to store it under.
func (s *ArtworkStore) resolve(source string) (string, string, error) {
	source = strings.TrimSpace(source)
	if source == "" || source == "/" {
		return "", "", fmt.Errorf("invalid image path %q", source)
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		u, err := url.Parse(source)
		if err != nil {
			return "", "", fmt.Errorf("failed to parse image URL: %w", err)
		}
		key, err := cleanKey(path.Join(u.Host, u.Path))
		if err != nil {
			return "", "", err
		}
		return source, "remote/" + key, nil
	}

	key, err := cleanKey(source)
	if err != nil {
		return "", "", err
	}
	return s.baseURL + "/" + key, "tmdb/" + key, nil
}

func (s *ArtworkStore) download(ctx context.Context, remote string) (image, error) {
	return s.breaker.Execute(func() (image, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, remote, nil)
		if err != nil {
			return image{}, err
		}

		resp, err := s.http.Do(req)
		if err != nil {
			return image{}, fmt.Errorf("failed to download image: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return image{}, fmt.Errorf("bad status when downloading image: %d", resp.StatusCode)
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
		if err != nil {
			return image{}, fmt.Errorf("failed to read image: %w", err)
		}
		if len(data) > maxImageBytes {
			return image{}, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
		}

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		return image{data: data, contentType: contentType}, nil
	})
}
