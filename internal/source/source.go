// Package source resolves dataset locations. Local paths pass through;
// s3://bucket/key objects are staged in a temp file.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

// Location is a parsed s3 URI.
type Location struct {
	Bucket string
	Key    string
}

// IsRemote reports whether uri names an s3 object.
func IsRemote(uri string) bool {
	return strings.HasPrefix(uri, s3Scheme)
}

// ParseS3 splits s3://bucket/key.
func ParseS3(uri string) (Location, error) {
	if !IsRemote(uri) {
		return Location{}, fmt.Errorf("not an s3 uri: %q", uri)
	}
	rest := strings.TrimPrefix(uri, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return Location{}, fmt.Errorf("s3 uri %q must be s3://bucket/key", uri)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// Store reads and writes dataset objects in S3.
type Store struct {
	client *s3.Client
}

// NewStore loads the default AWS configuration. An empty region defers
// to the environment.
func NewStore(ctx context.Context, region string) (*Store, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &Store{client: s3.NewFromConfig(cfg)}, nil
}

// Fetch downloads loc into a temp file that keeps the object's extension
// so format detection still works. The returned cleanup removes it.
func (s *Store) Fetch(ctx context.Context, loc Location) (string, func(), error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return "", nil, fmt.Errorf("getting S3 object s3://%s/%s: %w", loc.Bucket, loc.Key, err)
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp("", "revshare-*-"+path.Base(loc.Key))
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.Remove(tmp.Name()) }
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("downloading s3://%s/%s: %w", loc.Bucket, loc.Key, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return tmp.Name(), cleanup, nil
}

// Upload copies the local file at localPath to loc.
func (s *Store) Upload(ctx context.Context, localPath string, loc Location) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(loc.Bucket),
		Key:         aws.String(loc.Key),
		Body:        f,
		ContentType: aws.String(contentType(loc.Key)),
	})
	if err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", loc.Bucket, loc.Key, err)
	}
	return nil
}

func contentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".parquet":
		return "application/vnd.apache.parquet"
	case ".csv":
		return "text/csv"
	}
	return "application/octet-stream"
}

// Resolver hands out local paths for dataset URIs, creating the S3 store
// on first use.
type Resolver struct {
	Region string

	store *Store
}

func (r *Resolver) s3Store(ctx context.Context) (*Store, error) {
	if r.store != nil {
		return r.store, nil
	}
	st, err := NewStore(ctx, r.Region)
	if err != nil {
		return nil, err
	}
	r.store = st
	return st, nil
}

// Fetch returns a local path for uri and a cleanup func (a no-op for
// local files).
func (r *Resolver) Fetch(ctx context.Context, uri string) (string, func(), error) {
	if !IsRemote(uri) {
		if _, err := os.Stat(uri); err != nil {
			return "", nil, fmt.Errorf("input %s: %w", uri, err)
		}
		return uri, func() {}, nil
	}
	loc, err := ParseS3(uri)
	if err != nil {
		return "", nil, err
	}
	st, err := r.s3Store(ctx)
	if err != nil {
		return "", nil, err
	}
	return st.Fetch(ctx, loc)
}

// Publish copies a locally written output to uri when it is remote.
// Local destinations are left alone.
func (r *Resolver) Publish(ctx context.Context, localPath, uri string) error {
	if !IsRemote(uri) {
		return nil
	}
	loc, err := ParseS3(uri)
	if err != nil {
		return err
	}
	st, err := r.s3Store(ctx)
	if err != nil {
		return err
	}
	return st.Upload(ctx, localPath, loc)
}

// LocalTarget returns where an output for uri should be written locally:
// uri itself, or a temp path with the same extension when uri is remote.
func LocalTarget(uri string) (string, func(), error) {
	if !IsRemote(uri) {
		return uri, func() {}, nil
	}
	loc, err := ParseS3(uri)
	if err != nil {
		return "", nil, err
	}
	dir, err := os.MkdirTemp("", "revshare-out-*")
	if err != nil {
		return "", nil, err
	}
	return dir + "/" + path.Base(loc.Key), func() { os.RemoveAll(dir) }, nil
}
