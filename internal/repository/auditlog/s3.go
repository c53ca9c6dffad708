package auditlog

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	// LogPrefix is the key namespace for regular audit records.
	LogPrefix = "logs/"
	// ErrorPrefix is the key namespace for envelope-failure records.
	ErrorPrefix = "errors/"

	// contentType of every stored object.
	contentType = "application/json"
)

// Repository defines persistence for audit entries. Each call writes one
// uniquely-keyed object; there are no reads, updates, or deletes.
type Repository interface {
	Store(ctx context.Context, entry any, prefix string) (string, error)
}

// ObjectPutter is the subset of the S3 client the repository needs.
// *s3.Client satisfies it.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Repository writes audit entries to S3 as pretty-printed JSON under
// date-partitioned keys: <prefix><YYYY-MM-DD>/<32-hex-id>.json. The random
// identifier makes keys unique without coordination, so concurrent
// invocations never contend.
type S3Repository struct {
	// client performs the S3 PutObject calls.
	client ObjectPutter
	// bucket is the destination bucket name.
	bucket string
	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewS3Repository creates a repository writing to the provided bucket.
func NewS3Repository(client ObjectPutter, bucket string) *S3Repository {
	return &S3Repository{
		client: client,
		bucket: bucket,
		now:    time.Now,
	}
}

// Store serializes the entry and writes it under a fresh key. The date
// segment is the UTC calendar date at write time. Returns the object key.
func (r *S3Repository) Store(ctx context.Context, entry any, prefix string) (string, error) {
	if prefix == "" {
		prefix = LogPrefix
	}

	body, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode audit entry: %w", err)
	}

	key := r.objectKey(prefix)

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put audit entry: %w", err)
	}

	return key, nil
}

// objectKey builds <prefix><YYYY-MM-DD>/<32-hex-id>.json.
func (r *S3Repository) objectKey(prefix string) string {
	var (
		date = r.now().UTC().Format(time.DateOnly)
		id   = uuid.New()
	)

	return prefix + date + "/" + hex.EncodeToString(id[:]) + ".json"
}
