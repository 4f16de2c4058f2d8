package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"notekeeper/internal/common"
)

// Seams for tests.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
)

// downloadRefExpiry bounds presigned GET URLs; SigV4 allows 7 days at most.
const downloadRefExpiry = 7 * 24 * time.Hour

// S3Config carries connection settings for the remote bucket.
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// S3Store implements DocumentStore and BlobStore over a single bucket.
// Note documents are JSON objects under notes/<noteId>.json; because note ids
// are <userId>_<timestamp>, an owner query is a prefix listing. Media blobs
// live under notes_images/ and notes_videos/. All writes are idempotent
// overwrites of the same key, so a late completion of an abandoned call is
// harmless.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3Store builds the S3-backed gateway from cfg.
func NewS3Store(ctx context.Context, c S3Config) (*S3Store, error) {
	// S3-compatible endpoints often reject the SDK's default checksum
	// trailers, so checksums are only sent where the operation requires them.
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AccessKey,
			c.SecretKey,
			"",
		)),
		config.WithRequestChecksumCalculation(aws.RequestChecksumCalculationWhenRequired),
		config.WithResponseChecksumValidation(aws.ResponseChecksumValidationWhenRequired),
	)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:  client,
		presign: newS3PresignClient(client),
		bucket:  c.Bucket,
	}, nil
}

func noteDocumentKey(noteID string) string {
	return "notes/" + noteID + ".json"
}

// PutNoteDocument serializes the document and overwrites its object.
func (s *S3Store) PutNoteDocument(ctx context.Context, doc NoteDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrRemoteWrite, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(noteDocumentKey(doc.NoteID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrRemoteWrite, err)
	}
	return nil
}

// QueryNotesByOwner lists the owner's document keys and fetches each one.
// Keys embed the owner (note ids are <userId>_<timestamp>), so the listing
// uses the prefix notes/<userId>_; the userId field of every fetched document
// is still checked for an exact match.
func (s *S3Store) QueryNotesByOwner(ctx context.Context, userID string) ([]NoteDocument, error) {
	prefix := "notes/" + userID + "_"

	var keys []string
	var continuation *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuation,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrRemoteRead, err)
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		continuation = out.NextContinuationToken
	}

	docs := make([]NoteDocument, 0, len(keys))
	for _, key := range keys {
		doc, err := s.getDocument(ctx, key)
		if err != nil {
			return nil, err
		}
		if doc.UserID != userID {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *S3Store) getDocument(ctx context.Context, key string) (NoteDocument, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return NoteDocument{}, fmt.Errorf("%w: %w", common.ErrRemoteRead, err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return NoteDocument{}, fmt.Errorf("%w: %w", common.ErrRemoteRead, err)
	}

	var doc NoteDocument
	if err := json.Unmarshal(b, &doc); err != nil {
		return NoteDocument{}, fmt.Errorf("%w: %w", common.ErrRemoteRead, err)
	}
	return doc, nil
}

// DeleteNoteDocument removes the note's document object.
func (s *S3Store) DeleteNoteDocument(ctx context.Context, noteID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(noteDocumentKey(noteID)),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrRemoteDelete, err)
	}
	return nil
}

func contentTypeForKey(key string) string {
	switch {
	case strings.HasSuffix(key, ".jpg"):
		return "image/jpeg"
	case strings.HasSuffix(key, ".mp4"):
		return "video/mp4"
	default:
		return "application/octet-stream"
	}
}

// UploadBlob reads the local file, overwrites the object at key, and presigns
// a GET URL serving as the note's media download reference.
func (s *S3Store) UploadBlob(ctx context.Context, localPath string, key string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrBlobUpload, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeForKey(key)),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrBlobUpload, err)
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(downloadRefExpiry))
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrBlobUpload, err)
	}

	return req.URL, nil
}
