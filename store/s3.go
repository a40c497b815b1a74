package store

import (
	"io"
	"os"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

type uploader interface {
	Upload(input *s3manager.UploadInput, options ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// S3Sink stages each artifact in a temp file and uploads it under Prefix.
type S3Sink struct {
	Bucket   string
	Prefix   string
	uploader uploader
}

// NewS3Sink uses the default credential chain. endpoint may be empty; set it
// to talk to a local S3 compatible server.
func NewS3Sink(bucket, prefix, region, endpoint string) (*S3Sink, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not create aws session")
	}
	return &S3Sink{Bucket: bucket, Prefix: prefix, uploader: s3manager.NewUploader(sess)}, nil
}

func (s *S3Sink) key(name string) string {
	return path.Join(s.Prefix, name)
}

func (s *S3Sink) Location(name string) string {
	return "s3://" + s.Bucket + "/" + s.key(name)
}

func (s *S3Sink) Save(name string, write func(w io.WriteSeeker) error) error {
	f, err := os.CreateTemp("", "ballstyle-*")
	if err != nil {
		return errors.Wrap(err, "could not create temp file")
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if err := write(f); err != nil {
		return errors.Wrap(err, "could not write "+name)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "could not rewind "+name)
	}

	_, err = s.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.key(name)),
		Body:   f,
	})
	if err != nil {
		return errors.Wrap(err, "could not upload "+name)
	}
	return nil
}
