package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 records calls to the handful of S3 operations the storage uses.
type fakeS3 struct {
	s3iface.S3API

	objects   map[string][]byte
	putErr    error
	headErr   error
	createErr error
	buckets   map[string]bool
	lastType  string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, buckets: map[string]bool{}}
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, _ := io.ReadAll(in.Body)
	f.objects[aws.StringValue(in.Bucket)+"/"+aws.StringValue(in.Key)] = data
	f.lastType = aws.StringValue(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.StringValue(in.Bucket)+"/"+aws.StringValue(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadObjectWithContext(_ aws.Context, in *s3.HeadObjectInput, _ ...request.Option) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	if _, ok := f.objects[aws.StringValue(in.Bucket)+"/"+aws.StringValue(in.Key)]; !ok {
		return nil, awserr.NewRequestFailure(awserr.New("NotFound", "Not Found", nil), http.StatusNotFound, "req-1")
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) HeadBucketWithContext(_ aws.Context, in *s3.HeadBucketInput, _ ...request.Option) (*s3.HeadBucketOutput, error) {
	if !f.buckets[aws.StringValue(in.Bucket)] {
		return nil, awserr.NewRequestFailure(awserr.New("NotFound", "Not Found", nil), http.StatusNotFound, "req-2")
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucketWithContext(_ aws.Context, in *s3.CreateBucketInput, _ ...request.Option) (*s3.CreateBucketOutput, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.buckets[aws.StringValue(in.Bucket)] = true
	return &s3.CreateBucketOutput{}, nil
}

func TestS3Storage_UploadExistsRemove(t *testing.T) {
	fake := newFakeS3()
	store := NewS3StorageWithClient(fake, Config{Endpoint: "http://localhost:9000"})
	ctx := context.Background()

	url, err := store.Upload(ctx, "statements", "u1/s1.csv", []byte("id\n"), "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/statements/u1/s1.csv", url)
	assert.Equal(t, []byte("id\n"), fake.objects["statements/u1/s1.csv"])
	assert.Equal(t, "text/csv", fake.lastType)

	exists, err := store.Exists(ctx, "statements", "u1/s1.csv")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Remove(ctx, "statements", "u1/s1.csv"))

	exists, err = store.Exists(ctx, "statements", "u1/s1.csv")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestS3Storage_UploadError(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("access denied")
	store := NewS3StorageWithClient(fake, Config{})

	url, err := store.Upload(context.Background(), "statements", "k", []byte("x"), "text/csv")
	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestS3Storage_ExistsError(t *testing.T) {
	fake := newFakeS3()
	fake.headErr = errors.New("timeout")
	store := NewS3StorageWithClient(fake, Config{})

	exists, err := store.Exists(context.Background(), "statements", "k")
	assert.Error(t, err)
	assert.False(t, exists)
}

func TestS3Storage_EnsureBucket(t *testing.T) {
	fake := newFakeS3()
	store := NewS3StorageWithClient(fake, Config{})

	require.NoError(t, store.EnsureBucket(context.Background(), "statements"))
	assert.True(t, fake.buckets["statements"])

	fake.createErr = awserr.New(s3.ErrCodeBucketAlreadyOwnedByYou, "owned", nil)
	assert.NoError(t, store.EnsureBucket(context.Background(), "other"))

	fake.createErr = errors.New("forbidden")
	assert.Error(t, store.EnsureBucket(context.Background(), "third"))
}

func TestS3Storage_PublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"minio plain", Config{Endpoint: "http://minio:9000"}, "http://minio:9000/b/k.csv"},
		{"minio tls", Config{Endpoint: "https://files.example.com", UseSSL: true}, "https://files.example.com/b/k.csv"},
		{"aws default region", Config{}, "https://b.s3.us-east-1.amazonaws.com/k.csv"},
		{"aws region", Config{Region: "eu-west-1"}, "https://b.s3.eu-west-1.amazonaws.com/k.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewS3StorageWithClient(newFakeS3(), tt.cfg)
			assert.Equal(t, tt.want, store.PublicURL("b", "k.csv"))
		})
	}
}
