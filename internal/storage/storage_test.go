package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	putKey      string
	putType     string
	deletedKeys []string
}

func (f *fakeS3) PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putKey = *input.Key
	f.putType = *input.ContentType
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, input *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletedKeys = append(f.deletedKeys, *input.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestUploadKeepsExtension(t *testing.T) {
	fake := &fakeS3{}
	st := &Store{cfg: Config{Bucket: "b", PublicBaseURL: "https://cdn.example.com"}, client: fake}

	key, url, err := st.Upload(context.Background(), "Birthday Photo.JPG", "image/jpeg", strings.NewReader("data"), 4)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key = %q, want .jpg suffix", key)
	}
	if fake.putKey != key {
		t.Errorf("put key = %q, want %q", fake.putKey, key)
	}
	if fake.putType != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", fake.putType)
	}
	if url != "https://cdn.example.com/"+key {
		t.Errorf("url = %q, want public base + key", url)
	}
}

func TestUploadUnconfigured(t *testing.T) {
	st := New(Config{})
	if st.Configured() {
		t.Fatal("expected unconfigured store")
	}
	if _, _, err := st.Upload(context.Background(), "a.png", "image/png", strings.NewReader(""), 0); err == nil {
		t.Error("expected error for unconfigured upload")
	}
}

func TestDelete(t *testing.T) {
	fake := &fakeS3{}
	st := &Store{cfg: Config{Bucket: "b"}, client: fake}

	if err := st.Delete(context.Background(), "abc.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(fake.deletedKeys) != 1 || fake.deletedKeys[0] != "abc.png" {
		t.Errorf("deleted = %v, want [abc.png]", fake.deletedKeys)
	}
}

func TestObjectURLEndpointFallback(t *testing.T) {
	st := New(Config{Endpoint: "https://minio.local/", Bucket: "photos", AccessKey: "k", SecretKey: "s"})
	if got := st.ObjectURL("x.png"); got != "https://minio.local/photos/x.png" {
		t.Errorf("url = %q", got)
	}
}

func TestKeyFromURL(t *testing.T) {
	if got := KeyFromURL("https://cdn.example.com/abc-123.jpg"); got != "abc-123.jpg" {
		t.Errorf("key = %q, want abc-123.jpg", got)
	}
}
