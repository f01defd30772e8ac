package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/veve-booking/internal/config"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	fake := &fakePutter{}
	s := &S3Store{client: fake, bucket: "imgs", publicURL: "https://cdn.example.com"}

	url, err := s.Put(context.Background(), "services/a.webp", "image/webp", []byte("data"))
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://cdn.example.com/services/a.webp" {
		t.Errorf("url = %s", url)
	}
	if aws.ToString(fake.in.Bucket) != "imgs" || aws.ToString(fake.in.ContentType) != "image/webp" || string(fake.body) != "data" {
		t.Errorf("put input = %+v", fake.in)
	}

	fake.err = errors.New("denied")
	if _, err := s.Put(context.Background(), "k", "image/webp", nil); err == nil {
		t.Error("expected error")
	}
}

func TestPublicBase(t *testing.T) {
	cases := []struct {
		cfg  config.S3Config
		want string
	}{
		{config.S3Config{Bucket: "b", Region: "sa-east-1"}, "https://b.s3.sa-east-1.amazonaws.com"},
		{config.S3Config{Bucket: "b", Endpoint: "http://minio:9000/"}, "http://minio:9000/b"},
		{config.S3Config{Bucket: "b", PublicURL: "https://cdn.example.com/"}, "https://cdn.example.com"},
	}
	for _, tc := range cases {
		if got := publicBase(tc.cfg); got != tc.want {
			t.Errorf("publicBase(%+v) = %s, want %s", tc.cfg, got, tc.want)
		}
	}
}
