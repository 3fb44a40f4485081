package blob

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgcs/experience-api/internal/config"
)

// fakeS3 accepts path-style PUT requests and keeps the uploaded objects.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	if req.Method != http.MethodPut || len(parts) != 2 {
		return &http.Response{StatusCode: 501, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
	}

	body, _ := io.ReadAll(req.Body)
	f.objects[parts[1]] = body
	f.types[parts[1]] = req.Header.Get("Content-Type")
	return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{"ETag": {"\"etag\""}}}, nil
}

func newTestArchive(t *testing.T) (*Archive, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.HTTPClient = &http.Client{Transport: fake}
		o.UsePathStyle = true
	})
	return newArchive(client, "snapshots-bucket"), fake
}

func TestArchive_PutSnapshot(t *testing.T) {
	archive, fake := newTestArchive(t)

	err := archive.PutSnapshot(context.Background(), "snapshots/page.html", []byte("<html></html>"), "text/html")
	require.NoError(t, err)

	body, ok := fake.objects["snapshots/page.html"]
	require.True(t, ok)
	assert.Contains(t, string(body), "<html></html>")
	assert.Equal(t, "text/html", fake.types["snapshots/page.html"])
}

func TestArchive_Disabled(t *testing.T) {
	archive, err := New(context.Background(), &config.Config{})
	require.NoError(t, err)
	assert.Nil(t, archive)

	assert.ErrorIs(t, archive.PutSnapshot(context.Background(), "k", nil, ""), ErrDisabled)
}

func TestSnapshotKey(t *testing.T) {
	key := SnapshotKey(time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC))
	assert.True(t, strings.HasPrefix(key, "snapshots/2024/01/02/"))
	assert.True(t, strings.HasSuffix(key, ".html"))
}
