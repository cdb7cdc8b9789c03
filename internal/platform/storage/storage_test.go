package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
}

func TestObjectName(t *testing.T) {
	name := objectName(fixedNow(), "../../etc/members.csv")
	require.True(t, strings.HasPrefix(name, "2024/06/"))
	require.True(t, strings.HasSuffix(name, "-members.csv"))
	require.NotContains(t, name, "..")
}

func TestLocalStore_SaveAndOpen(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	store.now = fixedNow
	ctx := context.Background()

	location, err := store.Save(ctx, "members.csv", strings.NewReader("vergunning\n1\n"))
	require.NoError(t, err)

	f, err := store.Open(ctx, location)
	require.NoError(t, err)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Equal(t, "vergunning\n1\n", string(content))

	_, err = store.Open(ctx, "../outside.csv")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.Open(ctx, "2024/06/unknown.csv")
	require.ErrorIs(t, err, ErrNotFound)
}

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func TestS3Store_SaveAndOpen(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{}}
	store := NewS3StoreWithClient(client, S3Config{Bucket: "kwai", Prefix: "uploads/"})
	store.now = fixedNow
	ctx := context.Background()

	key, err := store.Save(ctx, "members.csv", strings.NewReader("content"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(key, "uploads/2024/06/"))
	require.Contains(t, client.objects, "kwai/"+key)

	body, err := store.Open(ctx, key)
	require.NoError(t, err)
	content, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "content", string(content))

	_, err = store.Open(ctx, "uploads/missing.csv")
	require.ErrorIs(t, err, ErrNotFound)
}
