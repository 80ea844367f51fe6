package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"nwbridge/core/storage"
	"nwbridge/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureBucket(t *testing.T) {
	t.Run("AlreadyExists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "archives").Return(true, nil)

		uploader := storage.NewUploader(client, "archives")
		require.NoError(t, uploader.EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "archives").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "archives", mock.Anything).Return(nil)

		uploader := storage.NewUploader(client, "archives")
		require.NoError(t, uploader.EnsureBucket(context.Background()))
		client.AssertExpectations(t)
	})
}

func TestUploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub-m1_ses-day1.nwb")
	require.NoError(t, os.WriteFile(path, []byte(`{"metadata":{}}`), 0o644))

	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "archives", "sub-m1_ses-day1.nwb",
		mock.Anything, int64(15), mock.Anything).
		Return(minio.UploadInfo{Size: 15}, nil)

	uploader := storage.NewUploader(client, "archives")
	require.NoError(t, uploader.UploadFile(context.Background(), path))
	client.AssertExpectations(t)
}

func TestUploadFileMissing(t *testing.T) {
	uploader := storage.NewUploader(new(mocks.Client), "archives")
	err := uploader.UploadFile(context.Background(), "/nonexistent/file.nwb")
	assert.Error(t, err)
}

func TestListArchives(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 2)
	ch <- minio.ObjectInfo{Key: "a.nwb"}
	ch <- minio.ObjectInfo{Key: "b.nwb"}
	close(ch)

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "archives", mock.Anything).
		Return((<-chan minio.ObjectInfo)(ch))

	uploader := storage.NewUploader(client, "archives")
	names, err := uploader.ListArchives(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.nwb", "b.nwb"}, names)
}
