package checks

import (
	"context"
	"errors"
	"testing"

	"column-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestRequiredFolders(t *testing.T) {
	assert.Equal(t, []string{"imports", "history"}, RequiredFolders("history"))
	assert.Equal(t, []string{"imports", "runs/columns"}, RequiredFolders("/runs/columns/"))
	assert.Equal(t, []string{"imports"}, RequiredFolders(""))
	assert.Equal(t, []string{"imports"}, RequiredFolders("imports"))
}

func TestCheckStructure(t *testing.T) {
	folders := RequiredFolders("history")

	t.Run("Bucket Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "structure").Return(false, nil)

		report, err := CheckStructure(context.Background(), client, "structure", folders)
		require.NoError(t, err)
		assert.False(t, report.BucketExists)
		assert.Equal(t, folders, report.Missing)
		client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bucket Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "structure").Return(false, errors.New("dial tcp: refused"))

		_, err := CheckStructure(context.Background(), client, "structure", folders)
		assert.ErrorContains(t, err, "failed to check bucket existence")
	})

	t.Run("All Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "structure").Return(true, nil)
		client.On("ListObjects", mock.Anything, "structure", mock.Anything).Return(emptyListing())

		report, err := CheckStructure(context.Background(), client, "structure", folders)
		require.NoError(t, err)
		assert.Equal(t, folders, report.Missing)
	})

	t.Run("All Present", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "structure").Return(true, nil)
		client.On("ListObjects", mock.Anything, "structure", mock.Anything).Return(
			func(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
				ch := make(chan minio.ObjectInfo, 1)
				ch <- minio.ObjectInfo{Key: opts.Prefix}
				close(ch)
				return ch
			})

		report, err := CheckStructure(context.Background(), client, "structure", folders)
		require.NoError(t, err)
		assert.Empty(t, report.Missing)
	})

	t.Run("Listing Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "structure").Return(true, nil)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("access denied")}
		close(ch)
		client.On("ListObjects", mock.Anything, "structure", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		_, err := CheckStructure(context.Background(), client, "structure", folders)
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestFixStructure(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Folders", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", mock.Anything, "structure", "history/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		err := FixStructure(context.Background(), client, "structure", logger,
			&StructureReport{BucketExists: true, Missing: []string{"history"}})
		assert.NoError(t, err)
		client.AssertNumberOfCalls(t, "PutObject", 1)
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bucket And Folders", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("MakeBucket", mock.Anything, "structure", mock.Anything).Return(nil)
		client.On("PutObject", mock.Anything, "structure", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		err := FixStructure(context.Background(), client, "structure", logger,
			&StructureReport{Missing: []string{"imports", "history"}})
		assert.NoError(t, err)
		client.AssertNumberOfCalls(t, "PutObject", 2)
	})

	t.Run("Bucket Failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("MakeBucket", mock.Anything, "structure", mock.Anything).Return(errors.New("quota"))

		err := FixStructure(context.Background(), client, "structure", logger,
			&StructureReport{Missing: []string{"imports"}})
		assert.EqualError(t, err, "failed to create bucket structure: quota")
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
