package checks

import (
	"context"
	"errors"
	"testing"

	"kawa-inventory/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckArchive(t *testing.T) {
	ctx := context.Background()

	t.Run("Counts Snapshots", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "snaps").Return(true, nil)
		ch := make(chan minio.ObjectInfo, 2)
		ch <- minio.ObjectInfo{Key: "snapshots/1/1.json"}
		ch <- minio.ObjectInfo{Key: "snapshots/2/1.json"}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "snaps", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
			return o.Prefix == "snapshots/" && o.Recursive
		})).Return((<-chan minio.ObjectInfo)(ch))

		report, err := CheckArchive(ctx, mockClient, "snaps", "snapshots")
		require.NoError(t, err)
		assert.True(t, report.Exists)
		assert.Equal(t, 2, report.Snapshots)
	})

	t.Run("Missing Bucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "snaps").Return(false, nil)

		report, err := CheckArchive(ctx, mockClient, "snaps", "snapshots")
		require.NoError(t, err)
		assert.False(t, report.Exists)
		mockClient.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bucket Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "snaps").Return(false, errors.New("dial tcp"))

		_, err := CheckArchive(ctx, mockClient, "snaps", "")
		assert.ErrorContains(t, err, "dial tcp")
	})

	t.Run("List Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "snaps").Return(true, nil)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("access denied")}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "snaps", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		_, err := CheckArchive(ctx, mockClient, "snaps", "")
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestFixArchive(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "snaps").Return(false, nil)
	mockClient.On("MakeBucket", mock.Anything, "snaps", minio.MakeBucketOptions{Region: "eu-west-1"}).Return(nil)

	require.NoError(t, FixArchive(context.Background(), mockClient, "snaps", "eu-west-1"))
	mockClient.AssertExpectations(t)
}
