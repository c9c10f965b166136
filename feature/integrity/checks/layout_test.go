package checks

import (
	"context"
	"testing"

	"arcade-catalog/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestCheckLayout(t *testing.T) {
	prefixes := []string{"dats/", "catalogs"}

	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "arcade").Return(false, nil)

		_, err := CheckLayout(context.Background(), mockClient, "arcade", prefixes)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "arcade").Return(true, nil)
		ch := make(chan minio.ObjectInfo)
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "arcade", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		missing, err := CheckLayout(context.Background(), mockClient, "arcade", prefixes)
		assert.NoError(t, err)
		assert.Equal(t, prefixes, missing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "arcade").Return(true, nil)

		for _, want := range []string{"dats/", "catalogs/"} {
			ch := make(chan minio.ObjectInfo, 1)
			ch <- minio.ObjectInfo{Key: want}
			close(ch)
			mockClient.On("ListObjects", mock.Anything, "arcade", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
				return opts.Prefix == want
			})).Return((<-chan minio.ObjectInfo)(ch))
		}

		missing, err := CheckLayout(context.Background(), mockClient, "arcade", prefixes)
		assert.NoError(t, err)
		assert.Len(t, missing, 0)
	})
}

func TestFixLayout(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "arcade", "dats/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	err := FixLayout(context.Background(), mockClient, "arcade", zap.NewNop(), []string{"dats"})
	assert.NoError(t, err)
	mockClient.AssertNumberOfCalls(t, "PutObject", 1)
}
