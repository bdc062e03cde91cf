package testutil

import (
	"context"

	"github.com/bouwconnect/backend/pkg/errorx"
	"github.com/bouwconnect/backend/pkg/storage"
)

type MockStorage struct {
	DownloadURLFunc func(context.Context, *storage.DownloadObject) (string, error)
}

func (m *MockStorage) DownloadURL(ctx context.Context, obj *storage.DownloadObject) (string, error) {
	if m.DownloadURLFunc != nil {
		return m.DownloadURLFunc(ctx, obj)
	}

	return "", errorx.New(errorx.NotImplemented, "Not implemented")
}
