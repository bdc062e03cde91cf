package storage

import "context"

type Storage interface {
	// DownloadURL returns a short lived URL from which the object can be
	// downloaded without credentials.
	DownloadURL(ctx context.Context, object *DownloadObject) (string, error)
}

type DownloadObject struct {
	Key string

	// FileName, when set, is the name proposed to the browser.
	FileName string
}
