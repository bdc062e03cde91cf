package integration

import "github.com/puzpuzpuz/xsync"

type memoryStorage struct {
	values *xsync.MapOf[string, string]
}

func NewMemoryStorage() *memoryStorage {
	return &memoryStorage{values: xsync.NewMapOf[string]()}
}

func (s *memoryStorage) Get(key string) (string, bool) {
	return s.values.Load(key)
}

func (s *memoryStorage) Set(key, value string) error {
	s.values.Store(key, value)
	return nil
}

func (s *memoryStorage) Remove(key string) error {
	s.values.Delete(key)
	return nil
}
