package storefakes

import (
	"sync"

	"github.com/addisride/admin-console/credstore"
	"github.com/addisride/admin-console/session"
)

var _ credstore.Store = (*FakeStore)(nil)

// FakeStore is an in-memory credstore.Store for tests.
type FakeStore struct {
	lock       sync.Mutex
	stored     *session.Session
	SaveCount  int
	ClearCount int
	SaveErr    error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (fs *FakeStore) Save(s *session.Session) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.SaveCount++
	if fs.SaveErr != nil {
		return fs.SaveErr
	}
	fs.stored = s.Clone()
	return nil
}

func (fs *FakeStore) Load() (*session.Session, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	return fs.stored.Clone(), nil
}

func (fs *FakeStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.ClearCount++
	fs.stored = nil
	return nil
}
