package services

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// MemoryStore is an in-process Store, used when no redis is configured.
type MemoryStore struct {
	sync.Mutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

func (self *MemoryStore) Get(key string) (string, error) {
	self.Lock()
	defer self.Unlock()
	if value, ok := self.data[key]; ok {
		return value, nil
	}
	return "", errors.Errorf("Key missing: %s", key)
}

func (self *MemoryStore) Set(key string, value string) error {
	self.Lock()
	defer self.Unlock()
	self.data[key] = value
	return nil
}

func (self *MemoryStore) SetWithTTL(key string, value string, ttl uint64) error {
	return self.Set(key, value)
}

func (self *MemoryStore) GetRecursive(prefix string) ([]Node, error) {
	self.Lock()
	defer self.Unlock()
	var ret []Node
	for key, value := range self.data {
		if strings.HasPrefix(key, prefix) {
			ret = append(ret, Node{Key: key, Value: value})
		}
	}
	return ret, nil
}
