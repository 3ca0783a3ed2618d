package cache

import (
	"encoding/binary"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/hmap/store/hybrid"
)

// HybridBackend spills distances to disk through hmap's hybrid store.
// It is used when the word list is too large for an in-memory memo table.
type HybridBackend struct {
	storage *hybrid.HybridMap
	size    int
}

func NewHybridBackend() (*HybridBackend, error) {
	db, err := hybrid.New(hybrid.DefaultDiskOptions)
	if err != nil {
		return nil, err
	}
	return &HybridBackend{storage: db}, nil
}

func (h *HybridBackend) Get(key string) (int, bool) {
	bin, ok := h.storage.Get(key)
	if !ok {
		return 0, false
	}
	v, n := binary.Uvarint(bin)
	if n <= 0 {
		return 0, false
	}
	return int(v), true
}

// Set stores value for key. Len counts distinct keys, a key stored again
// by a concurrent miss is not counted twice.
func (h *HybridBackend) Set(key string, value int) {
	_, exists := h.storage.Get(key)
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(buf, uint64(value))
	if err := h.storage.Set(key, buf[:n]); err != nil {
		gologger.Error().Msgf("cache: hybrid: got %v while writing %v", err, key)
		return
	}
	if !exists {
		h.size++
	}
}

func (h *HybridBackend) Len() int {
	return h.size
}

func (h *HybridBackend) Cleanup() {
	_ = h.storage.Close()
}
