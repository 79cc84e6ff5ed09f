package tours

import (
	"hash/fnv"
	"sync"
)

// tourLocks serializa las mutaciones de un mismo tour (read-modify-write sobre el repo).
type tourLocks struct {
	stripes [64]sync.Mutex
}

func (l *tourLocks) lock(tourID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tourID))
	m := &l.stripes[h.Sum32()%uint32(len(l.stripes))]
	m.Lock()
	return m.Unlock
}
