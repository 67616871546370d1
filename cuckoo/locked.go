package cuckoo

import "sync"

// Locked serializes access to a Filter with a read/write mutex.
// Lookups and encoding share the read lock; everything that mutates takes
// the write lock.
type Locked struct {
	f    *Filter
	lock sync.RWMutex
}

// NewLocked wraps f. The caller must not use f directly afterwards.
func NewLocked(f *Filter) *Locked {
	return &Locked{f: f}
}

func (l *Locked) Add(key []byte) (Status, uint64) {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.f.Add(key)
}

func (l *Locked) Put(key []byte) (Status, uint64) {
	return l.Add(key)
}

func (l *Locked) AddKey(key any) (Status, uint64, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.f.AddKey(key)
}

func (l *Locked) Query(key []byte) bool {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.f.Query(key)
}

func (l *Locked) QueryKey(key any) (bool, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.f.QueryKey(key)
}

func (l *Locked) Delete(key []byte) bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.f.Delete(key)
}

func (l *Locked) DeleteKey(key any) (bool, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.f.DeleteKey(key)
}

func (l *Locked) Clear() {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.f.Clear()
}

func (l *Locked) Count() uint64 {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.f.Count()
}

// Bytes, Items and NumBuckets are fixed at construction and need no lock.
func (l *Locked) Bytes() uint64 {
	return l.f.Bytes()
}

func (l *Locked) Items() uint64 {
	return l.f.Items()
}

func (l *Locked) NumBuckets() uint64 {
	return l.f.NumBuckets()
}

func (l *Locked) LoadFactor() float64 {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.f.LoadFactor()
}

func (l *Locked) ExData() uint64 {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.f.ExData()
}

func (l *Locked) SetExData(v uint64) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.f.SetExData(v)
}

func (l *Locked) Total() uint64 {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.f.Total()
}

func (l *Locked) AddTotal(delta uint64) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.f.AddTotal(delta)
}

func (l *Locked) Encode(compress bool) ([]byte, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.f.Encode(compress)
}
