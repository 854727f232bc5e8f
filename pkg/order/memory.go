package order

import "sync"

// Memory is a RecordStore held in memory. Err, when set, is returned
// from every call.
type Memory struct {
	mu     sync.Mutex
	record *Record

	Err error
}

var _ RecordStore = (*Memory)(nil)

func (m *Memory) Load() (Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return Record{}, false, m.Err
	}
	if m.record == nil {
		return Record{}, false, nil
	}
	r := *m.record
	r.IDs = append(r.IDs[:0:0], r.IDs...)
	return r, true, nil
}

func (m *Memory) Save(r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	r.IDs = append(r.IDs[:0:0], r.IDs...)
	m.record = &r
	return nil
}

func (m *Memory) Erase() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.record = nil
	return nil
}
