package services

import "sync"

// deviceLocks сериализует проверку пересечений и запись по каждому устройству.
// Пул устройств ограничен двадцатью номерами, карта замков не растёт.
type deviceLocks struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func newDeviceLocks() *deviceLocks {
	return &deviceLocks{locks: make(map[int]*sync.Mutex)}
}

// lock захватывает замок устройства и возвращает функцию освобождения.
func (d *deviceLocks) lock(deviceID int) func() {
	d.mu.Lock()
	m, ok := d.locks[deviceID]
	if !ok {
		m = &sync.Mutex{}
		d.locks[deviceID] = m
	}
	d.mu.Unlock()

	m.Lock()
	return m.Unlock
}
