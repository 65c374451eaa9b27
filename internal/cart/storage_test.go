package cart

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMemoryStorageExpiresIdleSlots(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	storage := NewMemoryStorageWithTTL(time.Hour)
	storage.now = func() time.Time { return now }

	_ = storage.Set("stale", "[]")
	now = now.Add(30 * time.Minute)
	_ = storage.Set("fresh", "[]")
	if _, ok, _ := storage.Get("stale"); !ok {
		t.Fatalf("slot should still be live before ttl")
	}

	now = now.Add(45 * time.Minute)
	if _, ok, _ := storage.Get("stale"); ok {
		t.Fatalf("slot past ttl should read as missing")
	}
	if _, ok, _ := storage.Get("fresh"); !ok {
		t.Fatalf("slot written within ttl should survive")
	}

	// 写入触发清理，未被读取的过期槽位同样回收
	for i := 0; i < 50; i++ {
		_ = storage.Set(fmt.Sprintf("tab-%d", i), "[]")
	}
	now = now.Add(2 * time.Hour)
	_ = storage.Set("new", "[]")
	if got := storage.Len(); got != 1 {
		t.Fatalf("expired slots should be swept on write, %d left", got)
	}
}

func TestMemoryStorageWithoutTTLKeepsSlots(t *testing.T) {
	storage := NewMemoryStorage()
	base := time.Now()
	storage.now = func() time.Time { return base.Add(365 * 24 * time.Hour) }
	_ = storage.Set("k", "v")
	if value, ok, _ := storage.Get("k"); !ok || value != "v" {
		t.Fatalf("storage without ttl should keep slots, got %q ok=%v", value, ok)
	}
}

func TestFileStorageConcurrentWritesLeaveValidSlot(t *testing.T) {
	dir := t.TempDir()
	storage := NewFileStorage(dir)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := fmt.Sprintf(`[{"product_id":%d,"title":"Part","price":"10","quantity":1}]`, i+1)
			if err := storage.Set(StorageKey, payload); err != nil {
				t.Errorf("set failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	raw, ok, err := storage.Get(StorageKey)
	if err != nil || !ok {
		t.Fatalf("slot should exist, ok=%v err=%v", ok, err)
	}
	if items, err := Decode(raw); err != nil || len(items) != 1 {
		t.Fatalf("slot should hold one complete write, items=%+v err=%v", items, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir failed: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestSessionLocksSerializeAndRelease(t *testing.T) {
	locks := NewSessionLocks()
	storage := NewMemoryStorage()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("tab")
			defer unlock()
			New(NewScopedStorage(storage, "tab")).AddItem(snapshot(1, "Brake Pad", 1000))
		}()
	}
	wg.Wait()

	if got := New(NewScopedStorage(storage, "tab")).TotalItems(); got != 100 {
		t.Fatalf("locked read-modify-write should keep every add, got %d", got)
	}
	if locks.Len() != 0 {
		t.Fatalf("idle session locks should be dropped, %d left", locks.Len())
	}
}
