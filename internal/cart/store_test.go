package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func snapshot(id uint, title string, price int64) ProductSnapshot {
	return ProductSnapshot{ProductID: id, Title: title, Price: decimal.NewFromInt(price)}
}

func TestAddItemSameProductIncrementsQuantity(t *testing.T) {
	store := New(NewMemoryStorage())
	for i := 0; i < 4; i++ {
		store.AddItem(snapshot(7, "Brake Pad", 1000))
	}
	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("items want 1 got %d", len(items))
	}
	if items[0].Quantity != 4 {
		t.Fatalf("quantity want 4 got %d", items[0].Quantity)
	}
}

func TestAddItemKeepsInsertionOrder(t *testing.T) {
	store := New(NewMemoryStorage())
	store.AddItem(snapshot(1, "A", 10))
	store.AddItem(snapshot(2, "B", 20))
	store.AddItem(snapshot(1, "A", 10))
	store.AddItem(snapshot(3, "C", 30))

	items := store.Items()
	wantOrder := []uint{1, 2, 3}
	for i, id := range wantOrder {
		if items[i].ProductID != id {
			t.Fatalf("position %d want product %d got %d", i, id, items[i].ProductID)
		}
	}
	if store.TotalItems() != 4 {
		t.Fatalf("total items want 4 got %d", store.TotalItems())
	}
}

func TestUpdateQuantityFloorRemoves(t *testing.T) {
	for _, q := range []int{0, -5} {
		store := New(NewMemoryStorage())
		store.AddItem(snapshot(1, "A", 10))
		store.AddItem(snapshot(2, "B", 10))
		store.UpdateQuantity(1, q)
		items := store.Items()
		if len(items) != 1 || items[0].ProductID != 2 {
			t.Fatalf("quantity %d should remove item, got %+v", q, items)
		}
	}
}

func TestUpdateQuantitySetsExactValue(t *testing.T) {
	store := New(NewMemoryStorage())
	store.AddItem(snapshot(1, "A", 10))
	store.AddItem(snapshot(1, "A", 10))
	store.UpdateQuantity(1, 5)
	if got := store.Items()[0].Quantity; got != 5 {
		t.Fatalf("quantity want 5 got %d", got)
	}
	store.UpdateQuantity(99, 3)
	if len(store.Items()) != 1 {
		t.Fatalf("update of missing product should be a no-op")
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	store := New(NewMemoryStorage())
	store.AddItem(snapshot(1, "A", 10))
	store.AddItem(snapshot(2, "B", 10))
	store.RemoveItem(42)
	if len(store.Items()) != 2 {
		t.Fatalf("removing missing product should be a no-op")
	}
	store.RemoveItem(1)
	if len(store.Items()) != 1 {
		t.Fatalf("remove want 1 item left got %d", len(store.Items()))
	}
	store.Clear()
	if !store.IsEmpty() || store.TotalItems() != 0 || !store.TotalPrice().IsZero() {
		t.Fatalf("clear should empty the cart")
	}
}

func TestTotals(t *testing.T) {
	store := New(NewMemoryStorage())
	store.AddItem(snapshot(1, "A", 1000))
	store.UpdateQuantity(1, 2)
	store.AddItem(snapshot(2, "B", 500))
	store.UpdateQuantity(2, 3)

	if store.TotalItems() != 5 {
		t.Fatalf("total items want 5 got %d", store.TotalItems())
	}
	if !store.TotalPrice().Equal(decimal.NewFromInt(3500)) {
		t.Fatalf("total price want 3500 got %s", store.TotalPrice())
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 5} {
		storage := NewMemoryStorage()
		original := New(storage)
		for i := 1; i <= size; i++ {
			original.AddItem(ProductSnapshot{
				ProductID: uint(i),
				Title:     "Part",
				Price:     decimal.RequireFromString("1250.50"),
				Image:     "https://cdn.example.com/p.jpg",
			})
			original.UpdateQuantity(uint(i), i)
		}

		reloaded := New(storage)
		want := original.Items()
		got := reloaded.Items()
		if len(got) != len(want) {
			t.Fatalf("size %d: reloaded len want %d got %d", size, len(want), len(got))
		}
		for i := range want {
			if got[i].ProductID != want[i].ProductID ||
				got[i].Title != want[i].Title ||
				!got[i].Price.Equal(want[i].Price) ||
				got[i].Quantity != want[i].Quantity ||
				got[i].Image != want[i].Image {
				t.Fatalf("size %d: item %d want %+v got %+v", size, i, want[i], got[i])
			}
		}
	}
}

func TestCorruptStorageFallsBackToEmpty(t *testing.T) {
	storage := NewMemoryStorage()
	_ = storage.Set(StorageKey, "{not-json")
	store := New(storage)
	if !store.IsEmpty() {
		t.Fatalf("corrupt data should start with an empty cart")
	}
	store.AddItem(snapshot(1, "A", 10))
	raw, _, _ := storage.Get(StorageKey)
	if _, err := Decode(raw); err != nil {
		t.Fatalf("store should overwrite corrupt slot with valid data: %v", err)
	}
}

type failingStorage struct{}

func (failingStorage) Get(string) (string, bool, error) { return "", false, errors.New("read failed") }
func (failingStorage) Set(string, string) error         { return errors.New("write failed") }

func TestStorageErrorsAreSwallowed(t *testing.T) {
	store := New(failingStorage{})
	store.AddItem(snapshot(1, "A", 10))
	if store.TotalItems() != 1 {
		t.Fatalf("in-memory state should survive write failures")
	}
}

func TestDecodeDropsInvalidAndMergesDuplicates(t *testing.T) {
	raw := `[{"product_id":1,"title":"A","price":"10","quantity":2},{"product_id":0,"quantity":1},{"product_id":2,"quantity":0},{"product_id":1,"title":"A","price":"10","quantity":1}]`
	items, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Fatalf("decode want one item qty 3 got %+v", items)
	}
}

func TestFileStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := New(NewFileStorage(dir))
	store.AddItem(snapshot(3, "Clutch Kit", 8500))

	reloaded := New(NewFileStorage(dir))
	if reloaded.TotalItems() != 1 || reloaded.Items()[0].Title != "Clutch Kit" {
		t.Fatalf("file storage reload failed: %+v", reloaded.Items())
	}
}

func TestScopedStorageIsolatesSessions(t *testing.T) {
	shared := NewMemoryStorage()
	a := New(NewScopedStorage(shared, "session-a"))
	b := New(NewScopedStorage(shared, "session-b"))
	a.AddItem(snapshot(1, "A", 10))

	if !b.IsEmpty() {
		t.Fatalf("session b should not see session a items")
	}
	if reloaded := New(NewScopedStorage(shared, "session-a")); reloaded.TotalItems() != 1 {
		t.Fatalf("session a should reload its own cart")
	}
}
