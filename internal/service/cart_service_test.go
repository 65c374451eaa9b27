package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/autoparts-enquiry/internal/cart"
	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/repository"

	"gorm.io/gorm"
)

func serializeTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
}

func TestCartServiceConcurrentAddsSameSession(t *testing.T) {
	cases := []struct {
		name string
		cfg  func(t *testing.T) config.CartConfig
	}{
		{name: "memory", cfg: func(*testing.T) config.CartConfig { return config.CartConfig{} }},
		{name: "file dir", cfg: func(t *testing.T) config.CartConfig { return config.CartConfig{FileDir: t.TempDir()} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := openServiceTestDB(t)
			serializeTestDB(t, db)
			category := createTestCategory(t, db, "brakes")
			pad := createTestProduct(t, db, models.Product{CategoryID: category.ID, Title: "Brake Pad", Stock: 5})
			svc := NewCartService(tc.cfg(t), repository.NewProductRepository(db))

			const adds = 200
			var wg sync.WaitGroup
			errs := make(chan error, adds)
			for i := 0; i < adds; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := svc.AddItem("tab", pad.ID); err != nil {
						errs <- err
					}
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				t.Fatalf("concurrent add failed: %v", err)
			}

			view := svc.View("tab")
			if len(view.Items) != 1 || view.Items[0].Quantity != adds {
				t.Fatalf("want quantity %d after concurrent adds, got %+v", adds, view.Items)
			}
			if svc.locks.Len() != 0 {
				t.Fatalf("session locks should be released, %d left", svc.locks.Len())
			}
		})
	}
}

func TestCartServiceCheckoutDoesNotDropConcurrentAdds(t *testing.T) {
	db := openServiceTestDB(t)
	serializeTestDB(t, db)
	category := createTestCategory(t, db, "filters")
	filter := createTestProduct(t, db, models.Product{CategoryID: category.ID, Title: "Oil Filter", Stock: 50})
	cartSvc := NewCartService(config.CartConfig{FileDir: t.TempDir()}, repository.NewProductRepository(db))
	checkoutSvc := NewCheckoutService(config.WhatsAppConfig{Number: "254700000000", Currency: "KES"}, repository.NewEnquiryRepository(db), nil, nil)

	const adds = 60
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cartSvc.AddItem("tab", filter.ID); err != nil {
				t.Errorf("add failed: %v", err)
			}
		}()
		if i%15 == 14 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := cartSvc.WithCart("tab", func(store *cart.Store) error {
					_, err := checkoutSvc.Checkout(context.Background(), store, CustomerInfo{})
					return err
				})
				if err != nil && !errors.Is(err, ErrCartEmpty) {
					t.Errorf("checkout failed: %v", err)
				}
			}()
		}
	}
	wg.Wait()

	var enquiries []models.Enquiry
	if err := db.Find(&enquiries).Error; err != nil {
		t.Fatalf("load enquiries failed: %v", err)
	}
	checkedOut := 0
	for _, enquiry := range enquiries {
		checkedOut += enquiry.TotalQuantity()
	}
	remaining := cartSvc.View("tab").TotalItems
	if checkedOut+remaining != adds {
		t.Fatalf("every add must end up in an enquiry or the cart: checked out %d + remaining %d != %d", checkedOut, remaining, adds)
	}
}

func TestCartServiceMutationsReturnViews(t *testing.T) {
	db := openServiceTestDB(t)
	category := createTestCategory(t, db, "suspension")
	shock := createTestProduct(t, db, models.Product{CategoryID: category.ID, Title: "Shock Absorber", Stock: 4})
	bush := createTestProduct(t, db, models.Product{CategoryID: category.ID, Title: "Bush Kit", Stock: 4})
	svc := NewCartService(config.CartConfig{}, repository.NewProductRepository(db))

	if _, err := svc.AddItem(" s1 ", shock.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddItem("s1", bush.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	view, err := svc.UpdateQuantity("s1", shock.ID, 3)
	if err != nil || view.TotalItems != 4 {
		t.Fatalf("update quantity want 4 items got %+v err=%v", view, err)
	}
	view, err = svc.RemoveItem("s1", bush.ID)
	if err != nil || len(view.Items) != 1 || view.Items[0].ProductID != shock.ID {
		t.Fatalf("remove item got %+v err=%v", view, err)
	}
	view, err = svc.Clear("s1")
	if err != nil || view.TotalItems != 0 {
		t.Fatalf("clear got %+v err=%v", view, err)
	}
}
