package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/autoparts-enquiry/internal/cart"
	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

func buildImportSheet(t *testing.T, rows [][]string) *bytes.Reader {
	t.Helper()
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		t.Fatalf("add sheet failed: %v", err)
	}
	header := sheet.AddRow()
	for _, h := range productSheetHeaders {
		header.AddCell().SetValue(h)
	}
	for _, values := range rows {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetValue(v)
		}
	}
	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		t.Fatalf("write sheet failed: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestProductImportUpsertsBySlug(t *testing.T) {
	db := openServiceTestDB(t)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	svc := NewProductTransferService(NewProductService(productRepo, categoryRepo), productRepo, categoryRepo)
	category := createTestCategory(t, db, "filters")
	createTestProduct(t, db, models.Product{CategoryID: category.ID, Title: "Air Filter", Slug: "air-filter", Stock: 1})

	reader := buildImportSheet(t, [][]string{
		{"", "Air Filter", "air-filter", "filters", "1200", "9", "Bosch", "", "Toyota Vitz, Mazda Demio", "true", "", "updated"},
		{"", "Fuel Filter", "", "filters", "650.5", "3", "", "23300-21010", "", "false", "/uploads/a.jpg", ""},
		{"", "Ghost Part", "", "missing-category", "100", "1", "", "", "", "", "", ""},
		{"", "Bad Price", "", "filters", "abc", "1", "", "", "", "", "", ""},
		{"", "", "", "", "", "", "", "", "", "", "", ""},
	})

	result, err := svc.Import(reader, reader.Size())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Created != 1 || result.Updated != 1 || result.Skipped != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Errors) != 2 || result.Errors[0].Row != 4 || result.Errors[1].Row != 5 {
		t.Fatalf("unexpected row errors: %+v", result.Errors)
	}

	air, err := productRepo.GetBySlug("air-filter")
	if err != nil || air == nil {
		t.Fatalf("air filter missing: %v", err)
	}
	if air.Stock != 9 || !air.Featured || air.Brand != "Bosch" || len(air.CompatibleModels) != 2 {
		t.Fatalf("air filter not updated: %+v", air)
	}
	fuel, err := productRepo.GetBySlug("fuel-filter")
	if err != nil || fuel == nil {
		t.Fatalf("fuel filter should be created: %v", err)
	}
	if !fuel.Price.Equal(decimal.RequireFromString("650.5")) || fuel.OEMNumber != "23300-21010" {
		t.Fatalf("fuel filter fields unexpected: %+v", fuel)
	}
}

func TestProductExportImportRoundTrip(t *testing.T) {
	db := openServiceTestDB(t)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	svc := NewProductTransferService(NewProductService(productRepo, categoryRepo), productRepo, categoryRepo)
	category := createTestCategory(t, db, "suspension")
	createTestProduct(t, db, models.Product{
		CategoryID:       category.ID,
		Title:            "Shock Absorber",
		Price:            models.NewMoneyFromInt(4800),
		Stock:            6,
		CompatibleModels: models.StringArray{"Nissan Note"},
	})

	var buf bytes.Buffer
	if err := svc.Export(&buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	reader := bytes.NewReader(buf.Bytes())
	result, err := svc.Import(reader, reader.Size())
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if result.Created != 0 || result.Updated != 1 || result.Skipped != 0 {
		t.Fatalf("round trip should update in place: %+v", result)
	}
	products, _ := productRepo.ListAll()
	if len(products) != 1 || products[0].Stock != 6 || products[0].CompatibleModels[0] != "Nissan Note" {
		t.Fatalf("round trip changed product: %+v", products)
	}
}

func TestProductImportStockMustBeWholeNumber(t *testing.T) {
	db := openServiceTestDB(t)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	svc := NewProductTransferService(NewProductService(productRepo, categoryRepo), productRepo, categoryRepo)
	createTestCategory(t, db, "engine")

	reader := buildImportSheet(t, [][]string{
		{"", "Spark Plug", "", "engine", "300", "12", "", "", "", "", "", ""},
		{"", "Glow Plug", "", "engine", "900", "4.0", "", "", "", "", "", ""},
		{"", "Fan Belt", "", "engine", "700", "2.7", "", "", "", "", "", ""},
		{"", "Head Gasket", "", "engine", "2500", "1e20", "", "", "", "", "", ""},
		{"", "Radiator Cap", "", "engine", "400", "-3", "", "", "", "", "", ""},
	})

	result, err := svc.Import(reader, reader.Size())
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Created != 2 || result.Skipped != 3 || len(result.Errors) != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}
	for i, wantRow := range []int{4, 5, 6} {
		if result.Errors[i].Row != wantRow {
			t.Fatalf("error %d want row %d got %+v", i, wantRow, result.Errors[i])
		}
	}
	glow, err := productRepo.GetBySlug("glow-plug")
	if err != nil || glow == nil || glow.Stock != 4 {
		t.Fatalf("whole float stock should import as 4, got %+v err=%v", glow, err)
	}
	if belt, _ := productRepo.GetBySlug("fan-belt"); belt != nil {
		t.Fatalf("fractional stock row must not be imported")
	}
}

func TestParseImportStock(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{raw: "", want: 0, ok: true},
		{raw: "7", want: 7, ok: true},
		{raw: "7.0", want: 7, ok: true},
		{raw: "7.5", ok: false},
		{raw: "-1", ok: false},
		{raw: "1e20", ok: false},
		{raw: "99999999999", ok: false},
		{raw: "NaN", ok: false},
		{raw: "seven", ok: false},
	}
	for _, tc := range cases {
		got, err := parseImportStock(tc.raw)
		if (err == nil) != tc.ok {
			t.Fatalf("raw %q want ok=%v got err=%v", tc.raw, tc.ok, err)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("raw %q want %d got %d", tc.raw, tc.want, got)
		}
	}
}

func TestProductImportRejectsGarbage(t *testing.T) {
	db := openServiceTestDB(t)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	svc := NewProductTransferService(NewProductService(productRepo, categoryRepo), productRepo, categoryRepo)

	reader := bytes.NewReader([]byte("not a spreadsheet"))
	if _, err := svc.Import(reader, reader.Size()); !errors.Is(err, ErrImportFileInvalid) {
		t.Fatalf("garbage input want ErrImportFileInvalid got %v", err)
	}
}

func TestEnquiryDetailMarksDeletedProducts(t *testing.T) {
	db := openServiceTestDB(t)
	productRepo := repository.NewProductRepository(db)
	enquiryRepo := repository.NewEnquiryRepository(db)
	category := createTestCategory(t, db, "brakes")
	kept := createTestProduct(t, db, models.Product{CategoryID: category.ID, Title: "Brake Pad", Price: models.NewMoneyFromInt(2500), Stock: 5})
	gone := createTestProduct(t, db, models.Product{CategoryID: category.ID, Title: "Brake Disc", Price: models.NewMoneyFromInt(4000), Stock: 5})

	store := cart.New(cart.NewMemoryStorage())
	store.AddItem(cart.ProductSnapshot{ProductID: kept.ID, Title: kept.Title, Price: kept.Price.Decimal})
	store.AddItem(cart.ProductSnapshot{ProductID: kept.ID, Title: kept.Title, Price: kept.Price.Decimal})
	store.AddItem(cart.ProductSnapshot{ProductID: gone.ID, Title: gone.Title, Price: gone.Price.Decimal})
	checkout := NewCheckoutService(config.WhatsAppConfig{Number: "254700000000"}, enquiryRepo, nil, nil)
	result, err := checkout.Checkout(context.Background(), store, CustomerInfo{Name: "Kamau"})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if err := productRepo.Delete(gone.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	svc := NewEnquiryService(enquiryRepo, productRepo)
	detail, err := svc.GetByID(result.Enquiry.ID)
	if err != nil {
		t.Fatalf("get enquiry failed: %v", err)
	}
	if detail.TotalQuantity != 3 || !detail.TotalAmount.Equal(decimal.NewFromInt(9000)) {
		t.Fatalf("unexpected totals: qty=%d amount=%s", detail.TotalQuantity, detail.TotalAmount.String())
	}
	if detail.Products[0].Missing || detail.Products[0].Title != "Brake Pad" {
		t.Fatalf("existing product should resolve: %+v", detail.Products[0])
	}
	if !detail.Products[1].Missing {
		t.Fatalf("deleted product should be marked missing: %+v", detail.Products[1])
	}
	if _, err := svc.GetByID(result.Enquiry.ID + 10); !errors.Is(err, ErrEnquiryNotFound) {
		t.Fatalf("missing enquiry want ErrEnquiryNotFound got %v", err)
	}

	var buf bytes.Buffer
	if err := svc.Export(EnquiryListInput{}, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	file, err := xlsx.OpenBinary(buf.Bytes())
	if err != nil {
		t.Fatalf("open export failed: %v", err)
	}
	if rows := len(file.Sheets[0].Rows); rows != 3 {
		t.Fatalf("export should have header plus one row per item, got %d rows", rows)
	}
}
