package service

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/autoparts-enquiry/internal/logger"
	"github.com/autoparts-enquiry/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

var productSheetHeaders = []string{
	"ID", "Title", "Slug", "Category Slug", "Price", "Stock", "Brand",
	"OEM Number", "Compatible Models", "Featured", "Images", "Description",
}

const (
	colTitle = iota + 1
	colSlug
	colCategorySlug
	colPrice
	colStock
	colBrand
	colOEMNumber
	colCompatibleModels
	colFeatured
	colImages
	colDescription
)

const maxImportStock = math.MaxInt32

// ProductImportResult 导入结果
type ProductImportResult struct {
	Created int                   `json:"created"`
	Updated int                   `json:"updated"`
	Skipped int                   `json:"skipped"`
	Errors  []ProductImportRowErr `json:"errors"`
}

// ProductImportRowErr 单行导入错误（行号从 1 开始，含表头）
type ProductImportRowErr struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ProductTransferService 商品 xlsx 导入导出
type ProductTransferService struct {
	productService *ProductService
	productRepo    repository.ProductRepository
	categoryRepo   repository.CategoryRepository
}

// NewProductTransferService 创建商品导入导出服务
func NewProductTransferService(productService *ProductService, productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductTransferService {
	return &ProductTransferService{
		productService: productService,
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
	}
}

// Export 导出全部商品
func (s *ProductTransferService) Export(w io.Writer) error {
	products, err := s.productRepo.ListAll()
	if err != nil {
		return err
	}
	categories, err := s.categoryRepo.List()
	if err != nil {
		return err
	}
	categorySlugs := make(map[uint]string, len(categories))
	for _, c := range categories {
		categorySlugs[c.ID] = c.Slug
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}
	headerRow := sheet.AddRow()
	for _, h := range productSheetHeaders {
		headerRow.AddCell().SetValue(h)
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Title)
		row.AddCell().SetValue(p.Slug)
		row.AddCell().SetValue(categorySlugs[p.CategoryID])
		row.AddCell().SetValue(p.Price.String())
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.Brand)
		row.AddCell().SetValue(p.OEMNumber)
		row.AddCell().SetValue(strings.Join(p.CompatibleModels, ", "))
		row.AddCell().SetValue(strconv.FormatBool(p.Featured))
		row.AddCell().SetValue(strings.Join(p.Images, ", "))
		row.AddCell().SetValue(p.Description)
	}
	return file.Write(w)
}

// Import 按 slug 导入商品：已存在则更新，否则创建，单行失败不影响其他行
func (s *ProductTransferService) Import(r io.ReaderAt, size int64) (*ProductImportResult, error) {
	file, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFileInvalid, err)
	}
	if len(file.Sheets) == 0 || len(file.Sheets[0].Rows) < 1 {
		return nil, ErrImportFileInvalid
	}

	result := &ProductImportResult{Errors: make([]ProductImportRowErr, 0)}
	categoryCache := make(map[string]uint)
	for i, row := range file.Sheets[0].Rows {
		if i == 0 || row == nil || rowIsBlank(row) {
			continue
		}
		created, err := s.importRow(row, categoryCache)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ProductImportRowErr{Row: i + 1, Reason: err.Error()})
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	logger.Infow("product_import_finished",
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
	return result, nil
}

// parseImportStock 库存需为非负整数，兼容表格把整数单元格写成 "12.0" 的情况
func parseImportStock(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	if stock, err := strconv.Atoi(raw); err == nil {
		if stock < 0 || stock > maxImportStock {
			return 0, fmt.Errorf("invalid stock %q", raw)
		}
		return stock, nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed != math.Trunc(parsed) || parsed < 0 || parsed > maxImportStock {
		return 0, fmt.Errorf("invalid stock %q", raw)
	}
	return int(parsed), nil
}

func (s *ProductTransferService) importRow(row *xlsx.Row, categoryCache map[string]uint) (bool, error) {
	get := func(index int) string {
		if index < len(row.Cells) {
			return strings.TrimSpace(row.Cells[index].String())
		}
		return ""
	}

	categoryID, err := s.lookupCategory(get(colCategorySlug), categoryCache)
	if err != nil {
		return false, err
	}
	price, err := decimal.NewFromString(get(colPrice))
	if err != nil {
		return false, fmt.Errorf("invalid price %q", get(colPrice))
	}
	stock, err := parseImportStock(get(colStock))
	if err != nil {
		return false, err
	}
	featured, _ := strconv.ParseBool(strings.ToLower(get(colFeatured)))

	input := CreateProductInput{
		CategoryID:       categoryID,
		Title:            get(colTitle),
		Slug:             get(colSlug),
		Price:            price,
		Stock:            stock,
		Description:      get(colDescription),
		Images:           splitList(get(colImages)),
		Brand:            get(colBrand),
		OEMNumber:        get(colOEMNumber),
		CompatibleModels: splitList(get(colCompatibleModels)),
		Featured:         featured,
	}

	slug := resolveSlug(input.Slug, input.Title)
	existing, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return false, err
	}
	if existing != nil {
		_, err = s.productService.Update(existing.ID, input)
		return false, describeImportErr(err)
	}
	_, err = s.productService.Create(input)
	return true, describeImportErr(err)
}

func (s *ProductTransferService) lookupCategory(slug string, cache map[string]uint) (uint, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return 0, errors.New("category slug is required")
	}
	if id, ok := cache[slug]; ok {
		return id, nil
	}
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return 0, err
	}
	if category == nil {
		return 0, fmt.Errorf("unknown category %q", slug)
	}
	cache[slug] = category.ID
	return category.ID, nil
}

func describeImportErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidData):
		return errors.New("title is required")
	default:
		return err
	}
}

func rowIsBlank(row *xlsx.Row) bool {
	for _, cell := range row.Cells {
		if cell != nil && strings.TrimSpace(cell.String()) != "" {
			return false
		}
	}
	return true
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return cleanStrings(strings.Split(raw, ","))
}
