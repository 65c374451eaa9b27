package service

import (
	"io"
	"strings"
	"time"

	"github.com/autoparts-enquiry/internal/models"
	"github.com/autoparts-enquiry/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

// EnquiryService 询价单查询服务（询价单创建后只读）
type EnquiryService struct {
	repo        repository.EnquiryRepository
	productRepo repository.ProductRepository
}

// NewEnquiryService 创建询价单服务
func NewEnquiryService(repo repository.EnquiryRepository, productRepo repository.ProductRepository) *EnquiryService {
	return &EnquiryService{repo: repo, productRepo: productRepo}
}

// EnquiryItemDetail 询价条目及商品信息（商品已删除时 Missing 为 true）
type EnquiryItemDetail struct {
	ProductID uint         `json:"product_id"`
	Title     string       `json:"title"`
	Slug      string       `json:"slug,omitempty"`
	Image     string       `json:"image,omitempty"`
	Quantity  int          `json:"quantity"`
	Price     models.Money `json:"price"`
	Subtotal  models.Money `json:"subtotal"`
	Missing   bool         `json:"missing,omitempty"`
}

// EnquiryDetail 后台询价单展示数据
type EnquiryDetail struct {
	models.Enquiry
	Products      []EnquiryItemDetail `json:"products"`
	TotalQuantity int                 `json:"total_quantity"`
	TotalAmount   models.Money        `json:"total_amount"`
}

// EnquiryListInput 询价单列表查询条件
type EnquiryListInput struct {
	Page        int
	PageSize    int
	Keyword     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

func (in EnquiryListInput) filter() repository.EnquiryListFilter {
	return repository.EnquiryListFilter{
		Page:        in.Page,
		PageSize:    in.PageSize,
		Keyword:     strings.TrimSpace(in.Keyword),
		CreatedFrom: in.CreatedFrom,
		CreatedTo:   in.CreatedTo,
	}
}

// List 询价单分页列表（含商品信息）
func (s *EnquiryService) List(input EnquiryListInput) ([]EnquiryDetail, int64, error) {
	enquiries, total, err := s.repo.List(input.filter())
	if err != nil {
		return nil, 0, err
	}
	details, err := s.attachProducts(enquiries)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

// Recent 最近询价单
func (s *EnquiryService) Recent(limit int) ([]EnquiryDetail, error) {
	enquiries, err := s.repo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	return s.attachProducts(enquiries)
}

// GetByID 询价单详情
func (s *EnquiryService) GetByID(id uint) (*EnquiryDetail, error) {
	enquiry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if enquiry == nil {
		return nil, ErrEnquiryNotFound
	}
	details, err := s.attachProducts([]models.Enquiry{*enquiry})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Export 导出询价单为 xlsx，每个条目一行
func (s *EnquiryService) Export(input EnquiryListInput, w io.Writer) error {
	enquiries, err := s.repo.ListForExport(input.filter())
	if err != nil {
		return err
	}
	details, err := s.attachProducts(enquiries)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Enquiries")
	if err != nil {
		return err
	}
	headers := []string{
		"Enquiry ID", "Created At", "Name", "Phone", "Location",
		"Product ID", "Product", "Quantity", "Price", "Subtotal", "Enquiry Total",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, detail := range details {
		for _, item := range detail.Products {
			row := sheet.AddRow()
			row.AddCell().SetValue(detail.ID)
			row.AddCell().SetValue(detail.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(detail.Name)
			row.AddCell().SetValue(detail.Phone)
			row.AddCell().SetValue(detail.Location)
			row.AddCell().SetValue(item.ProductID)
			row.AddCell().SetValue(item.Title)
			row.AddCell().SetValue(item.Quantity)
			row.AddCell().SetValue(item.Price.String())
			row.AddCell().SetValue(item.Subtotal.String())
			row.AddCell().SetValue(detail.TotalAmount.String())
		}
	}
	return file.Write(w)
}

// attachProducts 批量补充商品信息，避免逐条查询
func (s *EnquiryService) attachProducts(enquiries []models.Enquiry) ([]EnquiryDetail, error) {
	idSet := make(map[uint]struct{})
	ids := make([]uint, 0)
	for _, enquiry := range enquiries {
		for _, item := range enquiry.Items {
			if _, ok := idSet[item.ProductID]; ok {
				continue
			}
			idSet[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uint]models.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	details := make([]EnquiryDetail, 0, len(enquiries))
	for _, enquiry := range enquiries {
		detail := EnquiryDetail{
			Enquiry:       enquiry,
			Products:      make([]EnquiryItemDetail, 0, len(enquiry.Items)),
			TotalQuantity: enquiry.TotalQuantity(),
		}
		total := decimal.Zero
		for _, item := range enquiry.Items {
			subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(subtotal)
			itemDetail := EnquiryItemDetail{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Subtotal:  models.NewMoneyFromDecimal(subtotal),
			}
			if product, ok := productMap[item.ProductID]; ok {
				itemDetail.Title = product.Title
				itemDetail.Slug = product.Slug
				itemDetail.Image = product.MainImage()
			} else {
				itemDetail.Missing = true
			}
			detail.Products = append(detail.Products, itemDetail)
		}
		detail.TotalAmount = models.NewMoneyFromDecimal(total)
		details = append(details, detail)
	}
	return details, nil
}
