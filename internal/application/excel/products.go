// Package excel imports and exports products as .xlsx workbooks.
package excel

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
	"github.com/tijara-app/tijara-api/pkg/arabic"
	"github.com/tijara-app/tijara-api/pkg/logger"
)

// Column aliases recognized in the header row, normalized form. Arabic and
// English headers both work.
var headerAliases = map[string]string{
	"sku":        "sku",
	"الرمز":      "sku",
	"الكود":      "sku",
	"barcode":    "barcode",
	"باركود":     "barcode",
	"name":       "name",
	"الاسم":      "name",
	"اسم المنتج": "name",
	"category":   "category",
	"التصنيف":    "category",
	"الفيه":      "category",
	"unit":       "unit",
	"الوحده":     "unit",
	"cost":       "cost",
	"costprice":  "cost",
	"التكلفه":    "cost",
	"سعر الشراء": "cost",
	"price":      "price",
	"sellprice":  "price",
	"السعر":      "price",
	"سعر البيع":  "price",
	"minstock":   "minstock",
	"حد الطلب":   "minstock",
}

// RowError reports one rejected import row.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Errors  []RowError `json:"errors,omitempty"`
}

// Service reads and writes product workbooks.
type Service struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	inventory  repository.InventoryRepository
	log        *logger.Logger
}

// NewService builds the service.
func NewService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	inventory repository.InventoryRepository,
	log *logger.Logger,
) *Service {
	return &Service{products: products, categories: categories, inventory: inventory, log: log}
}

// ImportProducts reads the first sheet of an .xlsx upload. The header row is
// located by its recognized column names; rows with a known SKU update the
// product, new SKUs create one. Bad rows are reported, good rows still land.
func (s *Service) ImportProducts(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	headerIdx, cols := findHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no header row with a name column found")
	}

	categories, err := s.categoryIndex(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		if err := s.importRow(ctx, row, cols, categories, result); err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Message: err.Error()})
		}
	}
	s.log.Info().Int("created", result.Created).Int("updated", result.Updated).
		Int("errors", len(result.Errors)).Msg("product import finished")
	return result, nil
}

// findHeader scans the first rows for one whose cells resolve to known
// columns including name. Returns the row index and column index map.
func findHeader(rows [][]string) (int, map[string]int) {
	limit := len(rows)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		cols := map[string]int{}
		for j, cell := range rows[i] {
			if canonical, ok := headerAliases[arabic.Normalize(cell)]; ok {
				if _, dup := cols[canonical]; !dup {
					cols[canonical] = j
				}
			}
		}
		if _, ok := cols["name"]; ok {
			return i, cols
		}
	}
	return 0, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellDecimal(row []string, cols map[string]int, name string) (decimal.Decimal, error) {
	raw := cell(row, cols, name)
	if raw == "" {
		return decimal.Zero, nil
	}
	raw = strings.ReplaceAll(raw, ",", "")
	return decimal.NewFromString(raw)
}

func (s *Service) categoryIndex(ctx context.Context) (map[string]string, error) {
	list, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]string, len(list))
	for _, c := range list {
		idx[arabic.Normalize(c.Name)] = c.ID
	}
	return idx, nil
}

func (s *Service) importRow(ctx context.Context, row []string, cols map[string]int, categories map[string]string, result *ImportResult) error {
	name := cell(row, cols, "name")
	if name == "" {
		return fmt.Errorf("empty name")
	}
	sku := cell(row, cols, "sku")
	if sku == "" {
		return fmt.Errorf("empty sku")
	}
	cost, err := cellDecimal(row, cols, "cost")
	if err != nil {
		return fmt.Errorf("bad cost: %v", err)
	}
	price, err := cellDecimal(row, cols, "price")
	if err != nil {
		return fmt.Errorf("bad price: %v", err)
	}
	minStock, err := cellDecimal(row, cols, "minstock")
	if err != nil {
		return fmt.Errorf("bad min stock: %v", err)
	}

	categoryID := ""
	if catName := cell(row, cols, "category"); catName != "" {
		categoryID = categories[arabic.Normalize(catName)]
	}

	existing, err := s.products.GetBySKU(ctx, sku)
	if err == nil && existing != nil {
		existing.Name = name
		existing.NormalizedName = arabic.Normalize(name)
		existing.Barcode = cell(row, cols, "barcode")
		existing.Unit = cell(row, cols, "unit")
		existing.CostPrice = cost
		existing.SellPrice1 = price
		existing.MinStock = minStock
		if categoryID != "" {
			existing.CategoryID = categoryID
		}
		existing.UpdatedAt = time.Now().UTC()
		if err := s.products.Update(ctx, existing); err != nil {
			return err
		}
		result.Updated++
		return nil
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:             uuid.New().String(),
		CategoryID:     categoryID,
		SKU:            sku,
		Barcode:        cell(row, cols, "barcode"),
		Name:           name,
		NormalizedName: arabic.Normalize(name),
		Unit:           cell(row, cols, "unit"),
		CostPrice:      cost,
		SellPrice1:     price,
		MinStock:       minStock,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}
	result.Created++
	return nil
}

// ExportProducts writes every product with its total stock to a workbook and
// returns the encoded bytes.
func (s *Service) ExportProducts(ctx context.Context) ([]byte, error) {
	list, err := s.products.List(ctx, repository.ProductFilter{Limit: 100000})
	if err != nil {
		return nil, err
	}

	stock := map[string]decimal.Decimal{}
	rows, err := s.inventory.List(ctx, repository.InventoryFilter{Limit: 1000000})
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stock[row.ProductID] = stock[row.ProductID].Add(row.Quantity)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"SKU", "Barcode", "Name", "Unit", "Cost", "Price", "Min Stock", "Stock"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetCellValue(sheet, col+"1", h)
	}
	for i, p := range list {
		rowNum := i + 2
		values := []any{
			p.SKU, p.Barcode, p.Name, p.Unit,
			p.CostPrice.InexactFloat64(), p.SellPrice1.InexactFloat64(),
			p.MinStock.InexactFloat64(), stock[p.ID].InexactFloat64(),
		}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			_ = f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, rowNum), v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
