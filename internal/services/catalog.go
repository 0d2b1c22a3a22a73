package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/urbangear/retail-app/gate"
	"github.com/urbangear/retail-app/internal/models"
)

// Sort modes for the catalog listing.
type Sort int

const (
	SortNone Sort = iota
	SortQtyAsc
	SortQtyDesc
)

// ParseSort maps the query-string value to a sort mode; anything
// unrecognized means no sorting.
func ParseSort(v string) Sort {
	switch v {
	case "qty_asc":
		return SortQtyAsc
	case "qty_desc":
		return SortQtyDesc
	default:
		return SortNone
	}
}

// CatalogFilter is the caller-supplied filter state. All fields are
// optional; they only take effect for sessions holding catalog:filter.
type CatalogFilter struct {
	Search   string
	VendorID uint
	Sort     Sort
}

// CatalogRow is one visible item with joined display names. FinalPrice
// is computed after the scan, not selected.
type CatalogRow struct {
	ID          uint    `json:"id"`
	SKU         string  `gorm:"column:sku" json:"sku"`
	Name        string  `json:"name"`
	GroupTitle  string  `json:"group"`
	About       string  `json:"about"`
	MakerTitle  string  `json:"maker"`
	VendorTitle string  `json:"vendor"`
	BasePrice   float64 `json:"base_price"`
	Promo       float64 `json:"promo"`
	FinalPrice  float64 `gorm:"-" json:"final_price"`
	Qty         int     `json:"qty"`
	PhotoPath   string  `json:"photo_path"`
}

// matches reports whether the lowercased needle occurs in any of the six
// searchable display fields.
func (r CatalogRow) matches(needle string) bool {
	for _, hay := range []string{r.SKU, r.Name, r.GroupTitle, r.About, r.MakerTitle, r.VendorTitle} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

// CatalogSummary mirrors the listing header counters.
type CatalogSummary struct {
	Total      int `json:"total"`
	OutOfStock int `json:"out_of_stock"`
	BigPromo   int `json:"big_promo"` // promo above 15 percent
}

// CatalogService composes the single read query behind the item list.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// Browse returns the visible item list for the session's permission set.
// Sessions without catalog:filter always get the full list in id order:
// search, vendor and sort inputs are ignored, not rejected.
func (s *CatalogService) Browse(perms gate.Set, f CatalogFilter) ([]CatalogRow, CatalogSummary, error) {
	q := s.db.Table("stock_items si").
		Select("si.id, si.sku, si.name, g.title AS group_title, si.about, mk.title AS maker_title, "+
			"vd.title AS vendor_title, si.base_price, si.promo, si.qty, si.photo_path").
		Joins("JOIN groups g ON g.id = si.group_id").
		Joins("JOIN makers mk ON mk.id = si.maker_id").
		Joins("JOIN vendors vd ON vd.id = si.vendor_id")

	search := ""
	if perms.Has(gate.PermCatalogFilter) {
		search = strings.ToLower(strings.TrimSpace(f.Search))
		if f.VendorID != 0 {
			q = q.Where("si.vendor_id = ?", f.VendorID)
		}
		switch f.Sort {
		case SortQtyAsc:
			q = q.Order("si.qty ASC")
		case SortQtyDesc:
			q = q.Order("si.qty DESC")
		default:
			q = q.Order("si.id")
		}
	} else {
		q = q.Order("si.id")
	}

	var rows []CatalogRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, CatalogSummary{}, fmt.Errorf("catalog query: %w", err)
	}
	// Substring matching happens here, not in SQL: sqlite's lower()
	// folds ASCII only, and the catalog data is largely Cyrillic.
	if search != "" {
		matched := rows[:0]
		for _, r := range rows {
			if r.matches(search) {
				matched = append(matched, r)
			}
		}
		rows = matched
	}
	for i := range rows {
		rows[i].FinalPrice = models.FinalPrice(rows[i].BasePrice, rows[i].Promo)
	}
	sum := CatalogSummary{Total: len(rows)}
	for _, r := range rows {
		if r.Qty == 0 {
			sum.OutOfStock++
		}
		if r.Promo > 15 {
			sum.BigPromo++
		}
	}
	return rows, sum, nil
}

// Vendors lists vendors by title for the filter dropdown.
func (s *CatalogService) Vendors() ([]VendorRow, error) {
	var rows []VendorRow
	if err := s.db.Table("vendors").Select("id, title").Order("title").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return rows, nil
}

type VendorRow struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}
