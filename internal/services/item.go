package services

import (
	"errors"
	"fmt"
	"io"

	"gorm.io/gorm"

	"github.com/urbangear/retail-app/internal/assets"
	"github.com/urbangear/retail-app/internal/models"
	"github.com/urbangear/retail-app/validation"
)

// ItemInput is the editable attribute set of a stock item.
type ItemInput struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	About     string  `json:"about"`
	GroupID   uint    `json:"group_id"`
	MakerID   uint    `json:"maker_id"`
	VendorID  uint    `json:"vendor_id"`
	MeasureID uint    `json:"measure_id"`
	BasePrice float64 `json:"base_price"`
	Qty       int     `json:"qty"`
	Promo     float64 `json:"promo"`
}

// ItemRefs are the name→id lookups the item editor resolves selections
// against, loaded once at form open.
type ItemRefs struct {
	Groups   map[string]uint `json:"groups"`
	Makers   map[string]uint `json:"makers"`
	Vendors  map[string]uint `json:"vendors"`
	Measures map[string]uint `json:"measures"`
}

// ItemService validates and persists stock items and owns the lifecycle
// of their managed photos.
type ItemService struct {
	db    *gorm.DB
	store *assets.Store
}

func NewItemService(db *gorm.DB, store *assets.Store) *ItemService {
	return &ItemService{db: db, store: store}
}

// Refs loads the reference lookups ordered by title.
func (s *ItemService) Refs() (*ItemRefs, error) {
	refs := &ItemRefs{
		Groups:   map[string]uint{},
		Makers:   map[string]uint{},
		Vendors:  map[string]uint{},
		Measures: map[string]uint{},
	}
	var groups []models.Group
	if err := s.db.Order("title").Find(&groups).Error; err != nil {
		return nil, err
	}
	for _, g := range groups {
		refs.Groups[g.Title] = g.ID
	}
	var makers []models.Maker
	if err := s.db.Order("title").Find(&makers).Error; err != nil {
		return nil, err
	}
	for _, m := range makers {
		refs.Makers[m.Title] = m.ID
	}
	var vendors []models.Vendor
	if err := s.db.Order("title").Find(&vendors).Error; err != nil {
		return nil, err
	}
	for _, v := range vendors {
		refs.Vendors[v.Title] = v.ID
	}
	var measures []models.Measure
	if err := s.db.Order("title").Find(&measures).Error; err != nil {
		return nil, err
	}
	for _, m := range measures {
		refs.Measures[m.Title] = m.ID
	}
	return refs, nil
}

// Get loads one item with joined reference rows.
func (s *ItemService) Get(id uint) (*models.StockItem, error) {
	var item models.StockItem
	err := s.db.Preload("Group").Preload("Maker").Preload("Vendor").Preload("Measure").First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ItemService) validate(in ItemInput) error {
	v := validation.Violations{}
	validation.Required("sku", in.SKU, v)
	validation.Required("name", in.Name, v)
	validation.NonNegativeFloat("base_price", in.BasePrice, v)
	validation.NonNegativeInt("qty", in.Qty, v)
	validation.RangeFloat("promo", in.Promo, 0, 100, v)
	s.checkRef(&models.Group{}, in.GroupID, "group_id", v)
	s.checkRef(&models.Maker{}, in.MakerID, "maker_id", v)
	s.checkRef(&models.Vendor{}, in.VendorID, "vendor_id", v)
	s.checkRef(&models.Measure{}, in.MeasureID, "measure_id", v)
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}

func (s *ItemService) checkRef(model any, id uint, field string, v validation.Violations) {
	if id == 0 {
		v[field] = "required"
		return
	}
	var count int64
	if err := s.db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil || count == 0 {
		v[field] = "unknown_reference"
	}
}

// Save validates and persists an item; id 0 creates a new row. A non-nil
// photo is normalized into the managed directory and the previous managed
// file is removed only after the row has been written, so a failed save
// never leaves the record pointing at a missing file.
func (s *ItemService) Save(id uint, in ItemInput, photo io.Reader) (*models.StockItem, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	newPhoto := ""
	if photo != nil {
		path, err := s.store.SaveImage(photo)
		if err != nil {
			return nil, fmt.Errorf("save photo: %w", err)
		}
		newPhoto = path
	}

	if id == 0 {
		item := models.StockItem{
			SKU: in.SKU, Name: in.Name, About: in.About,
			GroupID: in.GroupID, MakerID: in.MakerID, VendorID: in.VendorID, MeasureID: in.MeasureID,
			BasePrice: in.BasePrice, Qty: in.Qty, Promo: in.Promo, PhotoPath: newPhoto,
		}
		if err := s.db.Create(&item).Error; err != nil {
			s.store.Remove(newPhoto)
			if isUniqueViolation(err) {
				return nil, ErrSKUConflict
			}
			return nil, fmt.Errorf("create item: %w", err)
		}
		return &item, nil
	}

	var item models.StockItem
	if err := s.db.First(&item, id).Error; err != nil {
		s.store.Remove(newPhoto)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	oldPhoto := item.PhotoPath
	item.SKU = in.SKU
	item.Name = in.Name
	item.About = in.About
	item.GroupID = in.GroupID
	item.MakerID = in.MakerID
	item.VendorID = in.VendorID
	item.MeasureID = in.MeasureID
	item.BasePrice = in.BasePrice
	item.Qty = in.Qty
	item.Promo = in.Promo
	if newPhoto != "" {
		item.PhotoPath = newPhoto
	}
	if err := s.db.Save(&item).Error; err != nil {
		s.store.Remove(newPhoto)
		if isUniqueViolation(err) {
			return nil, ErrSKUConflict
		}
		return nil, fmt.Errorf("update item: %w", err)
	}
	if newPhoto != "" && oldPhoto != newPhoto {
		s.store.Remove(oldPhoto)
	}
	return &item, nil
}

// Delete removes an item and its managed photo together. Blocked while
// any order line references the item.
func (s *ItemService) Delete(id uint) error {
	var item models.StockItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	var refs int64
	if err := s.db.Model(&models.SalesOrderLine{}).Where("item_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("check item references: %w", err)
	}
	if refs > 0 {
		return ErrItemInUse
	}
	if err := s.db.Delete(&models.StockItem{}, id).Error; err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.store.Remove(item.PhotoPath)
	return nil
}

// AddVendor inserts a vendor row, translating the duplicate-title case.
func (s *ItemService) AddVendor(title string) (*models.Vendor, error) {
	v := validation.Violations{}
	validation.Required("title", title, v)
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	vendor := models.Vendor{Title: title}
	if err := s.db.Create(&vendor).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrVendorConflict
		}
		return nil, fmt.Errorf("create vendor: %w", err)
	}
	return &vendor, nil
}
