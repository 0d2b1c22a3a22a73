package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/urbangear/retail-app/internal/models"
	"github.com/urbangear/retail-app/validation"
)

// OrderSummary is one row of the orders list with its computed total.
type OrderSummary struct {
	ID           uint    `json:"id"`
	OrderCode    string  `json:"order_code"`
	CustomerName string  `json:"customer_name"`
	StateTitle   string  `json:"state"`
	Address      string  `json:"location"`
	CreatedOn    string  `json:"created_on"`
	IssuedOn     string  `json:"issued_on"`
	Total        float64 `json:"total"`
}

// LineInput is one requested order line. UnitPrice is the price captured
// when the line was picked, not the item's current price.
type LineInput struct {
	ItemID    uint    `json:"item_id"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderInput is the full save payload; on edit, Lines replaces the
// existing line set wholesale.
type OrderInput struct {
	OrderCode    string      `json:"order_code"`
	CustomerName string      `json:"customer_name"`
	StateID      uint        `json:"state_id"`
	LocationID   uint        `json:"location_id"`
	CreatedOn    string      `json:"created_on"`
	IssuedOn     string      `json:"issued_on"`
	Lines        []LineInput `json:"lines"`
}

// LineDetail is one stored line joined with its item's display fields.
type LineDetail struct {
	ItemID    uint    `json:"item_id"`
	SKU       string  `gorm:"column:sku" json:"sku"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// OrderDetail is the full order view: header plus ordered lines.
type OrderDetail struct {
	ID           uint         `json:"id"`
	OrderCode    string       `json:"order_code"`
	CustomerName string       `json:"customer_name"`
	StateID      uint         `json:"state_id"`
	StateTitle   string       `json:"state"`
	LocationID   uint         `json:"location_id"`
	Address      string       `json:"location"`
	CreatedOn    string       `json:"created_on"`
	IssuedOn     string       `json:"issued_on"`
	Lines        []LineDetail `json:"lines"`
	Total        float64      `json:"total"`
}

// OrderService aggregates and persists sales orders.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// List returns all orders newest-first with total = sum(qty*unit_price);
// an order without lines has total 0.
func (s *OrderService) List() ([]OrderSummary, error) {
	var rows []OrderSummary
	err := s.db.Table("sales_orders so").
		Select("so.id, so.order_code, so.customer_name, st.title AS state_title, pl.address, "+
			"so.created_on, so.issued_on, COALESCE(SUM(sol.qty * sol.unit_price), 0) AS total").
		Joins("JOIN order_states st ON st.id = so.state_id").
		Joins("JOIN pickup_locations pl ON pl.id = so.location_id").
		Joins("LEFT JOIN sales_order_lines sol ON sol.order_id = so.id").
		Group("so.id").
		Order("so.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return rows, nil
}

// Get resolves the full header plus the ordered list of lines.
func (s *OrderService) Get(id uint) (*OrderDetail, error) {
	var order models.SalesOrder
	err := s.db.Preload("State").Preload("Location").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var lines []LineDetail
	err = s.db.Table("sales_order_lines sol").
		Select("sol.item_id, si.sku, si.name, sol.qty, sol.unit_price, sol.qty*sol.unit_price AS line_total").
		Joins("JOIN stock_items si ON si.id = sol.item_id").
		Where("sol.order_id = ?", id).
		Order("sol.id").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	detail := &OrderDetail{
		ID:           order.ID,
		OrderCode:    order.OrderCode,
		CustomerName: order.CustomerName,
		StateID:      order.StateID,
		StateTitle:   order.State.Title,
		LocationID:   order.LocationID,
		Address:      order.Location.Address,
		CreatedOn:    order.CreatedOn,
		IssuedOn:     order.IssuedOn,
		Lines:        lines,
	}
	for _, l := range lines {
		detail.Total += l.LineTotal
	}
	return detail, nil
}

func (s *OrderService) validate(in OrderInput) error {
	v := validation.Violations{}
	validation.Required("order_code", in.OrderCode, v)
	validation.Required("customer_name", in.CustomerName, v)
	if _, err := time.Parse(models.DateLayout, in.CreatedOn); err != nil {
		v["created_on"] = "invalid_date"
	}
	// No ordering between creation and issue date is enforced.
	if _, err := time.Parse(models.DateLayout, in.IssuedOn); err != nil {
		v["issued_on"] = "invalid_date"
	}
	s.checkRef(&models.OrderState{}, in.StateID, "state_id", v)
	s.checkRef(&models.PickupLocation{}, in.LocationID, "location_id", v)
	for _, l := range in.Lines {
		if l.ItemID == 0 || l.Qty <= 0 {
			v["lines"] = "invalid_item_or_quantity"
			break
		}
		if l.UnitPrice < 0 {
			v["lines"] = "negative_unit_price"
			break
		}
	}
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}

func (s *OrderService) checkRef(model any, id uint, field string, v validation.Violations) {
	if id == 0 {
		v[field] = "required"
		return
	}
	var count int64
	if err := s.db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil || count == 0 {
		v[field] = "unknown_reference"
	}
}

// Save persists an order in a single transaction; id 0 creates a new
// one. Edits update the header in place and fully replace the line set:
// delete-then-reinsert, no diffing, no line identity across edits. Stock
// availability is not re-checked here; that happens at line-add time.
func (s *OrderService) Save(id uint, in OrderInput) (uint, error) {
	if err := s.validate(in); err != nil {
		return 0, err
	}
	lines := make([]models.SalesOrderLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, models.SalesOrderLine{ItemID: l.ItemID, Qty: l.Qty, UnitPrice: l.UnitPrice})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if id == 0 {
			order := models.SalesOrder{
				OrderCode:    in.OrderCode,
				CustomerName: in.CustomerName,
				StateID:      in.StateID,
				LocationID:   in.LocationID,
				CreatedOn:    in.CreatedOn,
				IssuedOn:     in.IssuedOn,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			id = order.ID
		} else {
			var order models.SalesOrder
			if err := tx.First(&order, id).Error; err != nil {
				return err
			}
			updates := map[string]any{
				"order_code":    in.OrderCode,
				"customer_name": in.CustomerName,
				"state_id":      in.StateID,
				"location_id":   in.LocationID,
				"created_on":    in.CreatedOn,
				"issued_on":     in.IssuedOn,
			}
			if err := tx.Model(&order).Updates(updates).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", id).Delete(&models.SalesOrderLine{}).Error; err != nil {
				return err
			}
		}
		for i := range lines {
			lines[i].OrderID = id
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrOrderCodeConflict
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("save order: %w", err)
	}
	return id, nil
}

// Delete removes an order; its lines go with it.
func (s *OrderService) Delete(id uint) error {
	var order models.SalesOrder
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.SalesOrderLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SalesOrder{}, id).Error
	})
}

// CheckAvailability validates a requested line quantity against the
// stock on hand at this moment. Callers run it when a line is picked,
// not again at save time.
func (s *OrderService) CheckAvailability(itemID uint, qty int) error {
	if qty <= 0 {
		return &ValidationError{Violations: validation.Violations{"qty": "must_be_positive"}}
	}
	var item models.StockItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if qty > item.Qty {
		return &InsufficientStockError{ItemID: itemID, Available: item.Qty}
	}
	return nil
}

// Refs loads order states and pickup locations in id order for the
// order editor.
func (s *OrderService) Refs() (states []models.OrderState, locations []models.PickupLocation, err error) {
	if err = s.db.Order("id").Find(&states).Error; err != nil {
		return nil, nil, err
	}
	if err = s.db.Order("id").Find(&locations).Error; err != nil {
		return nil, nil, err
	}
	return states, locations, nil
}
