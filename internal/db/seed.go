package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/urbangear/retail-app/auth"
	"github.com/urbangear/retail-app/internal/models"
)

// Seed inserts the baseline accounts, reference rows and demo catalog,
// keyed by natural uniqueness (username, title, SKU, order code) so
// repeated runs are no-ops. Demo orders are created only while the orders
// table is empty, matching the original dataset.
func Seed(dbConn *gorm.DB) error {
	accounts := []models.Account{
		{Username: "root", PassHash: auth.Digest("root123"), FullName: "Орлова Мария Николаевна", RoleCode: models.RoleAdmin},
		{Username: "boss", PassHash: auth.Digest("boss123"), FullName: "Романов Денис Игоревич", RoleCode: models.RoleManager},
		{Username: "buyer", PassHash: auth.Digest("buyer123"), FullName: "Кузнецова Ирина Павловна", RoleCode: models.RoleClient},
	}
	for _, a := range accounts {
		var existing models.Account
		if err := dbConn.Where("username = ?", a.Username).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := dbConn.Create(&a).Error; err != nil {
				return fmt.Errorf("seed account %s: %w", a.Username, err)
			}
		}
	}

	for _, title := range []string{"Север Логистик", "Prime Supply", "City Stock"} {
		var existing models.Vendor
		if err := dbConn.Where("title = ?", title).First(&existing).Error; err == gorm.ErrRecordNotFound {
			dbConn.Create(&models.Vendor{Title: title})
		}
	}
	for _, title := range []string{"Urban", "Altitude", "Core"} {
		var existing models.Maker
		if err := dbConn.Where("title = ?", title).First(&existing).Error; err == gorm.ErrRecordNotFound {
			dbConn.Create(&models.Maker{Title: title})
		}
	}
	for _, title := range []string{"Куртки", "Рюкзаки", "Кроссовки"} {
		var existing models.Group
		if err := dbConn.Where("title = ?", title).First(&existing).Error; err == gorm.ErrRecordNotFound {
			dbConn.Create(&models.Group{Title: title})
		}
	}
	for _, title := range []string{"шт."} {
		var existing models.Measure
		if err := dbConn.Where("title = ?", title).First(&existing).Error; err == gorm.ErrRecordNotFound {
			dbConn.Create(&models.Measure{Title: title})
		}
	}
	for _, title := range []string{"Новый", "Собирается", "Выдан"} {
		var existing models.OrderState
		if err := dbConn.Where("title = ?", title).First(&existing).Error; err == gorm.ErrRecordNotFound {
			dbConn.Create(&models.OrderState{Title: title})
		}
	}
	for _, address := range []string{"г. Москва, ул. Ленина, 10", "г. Казань, ул. Баумана, 5"} {
		var existing models.PickupLocation
		if err := dbConn.Where("address = ?", address).First(&existing).Error; err == gorm.ErrRecordNotFound {
			dbConn.Create(&models.PickupLocation{Address: address})
		}
	}

	if err := seedItems(dbConn); err != nil {
		return err
	}
	return seedDemoOrders(dbConn)
}

type demoItem struct {
	sku    string
	name   string
	group  string
	about  string
	maker  string
	vendor string
	price  float64
	qty    int
	promo  float64
}

func seedItems(dbConn *gorm.DB) error {
	groups := map[string]uint{}
	var groupRows []models.Group
	if err := dbConn.Find(&groupRows).Error; err != nil {
		return err
	}
	for _, g := range groupRows {
		groups[g.Title] = g.ID
	}
	makers := map[string]uint{}
	var makerRows []models.Maker
	if err := dbConn.Find(&makerRows).Error; err != nil {
		return err
	}
	for _, m := range makerRows {
		makers[m.Title] = m.ID
	}
	vendors := map[string]uint{}
	var vendorRows []models.Vendor
	if err := dbConn.Find(&vendorRows).Error; err != nil {
		return err
	}
	for _, v := range vendorRows {
		vendors[v.Title] = v.ID
	}
	var measure models.Measure
	if err := dbConn.Where("title = ?", "шт.").First(&measure).Error; err != nil {
		return fmt.Errorf("seed items: measure missing: %w", err)
	}

	items := []demoItem{
		{"UG-A101", "Куртка Storm", "Куртки", "Ветрозащитная куртка", "Urban", "Север Логистик", 7990, 5, 10},
		{"UG-A115", "Куртка Polar", "Куртки", "Зимняя куртка", "Altitude", "Север Логистик", 9990, 3, 7},
		{"UG-A140", "Куртка City", "Куртки", "Легкая городская куртка", "Core", "Prime Supply", 6490, 12, 0},
		{"UG-B210", "Рюкзак Metro", "Рюкзаки", "Городской рюкзак 20л", "Altitude", "Prime Supply", 3990, 0, 18},
		{"UG-B240", "Рюкзак Trail", "Рюкзаки", "Треккинговый рюкзак 35л", "Urban", "City Stock", 6590, 6, 12},
		{"UG-B290", "Сумка Sling", "Рюкзаки", "Компактная сумка через плечо", "Core", "Север Логистик", 2790, 14, 0},
		{"UG-C330", "Кроссовки Dash", "Кроссовки", "Повседневные кроссовки", "Core", "City Stock", 5990, 8, 5},
		{"UG-C350", "Кроссовки Sprint", "Кроссовки", "Беговая модель", "Altitude", "Prime Supply", 7290, 4, 16},
		{"UG-C390", "Кеды Street", "Кроссовки", "Классические кеды", "Urban", "Север Логистик", 4890, 9, 0},
		{"UG-C420", "Кроссовки Aero", "Кроссовки", "Легкие кроссовки", "Altitude", "City Stock", 8190, 2, 20},
	}
	for _, it := range items {
		var existing models.StockItem
		if err := dbConn.Where("sku = ?", it.sku).First(&existing).Error; err != gorm.ErrRecordNotFound {
			continue
		}
		row := models.StockItem{
			SKU:       it.sku,
			Name:      it.name,
			GroupID:   groups[it.group],
			About:     it.about,
			MakerID:   makers[it.maker],
			VendorID:  vendors[it.vendor],
			BasePrice: it.price,
			MeasureID: measure.ID,
			Qty:       it.qty,
			Promo:     it.promo,
		}
		if err := dbConn.Create(&row).Error; err != nil {
			return fmt.Errorf("seed item %s: %w", it.sku, err)
		}
	}
	return nil
}

func seedDemoOrders(dbConn *gorm.DB) error {
	var count int64
	if err := dbConn.Model(&models.SalesOrder{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	states := map[string]uint{}
	var stateRows []models.OrderState
	if err := dbConn.Find(&stateRows).Error; err != nil {
		return err
	}
	for _, s := range stateRows {
		states[s.Title] = s.ID
	}
	locations := map[string]uint{}
	var locRows []models.PickupLocation
	if err := dbConn.Find(&locRows).Error; err != nil {
		return err
	}
	for _, l := range locRows {
		locations[l.Address] = l.ID
	}
	items := map[string]models.StockItem{}
	var itemRows []models.StockItem
	if err := dbConn.Find(&itemRows).Error; err != nil {
		return err
	}
	for _, it := range itemRows {
		items[it.SKU] = it
	}

	orders := []models.SalesOrder{
		{
			OrderCode: "SO-2026-001", CustomerName: "Климова Елена",
			StateID: states["Новый"], LocationID: locations["г. Москва, ул. Ленина, 10"],
			CreatedOn: "2026-02-20", IssuedOn: "2026-02-23",
			Lines: []models.SalesOrderLine{
				{ItemID: items["UG-A101"].ID, Qty: 1, UnitPrice: items["UG-A101"].BasePrice},
				{ItemID: items["UG-B240"].ID, Qty: 1, UnitPrice: items["UG-B240"].BasePrice},
			},
		},
		{
			OrderCode: "SO-2026-002", CustomerName: "Астахов Иван",
			StateID: states["Собирается"], LocationID: locations["г. Казань, ул. Баумана, 5"],
			CreatedOn: "2026-02-21", IssuedOn: "2026-02-24",
			Lines: []models.SalesOrderLine{
				{ItemID: items["UG-C350"].ID, Qty: 2, UnitPrice: items["UG-C350"].BasePrice},
				{ItemID: items["UG-B290"].ID, Qty: 1, UnitPrice: items["UG-B290"].BasePrice},
			},
		},
		{
			OrderCode: "SO-2026-003", CustomerName: "Воробьева Марина",
			StateID: states["Выдан"], LocationID: locations["г. Москва, ул. Ленина, 10"],
			CreatedOn: "2026-02-18", IssuedOn: "2026-02-22",
			Lines: []models.SalesOrderLine{
				{ItemID: items["UG-C390"].ID, Qty: 1, UnitPrice: items["UG-C390"].BasePrice},
			},
		},
	}
	for _, o := range orders {
		if err := dbConn.Create(&o).Error; err != nil {
			return fmt.Errorf("seed order %s: %w", o.OrderCode, err)
		}
	}
	return nil
}
