package mock

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"skincat/internal/db"
	"skincat/internal/fixture"
	applog "skincat/internal/log"
)

var instance atomic.Int64

// New returns an in-memory sqlite database seeded with a small skincare
// catalog. Every call gets its own database.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:skincat-mock-%d?mode=memory&cache=shared", instance.Add(1))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	// The in-memory database lives only while a connection holds it open.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

// Fixture prepares the seed dataset.
func Fixture() (*fixture.Fixture, error) {
	return fixture.Prepare(Ingredients(), Items())
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	f, err := Fixture()
	if err != nil {
		return fmt.Errorf("prepare seed fixture: %w", err)
	}
	if _, err := fixture.Load(ctx, database, f); err != nil {
		return fmt.Errorf("load seed fixture: %w", err)
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}

func symbol(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func image(id string) *string { return &id }

// Ingredients is the raw ingredient table of the seed catalog.
func Ingredients() []fixture.IngredientRecord {
	return []fixture.IngredientRecord{
		{Name: "Glycerin", Oily: symbol("O"), Dry: symbol("O"), Sensitive: symbol("")},
		{Name: "Glycerine-X", Oily: symbol("X"), Dry: symbol(""), Sensitive: symbol("O")},
		{Name: "Alcohol", Oily: symbol("O"), Dry: symbol("X"), Sensitive: symbol("X")},
		{Name: "Ceramide", Oily: symbol(""), Dry: symbol("O"), Sensitive: symbol("O")},
		{Name: "Niacinamide", Oily: symbol("O"), Dry: symbol(""), Sensitive: symbol("")},
		{Name: "Fragrance", Oily: symbol(""), Dry: symbol(""), Sensitive: symbol("X")},
		{Name: "Zinc Oxide", Oily: symbol("O"), Dry: symbol(""), Sensitive: symbol("O")},
		{Name: "Shea Butter", Oily: symbol("X"), Dry: symbol("O"), Sensitive: symbol("")},
	}
}

// Items is the raw item table of the seed catalog.
func Items() []fixture.ItemRecord {
	return []fixture.ItemRecord{
		{ID: 1, ImageID: image("daily-toner"), Name: "Daily Toner", Price: "12000", Gender: "all", Category: "skincare", Ingredients: "Glycerin,Alcohol", MonthlySales: 300},
		{ID: 2, ImageID: image("barrier-cream"), Name: "Barrier Cream", Price: "25000", Gender: "female", Category: "skincare", Ingredients: "Ceramide,Shea Butter,Glycerin", MonthlySales: 120},
		{ID: 3, ImageID: image("calming-serum"), Name: "Calming Serum", Price: "18000", Gender: "all", Category: "skincare", Ingredients: "Ceramide,Niacinamide", MonthlySales: 210},
		{ID: 4, ImageID: image("oil-control-gel"), Name: "Oil Control Gel", Price: "9000", Gender: "male", Category: "skincare", Ingredients: "Niacinamide,Alcohol,Zinc Oxide", MonthlySales: 80},
		{ID: 5, ImageID: image("rich-balm"), Name: "Rich Balm", Price: "31000", Gender: "female", Category: "skincare", Ingredients: "Shea Butter,Glycerine-X", MonthlySales: 40},
		{ID: 6, ImageID: image("mild-sun-stick"), Name: "Mild Sun Stick", Price: "15000", Gender: "all", Category: "suncare", Ingredients: "Zinc Oxide,Ceramide", MonthlySales: 95},
		{ID: 7, ImageID: image("sport-sun-spray"), Name: "Sport Sun Spray", Price: "13000", Gender: "all", Category: "suncare", Ingredients: "Zinc Oxide,Alcohol,Fragrance", MonthlySales: 60},
		{ID: 8, ImageID: image("tone-up-sunscreen"), Name: "Tone-up Sunscreen", Price: "15000", Gender: "female", Category: "suncare", Ingredients: "Zinc Oxide,Glycerin", MonthlySales: 150},
		{ID: 9, ImageID: image("sheet-mask"), Name: "Sheet Mask", Price: "3000", Gender: "all", Category: "maskpack", Ingredients: "Glycerin,Fragrance", MonthlySales: 500},
		{ID: 10, ImageID: image("sleeping-pack"), Name: "Sleeping Pack", Price: "22000", Gender: "all", Category: "maskpack", Ingredients: "Ceramide,Glycerin", MonthlySales: 70},
		{ID: 11, ImageID: image("clay-mask"), Name: "Clay Mask", Price: "8000", Gender: "all", Category: "maskpack", Ingredients: "Niacinamide,Zinc Oxide", MonthlySales: 90},
		{ID: 12, ImageID: image("hydra-essence"), Name: "Hydra Essence", Price: "18000", Gender: "all", Category: "skincare", Ingredients: "Glycerin,Ceramide", MonthlySales: 260},
		{ID: 13, ImageID: image("sample-lotion"), Name: "Sample Lotion", Price: "", Gender: "", Category: "skincare", Ingredients: "Glycerin", MonthlySales: 5},
		{ID: 14, Name: "Mystery Kit", Price: "1000", Ingredients: "Fragrance"},
	}
}
