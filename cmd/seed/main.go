// Command seed provisions the demo admin and buyer accounts plus a small
// produce catalog. Safe to run repeatedly: existing rows are left alone.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/KingDev1404/freshbulk/internal/config"
	"github.com/KingDev1404/freshbulk/internal/database"
	"github.com/KingDev1404/freshbulk/internal/hash"
	"github.com/KingDev1404/freshbulk/internal/models"
)

var products = []models.Product{
	{
		Name:        "Fresh Carrots",
		Description: "Locally grown organic carrots. Sweet and crunchy, perfect for salads, juicing, or cooking.",
		Price:       decimal.RequireFromString("1.99"),
		ImageURL:    "https://images.unsplash.com/photo-1598170845058-32b9d6a5da37",
		Category:    "Vegetables",
	},
	{
		Name:        "Organic Apples",
		Description: "Sweet and crisp organic apples. Freshly picked from local orchards.",
		Price:       decimal.RequireFromString("2.49"),
		ImageURL:    "https://images.unsplash.com/photo-1567306226416-28f0efdc88ce",
		Category:    "Fruits",
	},
	{
		Name:        "Fresh Spinach",
		Description: "Nutrient-rich spinach leaves. Perfect for salads, smoothies, or cooking.",
		Price:       decimal.RequireFromString("3.99"),
		ImageURL:    "https://images.unsplash.com/photo-1576045057995-568f588f82fb",
		Category:    "Vegetables",
	},
	{
		Name:        "Ripe Bananas",
		Description: "Sweet and energy-packed bananas. Great for smoothies, baking, or as a quick snack.",
		Price:       decimal.RequireFromString("1.29"),
		ImageURL:    "https://images.unsplash.com/photo-1571771894821-ce9b6c11b08e",
		Category:    "Fruits",
	},
	{
		Name:        "Red Potatoes",
		Description: "Versatile red potatoes with a smooth texture. Ideal for roasting, mashing, or salads.",
		Price:       decimal.RequireFromString("0.99"),
		ImageURL:    "https://images.unsplash.com/photo-1518977676601-b53f82aba655",
		Category:    "Vegetables",
	},
	{
		Name:        "Fresh Strawberries",
		Description: "Juicy and sweet strawberries. Perfect for desserts or eating fresh.",
		Price:       decimal.RequireFromString("4.99"),
		ImageURL:    "https://images.unsplash.com/photo-1543158181-e6f9f6712055",
		Category:    "Fruits",
	},
}

func seedUser(db *gorm.DB, name, email, password, role string) error {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("user %s already present", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{Name: name, Email: email, PasswordHash: pwHash, Role: role}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	log.Printf("user %s created (%s)", email, role)
	return nil
}

func seedProduct(db *gorm.DB, p models.Product) error {
	var existing models.Product
	err := db.Where("name = ?", p.Name).First(&existing).Error
	if err == nil {
		log.Printf("product %q already present", p.Name)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := db.Create(&p).Error; err != nil {
		return err
	}
	log.Printf("product %q created", p.Name)
	return nil
}

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	if err := seedUser(db, "Admin User", "admin@example.com", "admin123", models.RoleAdmin); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedUser(db, "Test User", "user@example.com", "user123", models.RoleBuyer); err != nil {
		log.Fatalf("seed buyer: %v", err)
	}

	for _, p := range products {
		if err := seedProduct(db, p); err != nil {
			log.Fatalf("seed product %q: %v", p.Name, err)
		}
	}

	log.Println("seed completed")
}
