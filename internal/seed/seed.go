// Package seed loads a demo mall into an empty database: categories, floors,
// shops, offers and products wired together by name at insert time. It
// refuses to run over existing data so a demo reset is always explicit.
package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type categoryFixture struct {
	Name        string
	Description string
	Icon        string
	Color       string
}

type floorFixture struct {
	Level       int
	Name        string
	Description string
}

type shopFixture struct {
	Name          string
	Description   string
	CategoryName  string
	FloorLevel    int
	ShopNumber    string
	Owner         string
	Email         string
	Phone         string
	Address       string
	Rating        float64
	BusinessHours map[string]string
}

type offerFixture struct {
	Title           string
	Description     string
	ShopName        string
	OriginalPrice   float64
	DiscountedPrice float64
	StartDate       string
	EndDate         string
	Features        []string
}

type productFixture struct {
	Name         string
	Description  string
	Price        float64
	Image        string
	ShopName     string
	CategoryName string
}

var categories = []categoryFixture{
	{Name: "Fashion & Apparel", Description: "Clothing, accessories, and fashion items", Icon: "shirt", Color: "#e91e63"},
	{Name: "Electronics & Gadgets", Description: "Technology products and accessories", Icon: "cpu", Color: "#2196f3"},
	{Name: "Food & Beverages", Description: "Food products, beverages, and culinary items", Icon: "utensils", Color: "#ff9800"},
	{Name: "Beauty & Wellness", Description: "Beauty products, skincare, and wellness items", Icon: "heart", Color: "#9c27b0"},
	{Name: "Sports & Fitness", Description: "Sports equipment and fitness products", Icon: "dumbbell", Color: "#4caf50"},
	{Name: "Jewelry & Accessories", Description: "Jewelry, watches, and fashion accessories", Icon: "gem", Color: "#ffc107"},
	{Name: "Handicrafts & Artisans", Description: "Handmade items and artisanal products", Icon: "palette", Color: "#795548"},
	{Name: "Agricultural Products", Description: "Fresh produce, grains, and farming products", Icon: "leaf", Color: "#8bc34a"},
}

var floors = []floorFixture{
	{Level: 1, Name: "Main Marketplace", Description: "Popular merchant counters and featured products"},
	{Level: 2, Name: "Fashion District", Description: "Fashion, beauty, and lifestyle merchant counters"},
	{Level: 3, Name: "Tech Hub", Description: "Electronics, gadgets, and digital services"},
	{Level: 4, Name: "Food Court", Description: "Food, beverages, and culinary merchant counters"},
	{Level: 5, Name: "Artisan Corner", Description: "Handicrafts, traditional crafts, and artisanal products"},
}

var weekdayHours = map[string]string{
	"monday":    "9:00 AM - 8:00 PM",
	"tuesday":   "9:00 AM - 8:00 PM",
	"wednesday": "9:00 AM - 8:00 PM",
	"thursday":  "9:00 AM - 8:00 PM",
	"friday":    "9:00 AM - 9:00 PM",
	"saturday":  "10:00 AM - 8:00 PM",
	"sunday":    "11:00 AM - 6:00 PM",
}

var shops = []shopFixture{
	{
		Name: "TechTrend Mobile Store", Description: "Latest smartphones, tablets, and mobile accessories with expert consultation",
		CategoryName: "Electronics & Gadgets", FloorLevel: 1, ShopNumber: "MM-01",
		Owner: "Sarah Johnson", Email: "techtrend@supermall.com", Phone: "+1-555-0101",
		Address: "New York, USA", Rating: 4.6, BusinessHours: weekdayHours,
	},
	{
		Name: "Fashion Forward Boutique", Description: "Trendy fashion items and personalized styling services",
		CategoryName: "Fashion & Apparel", FloorLevel: 1, ShopNumber: "MM-02",
		Owner: "Maria Rodriguez", Email: "fashionforward@supermall.com", Phone: "+1-555-0102",
		Address: "Los Angeles, USA", Rating: 4.4, BusinessHours: weekdayHours,
	},
	{
		Name: "Elegant Threads", Description: "Premium clothing and accessories with custom tailoring",
		CategoryName: "Fashion & Apparel", FloorLevel: 2, ShopNumber: "FD-01",
		Owner: "James Chen", Email: "elegantthreads@supermall.com", Phone: "+1-555-0201",
		Address: "San Francisco, USA", Rating: 4.7, BusinessHours: weekdayHours,
	},
	{
		Name: "Gourmet Delights", Description: "Artisanal foods, gourmet ingredients, and cooking classes",
		CategoryName: "Food & Beverages", FloorLevel: 4, ShopNumber: "FC-01",
		Owner: "Antoine Dubois", Email: "gourmetdelights@supermall.com", Phone: "+1-555-0401",
		Address: "Chicago, USA", Rating: 4.8, BusinessHours: weekdayHours,
	},
	{
		Name: "Craft Corner Studio", Description: "Handmade ceramics, jewelry, and artisanal gifts",
		CategoryName: "Handicrafts & Artisans", FloorLevel: 5, ShopNumber: "AC-01",
		Owner: "Emma Wilson", Email: "craftcorner@supermall.com", Phone: "+1-555-0501",
		Address: "Portland, USA", Rating: 4.5, BusinessHours: weekdayHours,
	},
	{
		Name: "Organic Farm Fresh", Description: "Fresh organic produce straight from local farms",
		CategoryName: "Agricultural Products", FloorLevel: 1, ShopNumber: "MM-03",
		Owner: "Raj Patel", Email: "organicfarm@supermall.com", Phone: "+1-555-0103",
		Address: "Austin, USA", Rating: 4.3, BusinessHours: weekdayHours,
	},
}

var offers = []offerFixture{
	{
		Title: "Latest Smartphone - 15% Off", Description: "Brand new smartphones with extended warranty and free accessories",
		ShopName: "TechTrend Mobile Store", OriginalPrice: 999.00, DiscountedPrice: 849.15,
		StartDate: "2024-01-01", EndDate: "2024-12-31",
		Features: []string{"Latest Model", "Extended Warranty", "Free Accessories", "Tech Support"},
	},
	{
		Title: "Mobile Repair Service - 20% Off", Description: "Professional mobile repair services with quick turnaround",
		ShopName: "TechTrend Mobile Store", OriginalPrice: 100.00, DiscountedPrice: 80.00,
		StartDate: "2024-01-01", EndDate: "2024-12-31",
		Features: []string{"Professional Repair", "Quick Turnaround", "Warranty on Repairs", "Free Diagnosis"},
	},
	{
		Title: "Personal Styling Session - 25% Off", Description: "Professional styling consultation and wardrobe makeover",
		ShopName: "Fashion Forward Boutique", OriginalPrice: 200.00, DiscountedPrice: 150.00,
		StartDate: "2024-01-01", EndDate: "2024-12-31",
		Features: []string{"Personal Stylist", "Wardrobe Review", "Shopping Assistance"},
	},
	{
		Title: "Cooking Masterclass - 30% Off", Description: "Learn gourmet cooking techniques from a professional chef",
		ShopName: "Gourmet Delights", OriginalPrice: 150.00, DiscountedPrice: 105.00,
		StartDate: "2024-06-01", EndDate: "2024-12-31",
		Features: []string{"Professional Chef", "Hands-on Class", "Recipe Book Included"},
	},
	{
		Title: "Handmade Pottery Set - 10% Off", Description: "Beautifully crafted ceramic sets by local artisans",
		ShopName: "Craft Corner Studio", OriginalPrice: 120.00, DiscountedPrice: 108.00,
		StartDate: "2024-03-01", EndDate: "2024-09-30",
		Features: []string{"Handmade", "Local Artisans", "Gift Wrapping"},
	},
}

var products = []productFixture{
	{Name: "iPhone 15", Description: "Latest Apple smartphone with advanced features", Price: 999.00,
		Image: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400&h=300&fit=crop",
		ShopName: "TechTrend Mobile Store", CategoryName: "Electronics & Gadgets"},
	{Name: "Mobile Repair Service", Description: "Professional mobile repair services with quick turnaround", Price: 100.00,
		Image: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400&h=300&fit=crop",
		ShopName: "TechTrend Mobile Store", CategoryName: "Electronics & Gadgets"},
	{Name: "Personal Styling Session", Description: "Professional styling consultation and wardrobe makeover", Price: 200.00,
		Image: "https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=400&h=300&fit=crop",
		ShopName: "Fashion Forward Boutique", CategoryName: "Fashion & Apparel"},
	{Name: "Handmade Ceramic Mug", Description: "Beautifully crafted ceramic mug by local artisans", Price: 25.00,
		Image: "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=300&fit=crop",
		ShopName: "Craft Corner Studio", CategoryName: "Handicrafts & Artisans"},
	{Name: "Custom Jewelry Design", Description: "Personalized jewelry design and creation service", Price: 500.00,
		Image: "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=400&h=300&fit=crop",
		ShopName: "Craft Corner Studio", CategoryName: "Jewelry & Accessories"},
	{Name: "Cooking Masterclass", Description: "Learn gourmet cooking techniques from a professional chef", Price: 150.00,
		Image: "https://images.unsplash.com/photo-1504674900244-1b47f22f8f54?w=400&h=300&fit=crop",
		ShopName: "Gourmet Delights", CategoryName: "Food & Beverages"},
	{Name: "Organic Vegetable Basket", Description: "Fresh organic vegetables delivered weekly", Price: 40.00,
		Image: "https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?w=400&h=300&fit=crop",
		ShopName: "Organic Farm Fresh", CategoryName: "Agricultural Products"},
}

// ExistingCounts reports how much data is already present.
type ExistingCounts struct {
	Categories int `json:"categories"`
	Shops      int `json:"shops"`
	Offers     int `json:"offers"`
}

func (e ExistingCounts) HasData() bool {
	return e.Categories > 0 || e.Shops > 0 || e.Offers > 0
}

// CheckExisting counts the collections the seed would collide with.
func CheckExisting(ctx context.Context, db *sql.DB) (ExistingCounts, error) {
	var counts ExistingCounts
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&counts.Categories); err != nil {
		return counts, err
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM shops").Scan(&counts.Shops); err != nil {
		return counts, err
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM offers").Scan(&counts.Offers); err != nil {
		return counts, err
	}
	return counts, nil
}

// Clear removes every mall collection. User accounts survive a reset.
func Clear(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Children before parents.
	for _, table := range []string{"offers", "products", "shops", "floors", "categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Run inserts the demo fixtures in one transaction, resolving shop, category
// and floor references by fixture name the same way an admin would pick them
// from a dropdown. It fails if any data already exists.
func Run(ctx context.Context, db *sql.DB) error {
	counts, err := CheckExisting(ctx, db)
	if err != nil {
		return err
	}
	if counts.HasData() {
		return fmt.Errorf("database already has data (%d categories, %d shops, %d offers); clear it first",
			counts.Categories, counts.Shops, counts.Offers)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()

	categoryIDs := make(map[string]string, len(categories))
	for _, cat := range categories {
		id := uuid.NewString()
		categoryIDs[cat.Name] = id
		_, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, name, slug, description, icon, color, is_active, product_count, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, TRUE, 0, ?, ?)`,
			id, cat.Name, slug.Make(cat.Name), cat.Description, cat.Icon, cat.Color, now, now)
		if err != nil {
			return fmt.Errorf("seeding category %q: %w", cat.Name, err)
		}
	}

	floorIDs := make(map[int]string, len(floors))
	for _, floor := range floors {
		id := uuid.NewString()
		floorIDs[floor.Level] = id
		_, err := tx.ExecContext(ctx,
			`INSERT INTO floors (id, name, slug, level, description, is_active, store_count, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, TRUE, 0, ?, ?)`,
			id, floor.Name, slug.Make(floor.Name), floor.Level, floor.Description, now, now)
		if err != nil {
			return fmt.Errorf("seeding floor %q: %w", floor.Name, err)
		}
	}

	shopIDs := make(map[string]string, len(shops))
	shopNames := make(map[string]string, len(shops))
	for _, shop := range shops {
		categoryID, ok := categoryIDs[shop.CategoryName]
		if !ok {
			return fmt.Errorf("shop %q references unknown category %q", shop.Name, shop.CategoryName)
		}
		floorID, ok := floorIDs[shop.FloorLevel]
		if !ok {
			return fmt.Errorf("shop %q references unknown floor level %d", shop.Name, shop.FloorLevel)
		}

		id := uuid.NewString()
		shopIDs[shop.Name] = id
		shopNames[id] = shop.Name
		hoursJSON, _ := json.Marshal(shop.BusinessHours)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO shops (id, name, owner, email, phone, address, description, category_id, floor_id,
			                    floor_level, shop_number, rating, business_hours, is_active, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE, ?, ?)`,
			id, shop.Name, shop.Owner, shop.Email, shop.Phone, shop.Address, shop.Description,
			categoryID, floorID, shop.FloorLevel, shop.ShopNumber, shop.Rating, string(hoursJSON), now, now)
		if err != nil {
			return fmt.Errorf("seeding shop %q: %w", shop.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE floors SET store_count = store_count + 1 WHERE id = ?", floorID); err != nil {
			return fmt.Errorf("seeding shop %q: %w", shop.Name, err)
		}
	}

	for _, offer := range offers {
		shopID, ok := shopIDs[offer.ShopName]
		if !ok {
			slog.Warn("skipping offer with unknown shop", "title", offer.Title, "shop", offer.ShopName)
			continue
		}
		featuresJSON, _ := json.Marshal(offer.Features)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO offers (id, title, description, shop_id, original_price, discounted_price,
			                     start_date, end_date, terms, features, is_active, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, '', ?, TRUE, ?, ?)`,
			uuid.NewString(), offer.Title, offer.Description, shopID, offer.OriginalPrice, offer.DiscountedPrice,
			offer.StartDate, offer.EndDate, string(featuresJSON), now, now)
		if err != nil {
			return fmt.Errorf("seeding offer %q: %w", offer.Title, err)
		}
	}

	for _, product := range products {
		shopID, ok := shopIDs[product.ShopName]
		if !ok {
			slog.Warn("skipping product with unknown shop", "name", product.Name, "shop", product.ShopName)
			continue
		}
		categoryID, ok := categoryIDs[product.CategoryName]
		if !ok {
			slog.Warn("skipping product with unknown category", "name", product.Name, "category", product.CategoryName)
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (id, name, description, price, image, shop_id, category_id,
			                       shop_name, category_name, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), product.Name, product.Description, product.Price, product.Image,
			shopID, categoryID, shopNames[shopID], product.CategoryName, now, now)
		if err != nil {
			return fmt.Errorf("seeding product %q: %w", product.Name, err)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE categories SET product_count = product_count + 1 WHERE id = ?", categoryID); err != nil {
			return fmt.Errorf("seeding product %q: %w", product.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Info("demo data seeded",
		"categories", len(categories), "floors", len(floors),
		"shops", len(shops), "offers", len(offers), "products", len(products))
	return nil
}
