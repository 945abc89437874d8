package catalog

import (
	"fmt"
	"math/rand"
	"time"

	"hooks/internal/domain"
)

var categories = []string{
	"vr", "audio", "monitors", "accessories", "smart-home", "cameras",
	"networking", "laptops", "gaming", "phones", "tablets", "printers",
}

var productTypes = map[string][]string{
	"vr":          {"VR Headset", "AR Glasses", "Motion Controllers", "VR Accessories"},
	"audio":       {"Headphones", "Speakers", "Microphones", "Sound Cards", "Earbuds"},
	"monitors":    {"Gaming Monitor", "Ultrawide Display", "4K Monitor", "Professional Display"},
	"accessories": {"Gaming Mouse", "Mechanical Keyboard", "Mouse Pad", "USB Hub"},
	"smart-home":  {"Smart Speaker", "Security Camera", "Smart Thermostat", "Smart Lights"},
	"cameras":     {"DSLR Camera", "Mirrorless Camera", "Action Camera", "Webcam"},
	"networking":  {"WiFi Router", "Network Switch", "Mesh System", "Network Card"},
	"laptops":     {"Gaming Laptop", "Ultrabook", "Workstation", "Chromebook"},
	"gaming":      {"Gaming Console", "Controller", "Gaming Chair", "Gaming Desk"},
	"phones":      {"Smartphone", "Phone Case", "Screen Protector", "Phone Charger"},
	"tablets":     {"iPad", "Android Tablet", "Drawing Tablet", "Tablet Stand"},
	"printers":    {"Laser Printer", "3D Printer", "Photo Printer", "All-in-One"},
}

var brands = []string{"TechPro", "NextGen", "Elite", "Prime", "Ultra", "Pro", "Max", "Advanced"}
var models = []string{"X", "Pro", "Elite", "Plus", "Max", "Ultra", "S", "Premium"}

var imageURLs = map[string]string{
	"vr":          "https://images.unsplash.com/photo-1622979135225-d2ba269cf1ac",
	"audio":       "https://images.unsplash.com/photo-1618366712010-f4ae9c647dcb",
	"monitors":    "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf",
	"accessories": "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46",
	"smart-home":  "https://images.unsplash.com/photo-1558002038-1055907df827",
	"cameras":     "https://images.unsplash.com/photo-1589872307379-0ffdf9829123",
	"networking":  "https://images.unsplash.com/photo-1648412814506-fb5c0c0f59cf",
	"laptops":     "https://images.unsplash.com/photo-1496181133206-80ce9b88a853",
	"gaming":      "https://images.unsplash.com/photo-1542751371-adc38448a05e",
	"phones":      "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9",
	"tablets":     "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0",
	"printers":    "https://images.unsplash.com/photo-1612815154858-60aa4c59eaa6",
}

// Generate produces 800-1000 synthetic products with sequential ids starting
// at 1. Pure function of the rand source; pass a seeded source for stable
// fixtures in tests.
func Generate(rng *rand.Rand) []domain.Product {
	now := time.Now()
	target := 800 + rng.Intn(201)

	products := make([]domain.Product, 0, target)
	for id := int64(1); len(products) < target; id++ {
		category := categories[rng.Intn(len(categories))]
		types := productTypes[category]
		name := fmt.Sprintf("%s %s %s %d",
			brands[rng.Intn(len(brands))],
			types[rng.Intn(len(types))],
			models[rng.Intn(len(models))],
			2024+rng.Intn(2),
		)

		products = append(products, domain.Product{
			ID:   id,
			Name: name,
			Description: fmt.Sprintf(
				"Experience the next level of technology with the %s. Featuring advanced capabilities and premium build quality.",
				name),
			Price:     float64(50 + rng.Intn(1951)),
			ImageURL:  imageURLs[category] + "?auto=format&fit=crop&w=800&q=80",
			Category:  category,
			Stock:     1 + rng.Intn(100),
			CreatedAt: now.AddDate(0, 0, -rng.Intn(30)),
		})
	}
	return products
}
