package recipes

import (
	"time"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
)

// Seed returns the built-in recipe catalog. IDs are fixed so the in-memory
// backend and the Postgres seed migration always agree.
func Seed() []storage.Recipe {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	return []storage.Recipe{
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a001"),
			Name:         "Grilled Chicken Bowl",
			Category:     "savory",
			CaloriesKcal: 520,
			ProteinG:     42,
			CarbsG:       48,
			FatsG:        16,
			Ingredients: []storage.Ingredient{
				{Name: "Chicken breast", Amount: "200 g", Category: "meat"},
				{Name: "Rice", Amount: "100 g", Category: "grains"},
				{Name: "Broccoli", Amount: "150 g", Category: "produce"},
				{Name: "Olive oil", Amount: "1 tbsp", Category: "pantry"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a002"),
			Name:         "Beef and Sweet Potato",
			Category:     "savory",
			CaloriesKcal: 610,
			ProteinG:     38,
			CarbsG:       52,
			FatsG:        24,
			Ingredients: []storage.Ingredient{
				{Name: "Ground beef", Amount: "180 g", Category: "meat"},
				{Name: "Sweet potato", Amount: "250 g", Category: "produce"},
				{Name: "Onion", Amount: "1", Category: "produce"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a003"),
			Name:         "Salmon with Quinoa",
			Category:     "savory",
			CaloriesKcal: 560,
			ProteinG:     36,
			CarbsG:       40,
			FatsG:        26,
			Ingredients: []storage.Ingredient{
				{Name: "Salmon fillet", Amount: "170 g", Category: "fish"},
				{Name: "Quinoa", Amount: "90 g", Category: "grains"},
				{Name: "Lemon", Amount: "1/2", Category: "produce"},
				{Name: "Asparagus", Amount: "120 g", Category: "produce"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a004"),
			Name:         "Lentil Curry",
			Category:     "savory",
			CaloriesKcal: 480,
			ProteinG:     22,
			CarbsG:       64,
			FatsG:        14,
			Ingredients: []storage.Ingredient{
				{Name: "Red lentils", Amount: "150 g", Category: "pantry"},
				{Name: "Coconut milk", Amount: "200 ml", Category: "pantry"},
				{Name: "Curry paste", Amount: "2 tbsp", Category: "pantry"},
				{Name: "Spinach", Amount: "100 g", Category: "produce"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a005"),
			Name:         "Turkey Wrap",
			Category:     "savory",
			CaloriesKcal: 430,
			ProteinG:     32,
			CarbsG:       38,
			FatsG:        15,
			Ingredients: []storage.Ingredient{
				{Name: "Turkey slices", Amount: "120 g", Category: "meat"},
				{Name: "Tortilla", Amount: "1", Category: "bakery"},
				{Name: "Lettuce", Amount: "40 g", Category: "produce"},
				{Name: "Greek yogurt", Amount: "2 tbsp", Category: "dairy"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a006"),
			Name:         "Veggie Omelette",
			Category:     "savory",
			CaloriesKcal: 380,
			ProteinG:     26,
			CarbsG:       10,
			FatsG:        26,
			Ingredients: []storage.Ingredient{
				{Name: "Eggs", Amount: "3", Category: "dairy"},
				{Name: "Bell pepper", Amount: "1/2", Category: "produce"},
				{Name: "Cheese", Amount: "30 g", Category: "dairy"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a007"),
			Name:         "Protein Pancakes",
			Category:     "snack",
			CaloriesKcal: 350,
			ProteinG:     28,
			CarbsG:       36,
			FatsG:        10,
			Ingredients: []storage.Ingredient{
				{Name: "Oats", Amount: "60 g", Category: "grains"},
				{Name: "Protein powder", Amount: "30 g", Category: "pantry"},
				{Name: "Eggs", Amount: "2", Category: "dairy"},
				{Name: "Banana", Amount: "1", Category: "produce"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a008"),
			Name:         "Greek Yogurt Parfait",
			Category:     "snack",
			CaloriesKcal: 280,
			ProteinG:     18,
			CarbsG:       34,
			FatsG:        8,
			Ingredients: []storage.Ingredient{
				{Name: "Greek yogurt", Amount: "200 g", Category: "dairy"},
				{Name: "Granola", Amount: "40 g", Category: "pantry"},
				{Name: "Blueberries", Amount: "80 g", Category: "produce"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a009"),
			Name:         "Trail Mix",
			Category:     "snack",
			CaloriesKcal: 310,
			ProteinG:     9,
			CarbsG:       26,
			FatsG:        20,
			Ingredients: []storage.Ingredient{
				{Name: "Almonds", Amount: "30 g", Category: "pantry"},
				{Name: "Raisins", Amount: "25 g", Category: "pantry"},
				{Name: "Dark chocolate", Amount: "15 g", Category: "pantry"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a00a"),
			Name:         "Hummus and Carrots",
			Category:     "snack",
			CaloriesKcal: 220,
			ProteinG:     7,
			CarbsG:       24,
			FatsG:        11,
			Ingredients: []storage.Ingredient{
				{Name: "Hummus", Amount: "80 g", Category: "pantry"},
				{Name: "Carrots", Amount: "150 g", Category: "produce"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a00b"),
			Name:         "Banana Oat Cookies",
			Category:     "dessert",
			CaloriesKcal: 260,
			ProteinG:     6,
			CarbsG:       42,
			FatsG:        8,
			Ingredients: []storage.Ingredient{
				{Name: "Banana", Amount: "2", Category: "produce"},
				{Name: "Oats", Amount: "80 g", Category: "grains"},
				{Name: "Honey", Amount: "1 tbsp", Category: "pantry"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a00c"),
			Name:         "Chocolate Chia Pudding",
			Category:     "dessert",
			CaloriesKcal: 290,
			ProteinG:     10,
			CarbsG:       28,
			FatsG:        16,
			Ingredients: []storage.Ingredient{
				{Name: "Chia seeds", Amount: "30 g", Category: "pantry"},
				{Name: "Milk", Amount: "250 ml", Category: "dairy"},
				{Name: "Cocoa powder", Amount: "1 tbsp", Category: "pantry"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a00d"),
			Name:         "Baked Apple",
			Category:     "dessert",
			CaloriesKcal: 180,
			ProteinG:     1,
			CarbsG:       40,
			FatsG:        3,
			Ingredients: []storage.Ingredient{
				{Name: "Apple", Amount: "1", Category: "produce"},
				{Name: "Cinnamon", Amount: "1 tsp", Category: "pantry"},
				{Name: "Walnuts", Amount: "15 g", Category: "pantry"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a00e"),
			Name:         "Berry Smoothie",
			Category:     "drink",
			CaloriesKcal: 240,
			ProteinG:     12,
			CarbsG:       42,
			FatsG:        4,
			Ingredients: []storage.Ingredient{
				{Name: "Frozen berries", Amount: "150 g", Category: "produce"},
				{Name: "Milk", Amount: "250 ml", Category: "dairy"},
				{Name: "Honey", Amount: "1 tsp", Category: "pantry"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a00f"),
			Name:         "Green Juice",
			Category:     "drink",
			CaloriesKcal: 120,
			ProteinG:     3,
			CarbsG:       26,
			FatsG:        1,
			Ingredients: []storage.Ingredient{
				{Name: "Kale", Amount: "60 g", Category: "produce"},
				{Name: "Apple", Amount: "1", Category: "produce"},
				{Name: "Ginger", Amount: "5 g", Category: "produce"},
			},
			CreatedAt: created,
		},
		{
			ID:           uuid.MustParse("1f0c2a44-9b1e-4c53-8f2a-0d3b64d1a010"),
			Name:         "Protein Shake",
			Category:     "drink",
			CaloriesKcal: 210,
			ProteinG:     30,
			CarbsG:       14,
			FatsG:        4,
			Ingredients: []storage.Ingredient{
				{Name: "Protein powder", Amount: "30 g", Category: "pantry"},
				{Name: "Milk", Amount: "300 ml", Category: "dairy"},
			},
			CreatedAt: created,
		},
	}
}
