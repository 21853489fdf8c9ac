// Package seeders fills the catalog with demo data for local development.
package seeders

import (
	"context"
	"fmt"

	"github.com/arifhossen/shopd/app/models"
	"github.com/arifhossen/shopd/app/repositories"
)

const demoOwner = "demo@shop.local"

var demoProducts = []models.Product{
	{Email: demoOwner, ProductName: "Air Runner 2", Price: 129.99, Quantity: 40, ReleaseDate: "2025-03-14", Brand: "Nike", Model: "AR-2", Style: "Running", Size: "42", Color: "White", Material: "Mesh"},
	{Email: demoOwner, ProductName: "Classic Court", Price: 89.50, Quantity: 25, ReleaseDate: "2024-11-02", Brand: "Adidas", Model: "CC-9", Style: "Casual", Size: "43", Color: "Black", Material: "Leather"},
	{Email: demoOwner, ProductName: "Trail Blazer", Price: 149.00, Quantity: 12, ReleaseDate: "2025-06-20", Brand: "Salomon", Model: "TB-X", Style: "Hiking", Size: "44", Color: "Green", Material: "Gore-Tex"},
}

// Run inserts the demo products. The store connection must already be
// established.
func Run(ctx context.Context) error {
	repo := repositories.NewProductRepository()

	for _, p := range demoProducts {
		if _, err := repo.Insert(ctx, p); err != nil {
			return fmt.Errorf("seed %q: %w", p.ProductName, err)
		}
	}

	fmt.Printf("Seeded %d products for %s\n", len(demoProducts), demoOwner)
	return nil
}
