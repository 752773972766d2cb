// internal/application/admin/seed.go
package admin

import (
	"context"
	"fmt"
	"log"

	productdom "lmye/internal/domain/product"
)

// SeedProducts inserts the initial demo catalog, one product at a time.
// Used when (re)bootstrapping an empty store.
func (s *Service) SeedProducts(ctx context.Context) error {
	for _, p := range seedProducts() {
		if _, err := s.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("admin: seed products: %w", err)
		}
	}
	log.Printf("[admin] ✅ seeded %d products", len(seedProducts()))
	return nil
}

func seedProducts() []productdom.Product {
	return []productdom.Product{
		{
			Brand:       "La Marque y Est",
			Type:        "Le Muse",
			Category:    "Sac",
			Price:       "220€",
			Description: "Un sac cabas élégant et spacieux, parfait pour toutes les occasions. Fabriqué avec soin dans notre atelier.",
			Images: []string{
				"assets/images/le-muse-1.jpg",
				"assets/images/le-muse-2.jpg",
				"assets/images/le-muse-3.jpg",
			},
			Sizes:      []string{"Taille Unique"},
			Badge:      "Nouveauté",
			BadgeColor: "accent-purple",
			Active:     productdom.BoolPtr(true),
			IsNew:      true,
		},
		{
			Brand:       "La Marque y Est",
			Type:        "L'Éclat",
			Category:    "Sac",
			Price:       "180€",
			Description: "Un sac à main raffiné avec des finitions dorées. L'élégance à la française.",
			Images: []string{
				"assets/images/l-eclat-1.jpg",
				"assets/images/l-eclat-2.jpg",
			},
			Sizes:      []string{"Taille Unique"},
			Badge:      "Vente Flash",
			BadgeColor: "accent-pink",
			Active:     productdom.BoolPtr(true),
			IsNew:      false,
		},
		{
			Brand:       "La Marque y Est",
			Type:        "La Perle",
			Category:    "Pochette",
			Price:       "85€",
			Description: "Une pochette délicate pour vos soirées. Légère et sophistiquée.",
			Images: []string{
				"assets/images/la-perle-1.jpg",
			},
			Sizes:  []string{"Taille Unique"},
			Active: productdom.BoolPtr(true),
			IsNew:  false,
		},
	}
}
