package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mytheresa/inventory-catalog/app/categories"
	"github.com/mytheresa/inventory-catalog/app/items"
	"github.com/mytheresa/inventory-catalog/models"
)

type seedItem struct {
	category string
	draft    items.Draft
}

var seedCategories = []string{"Sony", "Microsoft", "Nintendo"}

var seedItems = []seedItem{
	{"Sony", items.Draft{
		ProductName: "Playstation 5",
		Description: "The PlayStation 5's main hardware features include a solid-state drive customized for high-speed data streaming, an AMD GPU capable of 4K resolution display at up to 120 frames per second and hardware-accelerated ray tracing for realistic lighting and reflections.",
		Price:       "400",
		Quantity:    "20",
	}},
	{"Sony", items.Draft{
		ProductName: "Playstation 4",
		Description: "The console features a hardware on-the-fly zlib decompression module. The original PS4 model supports up to 1080p and 1080i video standards, while the Pro model supports 4K resolution. The console includes a 500 gigabyte hard drive for additional storage, which can be upgraded by the user.",
		Price:       "300",
		Quantity:    "20",
	}},
	{"Microsoft", items.Draft{
		ProductName: "Xbox one",
		Description: "The Xbox One is a home video game console developed by Microsoft. Announced in May 2013, it is the successor to Xbox 360.",
		Price:       "150",
		Quantity:    "10",
	}},
	{"Microsoft", items.Draft{
		ProductName: "Xbox series x",
		Description: "Both Xbox Series X console deliver next-generation capabilities powered by the Xbox Velocity Architecture, such as faster loading, the ability to seamlessly switch between multiple games with Quick Resume, richer and more dynamic worlds, and frame rates up to 120 FPS.",
		Price:       "399",
		Quantity:    "200",
	}},
	{"Nintendo", items.Draft{
		ProductName: "Nintendo switch",
		Description: "The Switch is a tablet that can either be docked for home console use or used as a portable device, making it a hybrid console.",
		Price:       "199",
		Quantity:    "300",
	}},
	{"Nintendo", items.Draft{
		ProductName: "Test item 1",
		Description: "Summary of test item 1",
		Price:       "50",
		Quantity:    "2",
	}},
	{"Sony", items.Draft{
		ProductName: "Test item 2",
		Description: "Summary of test item 2",
		Price:       "2.99",
		Quantity:    "100",
	}},
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the catalog with sample categories and items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, db, closeDB, err := opts.setup()
			if err != nil {
				return err
			}
			defer closeDB()

			return seed(cmd.Context(), db, logger)
		},
	}
}

// seed goes through the services so sample data obeys the same rules as form input.
// Categories are matched by name; items are only added to an empty catalog.
func seed(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	categoriesRepo := models.NewCategoriesRepository(db)
	itemsRepo := models.NewItemsRepository(db)
	categoryService := categories.NewService(categoriesRepo, itemsRepo)
	itemService := items.NewService(itemsRepo, categoriesRepo)

	ids := make(map[string]uint, len(seedCategories))
	for _, name := range seedCategories {
		outcome, err := categoryService.Create(ctx, categories.Draft{Name: name})
		if err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
		if !outcome.Valid() {
			return fmt.Errorf("seed category %q: %s", name, strings.Join(outcome.Errors.Messages(), "; "))
		}
		ids[name] = outcome.Category.ID
		if outcome.Existing {
			logger.Info("category already present", "name", name, "id", outcome.Category.ID)
			continue
		}
		logger.Info("added category", "name", name, "id", outcome.Category.ID)
	}

	total, err := itemsRepo.Count(ctx, models.ItemFilters{})
	if err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if total > 0 {
		logger.Info("items already present, skipping", "count", total)
		return nil
	}

	for _, s := range seedItems {
		draft := s.draft
		draft.Category = []string{fmt.Sprint(ids[s.category])}

		outcome, err := itemService.Create(ctx, draft)
		if err != nil {
			return fmt.Errorf("seed item %q: %w", draft.ProductName, err)
		}
		if !outcome.Valid() {
			return fmt.Errorf("seed item %q: %s", draft.ProductName, strings.Join(outcome.Errors.Messages(), "; "))
		}
		logger.Info("added item", "name", draft.ProductName, "id", outcome.Item.ID)
	}
	return nil
}
