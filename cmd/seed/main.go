package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ecokabadi/ewaste-backend/internal/config"
	"github.com/ecokabadi/ewaste-backend/internal/db"
	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

type seedReward struct {
	Title       string
	Description string
	Points      int64
	Stock       *int64
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(&model.Profile{}, &model.KarmaItem{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	canSeed, err := shouldSeed(ctx, gdb)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("karma store already populated; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	rewards := buildSeedRewards()
	err = gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM karma_store`).Error; err != nil {
			return fmt.Errorf("clear karma_store: %w", err)
		}
		for idx, r := range rewards {
			desc := r.Description
			imageURL := picsumURL(r.Title, idx+1)
			item := model.KarmaItem{
				ID:          uuid.NewString(),
				Title:       strings.TrimSpace(r.Title),
				Description: &desc,
				Points:      r.Points,
				Stock:       r.Stock,
				ImageURL:    &imageURL,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("insert reward %q: %w", r.Title, err)
			}
		}
		return seedDemoProfiles(tx)
	})
	if err != nil {
		return err
	}

	log.Printf("seeded %d rewards", len(rewards))
	return nil
}

func buildSeedRewards() []seedReward {
	limited := func(n int64) *int64 { return &n }
	return []seedReward{
		{Title: "Cloth Shopping Bag", Description: "Reusable cotton bag to replace single-use plastic.", Points: 100, Stock: nil},
		{Title: "Steel Water Bottle", Description: "1L insulated bottle, keeps drinks cold for 12 hours.", Points: 250, Stock: limited(40)},
		{Title: "Plant a Tree in Your Name", Description: "We plant a sapling and send you a photo with GPS tag.", Points: 300, Stock: nil},
		{Title: "Mobile Recharge ₹100", Description: "Talktime voucher for any major carrier.", Points: 400, Stock: limited(100)},
		{Title: "LED Bulb 2-Pack", Description: "9W energy-saving bulbs, B22 base.", Points: 500, Stock: limited(60)},
		{Title: "Compost Starter Kit", Description: "Counter-top bin plus starter culture for kitchen waste.", Points: 750, Stock: limited(25)},
		{Title: "Movie Ticket Voucher", Description: "Single ticket valid at partner cinemas.", Points: 900, Stock: limited(30)},
		{Title: "Solar Power Bank", Description: "10,000 mAh power bank with solar trickle charging.", Points: 1500, Stock: limited(15)},
		{Title: "Smart Watch", Description: "Fitness band with heart-rate and sleep tracking.", Points: 3000, Stock: limited(5)},
	}
}

func seedDemoProfiles(tx *gorm.DB) error {
	if !strings.EqualFold(os.Getenv("SEED_DEMO_PROFILES"), "true") {
		return nil
	}
	profiles := []model.Profile{
		{ID: uuid.NewString(), Name: "Asha Demo", UserType: model.UserTypeUser, KarmaPoints: 500},
		{ID: uuid.NewString(), Name: "Ravi Kabadiwalla", UserType: model.UserTypeKabadiwala},
		{ID: uuid.NewString(), Name: "GreenCycle Recycler", UserType: model.UserTypeRecycler},
	}
	for i := range profiles {
		if err := tx.Create(&profiles[i]).Error; err != nil {
			return fmt.Errorf("insert profile %q: %w", profiles[i].Name, err)
		}
	}
	return nil
}

func shouldSeed(ctx context.Context, gdb *gorm.DB) (bool, error) {
	var cnt int64
	if err := gdb.WithContext(ctx).Model(&model.KarmaItem{}).Count(&cnt).Error; err != nil {
		return false, fmt.Errorf("count rewards: %w", err)
	}
	if cnt == 0 {
		return true, nil
	}
	force := os.Getenv("FORCE_SEED")
	return strings.EqualFold(force, "true"), nil
}

func picsumURL(title string, idx int) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(title), " ", "-"))
	return fmt.Sprintf("https://picsum.photos/seed/%s-%d/600/600", slug, idx)
}
