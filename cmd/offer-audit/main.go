package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nilecart/storefront-backend/internal/domain/pricing"
	"github.com/nilecart/storefront-backend/internal/infrastructure/config"
	"github.com/nilecart/storefront-backend/internal/infrastructure/storage"
)

func main() {
	var (
		configFile string
		showAll    bool
	)
	flag.StringVar(&configFile, "config", "config.yaml", "Configuration file path")
	flag.BoolVar(&showAll, "all", false, "Include products without a live offer in the pricing table")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadOrEnvWithPath(configFile)

	repo, err := storage.Open(cfg.Storage)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer func() { _ = repo.Close() }()

	ctx := context.Background()
	now := time.Now()

	offers, err := repo.ListOffers(ctx)
	if err != nil {
		log.Fatalf("list offers: %v", err)
	}
	products, err := repo.ListProducts(ctx)
	if err != nil {
		log.Fatalf("list products: %v", err)
	}

	fmt.Println("📊 OFFER AUDIT REPORT")
	fmt.Println("=" + strings.Repeat("=", 60))
	fmt.Printf("Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))

	fmt.Println("📈 OFFER HEALTH")
	fmt.Println(strings.Repeat("-", 40))

	var live, inactive, scheduled, expired, malformed int
	for i := range offers {
		o := offers[i].Pricing()
		switch {
		case !o.IsActive:
			inactive++
		case pricing.IsLive(o, now):
			live++
		case o.StartDate != nil && now.Before(*o.StartDate):
			scheduled++
		default:
			expired++
		}
		if badDate(offers[i].StartDate) || badDate(offers[i].EndDate) {
			malformed++
		}
	}

	fmt.Printf("Total Offers: %d\n", len(offers))
	fmt.Printf("Live Now: %d\n", live)
	fmt.Printf("Scheduled: %d\n", scheduled)
	fmt.Printf("Expired: %d\n", expired)
	fmt.Printf("Deactivated: %d\n", inactive)
	if malformed > 0 {
		fmt.Printf("⚠️  Offers with malformed dates (treated as open-ended): %d\n", malformed)
	}
	fmt.Println()

	fmt.Println("💰 RESOLVED PRICING")
	fmt.Println(strings.Repeat("-", 40))

	priced := storage.PricingOffers(offers)
	discounted := 0
	for i := range products {
		p := &products[i]
		quote := pricing.Resolve(p.Pricing(), priced, now)
		if quote.SelectedOffer == nil {
			if showAll {
				fmt.Printf("%-30s %10s (no live offer)\n", name(p), p.Price.StringFixed(2))
			}
			continue
		}
		discounted++
		fmt.Printf("%-30s %10s -> %10s (-%d%%, offer %s)\n",
			name(p),
			quote.BasePrice.StringFixed(2),
			quote.FinalPrice.StringFixed(2),
			quote.DiscountPercent,
			quote.SelectedOffer.ID,
		)
	}

	fmt.Println()
	fmt.Printf("Products: %d, currently discounted: %d\n", len(products), discounted)
}

// badDate reports a non-empty date string the pricing core cannot parse.
func badDate(s string) bool {
	return s != "" && pricing.ParseTime(s) == nil
}

func name(p *storage.Product) string {
	if p.NameEN != "" {
		return p.NameEN
	}
	return p.NameAR
}
