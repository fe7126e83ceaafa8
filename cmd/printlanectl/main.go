// printlanectl - operator CLI for the Printlane bridge.
// Parses a platform order payload from a file and previews or pushes the
// resulting Printlane API payload. Useful for replaying a webhook delivery
// a store reported as missing.
//
// Usage:
//
//	printlanectl -platform woocommerce -order order.json preview
//	printlanectl -platform woocommerce -order order.json create
//	printlanectl -platform shopify -order order.json update
//
// Credentials come from the environment (PRINTLANE_SHOP_ID, PRINTLANE_API_KEY,
// PRINTLANE_API_SECRET) or a .env file in the working directory.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"printlane-bridge/internal/adapter"
	"printlane-bridge/internal/printlane"
	"printlane-bridge/internal/shopify"
	"printlane-bridge/internal/woocommerce"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	platformName := flag.String("platform", "woocommerce", "order payload format: woocommerce or shopify")
	orderPath := flag.String("order", "", "path to the platform order JSON (webhook body)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout for API calls")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "preview"
	}
	if *orderPath == "" {
		return fmt.Errorf("-order is required")
	}

	_ = godotenv.Load()

	var platform adapter.Platform
	switch *platformName {
	case "woocommerce":
		platform = &woocommerce.Platform{}
	case "shopify":
		platform = &shopify.Platform{}
	default:
		return fmt.Errorf("unsupported platform: %s", *platformName)
	}

	body, err := os.ReadFile(*orderPath)
	if err != nil {
		return fmt.Errorf("reading order file: %w", err)
	}
	order, err := platform.ParseOrder(body)
	if err != nil {
		return fmt.Errorf("parsing order: %w", err)
	}

	client := printlane.New(printlane.Config{
		ShopID:      os.Getenv("PRINTLANE_SHOP_ID"),
		APIKey:      os.Getenv("PRINTLANE_API_KEY"),
		APISecret:   os.Getenv("PRINTLANE_API_SECRET"),
		BaseURL:     os.Getenv("PRINTLANE_API_BASE_URL"),
		StoreDomain: os.Getenv("STORE_DOMAIN"),
	})

	switch command {
	case "preview":
		return printJSON(client.Payload(order))

	case "create", "update":
		if os.Getenv("PRINTLANE_SHOP_ID") == "" || os.Getenv("PRINTLANE_API_KEY") == "" ||
			os.Getenv("PRINTLANE_API_SECRET") == "" {
			return fmt.Errorf("PRINTLANE_SHOP_ID, PRINTLANE_API_KEY and PRINTLANE_API_SECRET must be set")
		}

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()

		var result *printlane.Result
		if command == "create" {
			result = client.CreateOrder(ctx, order)
		} else {
			result = client.UpdateOrder(ctx, order)
		}

		if !result.Succeeded() {
			return fmt.Errorf("%s order %s failed (status %d): %v",
				result.Op, result.OrderNumber, result.StatusCode, result.Err)
		}
		fmt.Printf("%s order %s: status %d in %s\n",
			result.Op, result.OrderNumber, result.StatusCode, result.Duration.Round(time.Millisecond))
		return nil

	default:
		return fmt.Errorf("unknown command %q (want preview, create, or update)", command)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
