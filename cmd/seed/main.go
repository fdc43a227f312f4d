// Command seed fills the configured store with a demo pantry.
package main

import (
	"context"
	"fmt"
	"log"

	"tableflip.dev/shelflife/pkg/app"
	"tableflip.dev/shelflife/pkg/store"
)

var demo = []app.AddRequest{
	{Name: "milk", Quantity: 1, Unit: "l", Location: "fridge", Category: "dairy", Expires: "2d"},
	{Name: "yogurt", Quantity: 4, Location: "fridge", Category: "dairy", Expires: "yesterday"},
	{Name: "spinach", Quantity: 200, Unit: "g", Location: "fridge", Category: "produce", Expires: "today"},
	{Name: "chicken thighs", Quantity: 6, Location: "fridge", Category: "meat", Expires: "tomorrow"},
	{Name: "cheddar", Quantity: 1, Location: "fridge", Category: "dairy", Expires: "3w"},
	{Name: "bread", Quantity: 1, Location: "shelf", Category: "bakery", Expires: "4d"},
	{Name: "rice", Quantity: 2, Unit: "kg", Location: "shelf", Category: "grains"},
	{Name: "canned tomatoes", Quantity: 3, Location: "shelf", Category: "canned", Expires: "20w"},
	{Name: "pasta", Quantity: 500, Unit: "g", Location: "shelf", Category: "grains", Expires: "1w"},
}

func main() {
	cfg, err := store.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	p, err := store.Load(cfg)
	if err != nil {
		log.Fatal(err)
	}
	svc := &app.Service{Persistence: p}

	for _, req := range demo {
		if _, err := svc.Add(context.Background(), req); err != nil {
			log.Fatalf("seed %s: %v", req.Name, err)
		}
	}

	items, err := svc.Items(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	for _, it := range items {
		fmt.Println(it.String())
	}
}
