// Command checker answers whether the orders in one file can be fulfilled
// from the stock in another. It prints "true" or "false" and exits 0 when
// fulfillable, 1 when not, and 2 when the input files are unusable.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/recipebox/fulfillment/internal/allocation"
	"github.com/recipebox/fulfillment/internal/loader"
	"github.com/recipebox/fulfillment/pkg/logger"
)

func main() {
	stockPath := flag.String("stock", "", "path to the JSON stock file")
	ordersPath := flag.String("orders", "", "path to the JSON orders file")
	logLevel := flag.String("log-level", "error", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.New(*logLevel)

	if *stockPath == "" || *ordersPath == "" {
		fmt.Fprintln(os.Stderr, "usage: checker -stock stock.json -orders orders.json")
		os.Exit(2)
	}

	recipes, err := loader.LoadStock(*stockPath)
	if err != nil {
		log.Error("failed to load stock", "path", *stockPath, "error", err)
		os.Exit(2)
	}

	orders, err := loader.LoadOrders(*ordersPath)
	if err != nil {
		log.Error("failed to load orders", "path", *ordersPath, "error", err)
		os.Exit(2)
	}

	log.Info("checking feasibility", "recipes_count", len(recipes), "orders_count", len(orders))

	decision, err := allocation.Decide(recipes, orders)
	if err != nil {
		if errors.Is(err, allocation.ErrInvalidInput) {
			log.Error("rejected input", "error", err)
		} else {
			log.Error("feasibility check failed", "error", err)
		}
		os.Exit(2)
	}

	fmt.Println(decision.Feasible)

	if !decision.Feasible {
		log.Info("orders cannot be fulfilled",
			"meal_type", decision.MealType,
			"order_index", decision.OrderIndex,
		)
		os.Exit(1)
	}
}
