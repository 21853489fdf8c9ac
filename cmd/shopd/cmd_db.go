package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arifhossen/shopd/config"
	"github.com/arifhossen/shopd/database/seeders"
	"github.com/arifhossen/shopd/pkg/database"
)

// shopd db:index — create the indexes the service relies on, most
// importantly the unique index on user email that holds the signup
// uniqueness invariant.
var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Create MongoDB indexes (unique user email, product owner)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer disconnect()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := database.EnsureIndexes(ctx); err != nil {
			return err
		}
		fmt.Println("Indexes created.")
		return nil
	},
}

// shopd db:seed — insert demo catalog data.
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Seed the catalog with demo products",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		defer disconnect()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return seeders.Run(ctx)
	},
}

// bootDB loads config and connects to the document store.
func bootDB() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return database.Connect()
}

func disconnect() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = database.Disconnect(ctx)
}
