package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"polluxkart-admin/internal/config"
	"polluxkart-admin/internal/database"
	"polluxkart-admin/internal/logger"
	"polluxkart-admin/internal/repository"
	"polluxkart-admin/internal/service"
)

// Interactive variant of the seed-data cleanup endpoint, for running over
// SSH after a deployment goes live. Wipes catalog and order collections,
// never users.
func main() {
	globalCtx := context.Background()
	log := logger.Instance()
	cfg := config.Instance()

	db, err := database.Instance(globalCtx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Client.Disconnect(globalCtx)

	maintenance := service.NewMaintenanceService(repository.NewMaintenanceRepository(db.Database))

	counts, err := maintenance.Counts(globalCtx)
	if err != nil {
		log.Error("Failed to count documents", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println("Documents that will be deleted:")
	var total int64
	for _, name := range service.SeedCollections() {
		fmt.Printf("  %-16s %d\n", name, counts[name])
		total += counts[name]
	}
	fmt.Printf("Total: %d documents. User accounts are preserved.\n", total)
	fmt.Print("Type DELETE to proceed: ")

	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	if strings.TrimSpace(line) != "DELETE" {
		fmt.Println("Aborted.")
		return
	}

	deleted, err := maintenance.CleanupSeedData(globalCtx)
	if err != nil {
		log.Error("Cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, name := range service.SeedCollections() {
		fmt.Printf("  %-16s deleted %d\n", name, deleted[name])
	}
	fmt.Println("Seed data cleanup complete.")
}
