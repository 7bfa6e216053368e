package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"campsite-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/joho/godotenv"
)

const migrateTimeout = 2 * time.Minute

// migrate は migrations/ を atlas CLI 経由で適用する
func main() {
	_ = godotenv.Load()

	if err := run(); err != nil {
		slog.Error("マイグレーションに失敗しました", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	wd, err := atlasexec.NewWorkingDir(
		atlasexec.WithMigrations(os.DirFS("migrations")),
	)
	if err != nil {
		return err
	}
	defer wd.Close()

	client, err := atlasexec.NewClient(wd.Path(), "atlas")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.BuildDSN(),
		DirURL: "file://migrations",
	})
	if err != nil {
		return err
	}

	slog.Info("マイグレーションを適用しました",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target)
	return nil
}
