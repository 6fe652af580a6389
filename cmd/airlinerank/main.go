// Command airlinerank ranks airlines by the total distance they fly from an
// origin airport.
//
//	airlinerank [-config path] [-origin ID | -lat X -lon Y] [-version]
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/kbukum/airlinerank/config"
	"github.com/kbukum/airlinerank/logger"
	"github.com/kbukum/airlinerank/version"
)

func main() {
	configPath := flag.String("config", "", "path to config.yml (default: search standard locations)")
	originID := flag.String("origin", "", "origin airport id (overrides ranking.origin)")
	lat := flag.Float64("lat", math.NaN(), "latitude; with -lon, rank from the nearest airport")
	lon := flag.Float64("lon", math.NaN(), "longitude; with -lat, rank from the nearest airport")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().Full())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	logger.Init(cfg.Logging)
	logger.RegisterDefaults()

	sel, err := newOriginSelector(*originID, *lat, *lon, cfg.Ranking.Origin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(ctx, cfg, sel, os.Stdout); err != nil {
		logger.Error("airlinerank failed", logger.MergeWithError(nil, err))
		os.Exit(1)
	}
}

func loadConfig(path string) (*Config, error) {
	resolver := &config.Resolver{FileSystem: config.RealFileSystem{}}
	files := resolver.ResolveFiles(serviceName, config.LoaderConfig{ConfigFile: path})

	var cfg Config
	opts := []config.LoaderOption{config.WithEnvFile(files.EnvFile)}
	if files.ConfigFile != "" {
		opts = append(opts, config.WithConfigFile(files.ConfigFile))
	}
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().String()
	}

	dir := "."
	if files.ConfigFile != "" {
		dir = filepath.Dir(files.ConfigFile)
	}
	cfg.resolvePaths(dir)
	return &cfg, nil
}
