package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josh-nowak/homepage"
	"github.com/josh-nowak/homepage/logging"
	"github.com/josh-nowak/homepage/views"
)

func loadConfig(pretty bool) (homepage.Config, error) {
	cfg, err := homepage.LoadConfig()
	if err != nil {
		return homepage.Config{}, err
	}
	logging.Configure(logging.Config{Level: cfg.LogLevel, Pretty: pretty, Version: version})
	return cfg, nil
}

func serveCmd() *cobra.Command {
	var (
		addr   string
		watch  bool
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Sync notes and serve the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(pretty)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				cfg.WatchContent = watch
			}

			app := homepage.New(cfg, views.Default())
			defer app.Close()
			if err := app.Start(cmd.Context()); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ADDR)")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-sync notes when the content directory changes")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "human-readable logs")
	return cmd
}

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Load Markdown notes into the database and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(true)
			if err != nil {
				return err
			}
			store, err := homepage.NewStore(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := homepage.SyncNotes(cmd.Context(), store, cfg.ContentDir)
			if err != nil {
				return err
			}
			log := logging.WithComponent("content")
			log.Info().
				Str("dir", cfg.ContentDir).
				Str("db", cfg.DatabasePath).
				Int("notes", n).
				Msg("notes synced")
			return nil
		},
	}
}
