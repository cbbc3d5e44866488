package cmd

import (
	"fmt"

	"content-exporter/core/channel"
	"content-exporter/core/config"
	"content-exporter/core/database"
	"content-exporter/feature/export"
	"content-exporter/feature/export/discovery"

	"go.uber.org/zap"
)

// buildPipeline assembles the record source and discovery chain for the
// configured channel mode. The returned cleanup closes any held connection.
func buildPipeline(cfg *config.Config, l *zap.Logger) (export.Source, *discovery.Chain, func(), error) {
	if !cfg.Channel.IsValidMode() {
		return nil, nil, nil, fmt.Errorf("invalid channel mode %q", cfg.Channel.Mode)
	}

	statuses := cfg.Export.StatusList()
	extra := cfg.Export.ExtraCategories()
	noop := func() {}

	switch cfg.Channel.Mode {
	case channel.ModeLocal:
		ch := channel.NewLocal(cfg.Channel, l)
		src := export.NewCommandSource(ch, statuses, cfg.Export.OverrideMetaKey)
		return src, commandChain(ch, extra, l), noop, nil

	case channel.ModeRemote:
		ch, err := channel.NewRemote(cfg.Channel, l)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open remote channel: %w", err)
		}
		src := export.NewCommandSource(ch, statuses, cfg.Export.OverrideMetaKey)
		return src, commandChain(ch, extra, l), func() { _ = ch.Close() }, nil

	case channel.ModeDatabase:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		src := export.NewDBSource(db, cfg.Database.TablePrefix, statuses, cfg.Export.OverrideMetaKey)
		chain := discovery.NewChain(l, src, discovery.Manual{Extra: extra})
		return src, chain, noop, nil
	}

	return nil, nil, nil, fmt.Errorf("unhandled channel mode %q", cfg.Channel.Mode)
}

// commandChain is the full four-strategy fallback chain used by the
// CLI-backed channel modes.
func commandChain(ch channel.Channel, extra []string, l *zap.Logger) *discovery.Chain {
	return discovery.NewChain(l,
		discovery.Structured{Channel: ch},
		discovery.Unstructured{Channel: ch},
		discovery.Scripted{Channel: ch},
		discovery.Manual{Extra: extra},
	)
}
