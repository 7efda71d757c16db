// Package config provides layout configuration management for the Abalone server.
//
// The config package handles:
//   - Loading starting layouts from YAML (or JSON) files
//   - Validation through engine.ValidateGameConfig
//   - Default layout selection
//   - Layout discovery and listing
//
// Configuration Format:
//
// Layouts are stored in the configs directory, one file per layout. The
// layout field lists the nine hex rows from the top (r=-4) to the bottom
// (r=4); B is a black marble, W a white marble, '.' an empty cell, and
// spaces are ignored so rows can be indented to look like the board:
//
//	name: standard
//	starting_player: black
//	layout:
//	  - "    W W W W W"
//	  - "   W W W W W W"
//	  ...
//
// Available Configurations:
//   - standard: the classic opening on the three back rows
//   - belgian_daisy: two daisies per side touching the edge
//   - german_daisy: daisies pulled one row in from the edge
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal().Err(err).Msg("config")
//	}
//
//	gameConfig, err := manager.LoadConfig("belgian_daisy")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config
