// Package config provides configuration management for watchdash.
//
// Two kinds of configuration live here.
//
// # Settings
//
// Settings tune the dashboard itself and are loaded from YAML, layered in
// the following order with later sources overriding earlier ones:
//
//  1. Defaults (DefaultSettings)
//  2. User configuration (~/.config/watchdash/config.yaml)
//  3. Project configuration (<project>/.watchdash/config.yaml)
//
// Command line flags are applied by the caller on top of the result.
//
//	pollInterval: 30s
//	providersDir: ~/.config/watchdash/providers
//	timeouts:
//	  introspect: 5s
//	  list: 30s
//	envPrefix: DEPLOY_WATCH_
//	watch:
//	  enabled: true
//	  binary: fswatch
//	  latency: 1
//	actions:
//	  limit: 15
//	  tokenEnv: GITHUB_TOKEN
//	agents:
//	  dir: .agent-status.d
//	  staleAfter: 3m
//
// # Project state
//
// The selected deploy provider, its field values and the per-tab switches
// are stored in <project>/.deploy-watch.json and edited from the TUI:
//
//	{
//	  "provider": "renderdotcom",
//	  "renderdotcom": {"serviceid": "srv-123"},
//	  "tabs": {"actions": {"enabled": true, "repo": "owner/name"}}
//	}
//
// Unknown top-level keys are preserved when the file is rewritten.
package config
