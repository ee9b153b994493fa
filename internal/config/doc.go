// Package config loads astrowidget's TOML configuration.
//
// # Configuration Discovery
//
// Load reads ~/.config/astrowidget/config.toml unless a path is given. A
// missing file is not an error: defaults are used and the token is taken
// from the ASTRO_BASIC_TOKEN environment variable.
//
// # TOML Format
//
//	base_url = "https://api.astronomyapi.com"
//	basic_token = "..."
//	timeout_seconds = 15
//	log_file = "~/.local/share/astrowidget/astrowidget.log"
//	log_level = "info"
//
//	[moon_phase.style]
//	moonStyle = "sketch"
//
//	[star_chart.view]
//	type = "constellation"
//
// The moon_phase and star_chart tables are partial widget inputs. They use
// the same camelCase keys as the API and are merged over the widget defaults
// on every render, so anything left out keeps its default.
//
// Every field is optional. Tilde expansion is performed on log_file.
// ASTRO_BASIC_TOKEN, when set, wins over basic_token.
package config
