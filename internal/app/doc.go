// Package app is astrowidget's composition root.
//
// Run wires the pieces together in this order:
//
//  1. config.Load reads config.toml (or defaults) and the token override
//  2. logger.New opens the JSON log file
//  3. studio.NewClient validates the token; a bad token stops here
//  4. dom.NewPage mounts one element per widget, using the configured
//     element locators
//  5. prefs.Load picks the theme and the default widget selection
//  6. ui.Run starts the dashboard, or renderOnce renders headless
//
// # Headless Mode
//
// With Options.Once set, the selected widgets are started together through
// the fire-and-forget client methods. Run waits for every Result, prints one
// outcome line per widget followed by each element's content, and returns
// an error when any widget failed:
//
//	moon-phase   success
//	star-chart   timeout
//	#moon-phase
//	  image  https://... (Moon phase, natural size)
//	#star-chart
//	  text   Request timed out.
package app
