// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters):
//
//   - SpecLoader: caches and parses the API specification document
//   - IngestService: pagination walk and raw table load
//   - SettingsService: settings with defaults over the config store
//   - InventoryService: raw tables and run history
//
// Services are pure Go with no CGO or external dependencies.
package services
