// Package services holds the application logic behind the driving ports.
//
// AnalysisService turns transcript text into ranked queries, MediaService
// fans a query out to the stock providers, and SessionService, LoaderService,
// ExportService and SettingsService cover persistence around them. Services
// reach the outside world only through driven ports, so the CLI, TUI and MCP
// server share one implementation.
package services
