package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Step completed successfully
	SymbolFail    = "✗" // Step failed or was abandoned
)
