package main

// CLI defaults
const (
	defaultPreset   = "default"
	minRequiredArgs = 1
	maxArgs         = 2
)

// Plot layout
const (
	plotWidthInches  = 10
	plotHeightInches = 4
	plotLineWidth    = 1
	legendOffset     = -10
)

// stdoutPath selects standard output as the estimate destination.
const stdoutPath = "-"
