package ucalc

import "io"

// Config holds configuration options for compilation and execution.
type Config struct {
	// ModuleName is the source filename recorded in the emitted module
	// (default "calc.expr").
	ModuleName string

	// ReadFunc is the name of the external read primitive declared by
	// the emitted module (default "calc_read").
	ReadFunc string

	// WriteFunc is the name of the external write primitive declared by
	// the emitted module (default "calc_write").
	WriteFunc string

	// Output is the writer for results during in-process execution.
	// If nil, output is captured and returned from Run.
	Output io.Writer

	// Prompts enables "Enter a value for x: " prompts while reading
	// variable values during in-process execution.
	Prompts bool
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.ModuleName == "" {
		c.ModuleName = "calc.expr"
	}
	if c.ReadFunc == "" {
		c.ReadFunc = "calc_read"
	}
	if c.WriteFunc == "" {
		c.WriteFunc = "calc_write"
	}
}
