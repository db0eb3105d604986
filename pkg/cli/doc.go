// Package cli implements the tracewire command-line interface.
package cli
