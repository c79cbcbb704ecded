// Package sheet holds the value model shared by every stage of a conversion:
// typed cell values, the header column list, and the per-row Record.
package sheet
