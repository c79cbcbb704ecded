package ports

// OutputSink receives the output stream of a conversion in order.
// It is never read back during a conversion.
type OutputSink interface {
	// Reset discards any previous content and writes p as the new beginning
	Reset(p []byte) error

	// Append writes p after everything written so far
	Append(p []byte) error
}
