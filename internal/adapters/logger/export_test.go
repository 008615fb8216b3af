package logger

// FormatError exposes the pretty chain rendering for tests.
func FormatError(err error) string {
	return formatErrorEntries(collectErrorEntries(err))
}
