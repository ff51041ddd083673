package identity

// SetLookPath swaps the PATH lookup for the duration of a test.
func SetLookPath(fn func(string) (string, error)) (restore func()) {
	orig := lookPath
	lookPath = fn
	return func() { lookPath = orig }
}
