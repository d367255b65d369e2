//go:build !production

package diag

// Enabled reports whether diagnostics are compiled in.
const Enabled = true
