package domain

// Zero overwrites b in place so key material does not linger in memory
// longer than needed. Safe to call on nil or empty slices.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
