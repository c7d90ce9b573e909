package keys

import "runtime"

// Zero overwrites b with zeros. The KeepAlive keeps the compiler from
// treating the stores as dead.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
