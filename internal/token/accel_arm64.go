//go:build arm64

package token

import "golang.org/x/sys/cpu"

// ARM64 also guarantees fast unaligned loads, so the portable SWAR lane
// path applies unchanged. HasASIMD is checked for parity with the
// teacher's capability-gated dispatch style even though the SWAR path
// itself uses no NEON instructions.
func init() {
	if cpu.ARM64.HasASIMD {
		accelImpl = swarDispatch
	}
}

func swarDispatch(data []byte, begin, end int) (uint64, int) {
	n := end - begin
	return swarParseWholeN(data, begin, n), end
}
