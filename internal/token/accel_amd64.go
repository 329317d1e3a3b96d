//go:build amd64

package token

import "golang.org/x/sys/cpu"

// On amd64 every CPU Go supports has fast unaligned 8-byte loads, so the
// SWAR lane trick is always a net win over the byte-at-a-time scalar
// loop. cpu.X86.HasSSE2 is true unconditionally on amd64; the check is
// kept (rather than an unconditional assignment) to mirror the teacher's
// simd_amd64.go init()-time capability dispatch exactly.
func init() {
	if cpu.X86.HasSSE2 {
		accelImpl = swarDispatch
	}
}

func swarDispatch(data []byte, begin, end int) (uint64, int) {
	n := end - begin
	return swarParseWholeN(data, begin, n), end
}
