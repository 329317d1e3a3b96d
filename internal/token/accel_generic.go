//go:build !amd64 && !arm64

package token

// On architectures without a fast-unaligned-load guarantee, leave
// accelImpl nil; ParseWholeAccel/ParseFloatAccel fall back to the scalar
// parser, matching spec §9's "portable scalar fallback with identical
// semantics" requirement.
