package edgereader

import (
	"github.com/puzzlef/gocsr/internal/token"
)

// ReadBlockUnchecked implements spec §4.F's unchecked strategy over
// data[begin:end): seek the next digit, parse an unsigned whole, seek
// the next digit, parse another unsigned whole, optionally seek and
// parse a float, rebase, emit. It terminates when no further digits are
// found and never detects malformed input — "a performance contract, not
// a correctness contract" (spec §7).
func ReadBlockUnchecked[K token.Unsigned, W token.Float](data []byte, begin, end int, opts Options, fb func(u, v K, w W)) {
	pos := begin
	for {
		pos = token.FindNextDigit(data, pos, end)
		if pos >= end {
			return
		}
		uWhole, p := token.ParseWholeAccel[uint64](data, pos, end)
		pos = p

		pos = token.FindNextDigit(data, pos, end)
		if pos >= end {
			return
		}
		vWhole, p2 := token.ParseWholeAccel[uint64](data, pos, end)
		pos = p2

		w := W(1)
		if opts.Weighted {
			wpos := token.FindNextNonWhitespace(data, pos, end)
			if wpos < end {
				wVal, p3 := token.ParseFloatAccel[W](data, wpos, end)
				if p3 > wpos {
					w = wVal
					pos = p3
				}
			}
		}

		if opts.Rebase {
			uWhole--
			vWhole--
		}

		u, v := K(uWhole), K(vWhole)
		fb(u, v, w)
		if opts.Symmetric && u != v {
			fb(v, u, w)
		}
	}
}
