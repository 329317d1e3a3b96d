package token

// Unsigned is the set of vertex-id widths the loader supports.
type Unsigned interface {
	~uint32 | ~uint64
}

// Signed is used internally by the checked reader to detect negative ids
// before rebase, independent of the final unsigned vertex-id width.
type Signed interface {
	~int32 | ~int64
}

// Float is the set of edge-weight widths the loader supports.
type Float interface {
	~float32 | ~float64
}

// ParseWhole accumulates a*10+(c-'0') over the leading run of decimal
// digits starting at begin. An empty run (begin == end, or data[begin] is
// not a digit) leaves a untouched and returns begin.
func ParseWhole[T Unsigned](data []byte, begin, end int) (a T, pos int) {
	pos = begin
	for pos < end && IsDigit(data[pos]) {
		a = a*10 + T(data[pos]-'0')
		pos++
	}
	return a, pos
}

// ParseInteger handles an optional leading '+'/'-' sign, delegates to
// ParseWhole, and negates on a '-' sign. A sign with no digit following it
// (e.g. a bare "-") is not a token: pos is left at begin, matching
// ParseWhole's empty-run contract, so callers can detect the failure by
// comparing the returned pos to begin.
func ParseInteger[T Signed](data []byte, begin, end int) (a T, pos int) {
	if begin == end {
		return 0, begin
	}
	neg := data[begin] == '-'
	signLen := 0
	if data[begin] == '-' || data[begin] == '+' {
		signLen = 1
	}
	var u uint64
	u, pos = ParseWhole[uint64](data, begin+signLen, end)
	if pos == begin+signLen && signLen > 0 {
		return 0, begin
	}
	a = T(u)
	if neg {
		a = -a
	}
	return a, pos
}

// pow10 returns 10^n for small non-negative n using a lookup table,
// falling back to repeated multiplication beyond the table's range.
var pow10Table = [...]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9,
	1e10, 1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20,
}

func pow10(n int) float64 {
	if n < 0 {
		return 1 / pow10(-n)
	}
	if n < len(pow10Table) {
		return pow10Table[n]
	}
	v := 1.0
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

// ParseFloat parses an optional sign, an integer part, an optional
// '.'-fractional part (whose digit count d is tracked so 10^-d can scale
// it), and an optional 'e'/'E' signed exponent. The final value is
// (whole + frac*10^-d) * 10^exponent, sign-applied. An empty invocation
// (begin == end), or a sign/'.'/'e' with no digit anywhere in the
// mantissa (e.g. a bare "-"), leaves pos at begin so callers can detect
// the failure by comparing the returned pos to begin.
func ParseFloat[T Float](data []byte, begin, end int) (a T, pos int) {
	if begin == end {
		return 0, begin
	}
	pos = begin
	neg := data[pos] == '-'
	signLen := 0
	if data[pos] == '-' || data[pos] == '+' {
		signLen = 1
	}
	pos += signLen

	whole, p := ParseWhole[uint64](data, pos, end)
	wholeDigits := p - pos
	pos = p

	var frac uint64
	d := 0
	if pos < end && data[pos] == '.' {
		fracBegin := pos + 1
		frac, pos = ParseWhole[uint64](data, fracBegin, end)
		d = pos - fracBegin
	}

	if wholeDigits == 0 && d == 0 {
		return 0, begin
	}

	exp := 0
	if pos < end && (data[pos] == 'e' || data[pos] == 'E') {
		e, p2 := ParseInteger[int64](data, pos+1, end)
		if p2 > pos+1 {
			exp = int(e)
			pos = p2
		}
	}

	v := (float64(whole) + float64(frac)*pow10(-d)) * pow10(exp)
	if neg {
		v = -v
	}
	return T(v), pos
}
