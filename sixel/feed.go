package sixel

// Feed drives acc through one DCS sixel payload (the Data field of a
// vtparse.Control with Kind == KindDCS and DCS.Final == 'q'), translating
// the raw grammar (#, !, $, - and data bytes '?'..'~') into the
// accumulator's Enable/DefineColor/Start/Next/Draw calls. Raster
// attributes (") are skipped; Aspect is not called.
func Feed(data []byte, acc *Accumulator) {
	acc.Start()
	i := 0
	for i < len(data) {
		b := data[i]
		i++
		switch {
		case b == '$':
			acc.Start()
		case b == '-':
			acc.Next()
		case b == '!':
			var count int
			count, i = parseNumber(data, i)
			if i < len(data) {
				sixelByte := data[i]
				i++
				acc.Draw(sixelByte, count)
			}
		case b == '#':
			i = parseColorIntroducer(data, i, acc)
		case b == '"':
			for i < len(data) && !isBandDelimiter(data[i]) {
				i++
			}
		case b >= '?' && b <= '~':
			acc.Draw(b, 1)
		}
	}
}

func isBandDelimiter(b byte) bool {
	return b == '$' || b == '-' || b == '#' || b == '!' || (b >= '?' && b <= '~')
}

func parseNumber(data []byte, i int) (int, int) {
	n := 0
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		n = n*10 + int(data[i]-'0')
		i++
	}
	return n, i
}

// parseColorIntroducer handles "#<id>" (select) and
// "#<id>;<space>;<v1>;<v2>;<v3>[;<v4>]" (define-then-select) forms.
func parseColorIntroducer(data []byte, i int, acc *Accumulator) int {
	var id int
	id, i = parseNumber(data, i)
	if i < len(data) && data[i] == ';' {
		i++
		var space int
		space, i = parseNumber(data, i)
		var v1, v2, v3, v4 int
		if i < len(data) && data[i] == ';' {
			i++
			v1, i = parseNumber(data, i)
		}
		if i < len(data) && data[i] == ';' {
			i++
			v2, i = parseNumber(data, i)
		}
		if i < len(data) && data[i] == ';' {
			i++
			v3, i = parseNumber(data, i)
		}
		if i < len(data) && data[i] == ';' {
			i++
			v4, i = parseNumber(data, i)
		}
		space2 := SpaceRGBPercent
		if space == 1 {
			space2 = SpaceHLS
		} else if space == 3 {
			space2 = SpaceRGBA
		}
		acc.DefineColor(id, space2, v1, v2, v3, v4)
	}
	acc.Enable(id)
	return i
}
