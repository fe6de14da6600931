package markup

import (
	"bufio"
	"fmt"
	"io"
	"unicode"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// zeroWidth covers the zero-width characters stripped from imported
// markup: ZWSP, ZWNJ, ZWJ, and the BOM.
var zeroWidth = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200b, Hi: 0x200d, Stride: 1},
		{Lo: 0xfeff, Hi: 0xfeff, Stride: 1},
	},
}

// normalizer maps non-breaking spaces to plain spaces and removes
// zero-width characters.
func normalizer() transform.Transformer {
	return transform.Chain(
		runes.Map(func(r rune) rune {
			if r == '\u00a0' {
				return ' '
			}
			return r
		}),
		runes.Remove(runes.In(zeroWidth)),
	)
}

// NewReader wraps r with charset detection and input normalization. The
// result always yields normalized UTF-8.
func NewReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(1024)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peeking markup: %w", err)
	}
	enc, _, _ := charset.DetermineEncoding(peek, "")
	decoded := transform.NewReader(br, enc.NewDecoder())
	return transform.NewReader(decoded, normalizer()), nil
}
