package cmn

import "strconv"

/*
	ansi escape sequences for colored terminal reporting.
	flags compose into a single uint32:
		[ 0 | background | foreground | attribute ]
	so ForeRed|AttrBold is a valid flag.
*/
type AnsiFlag uint32

const (
	AttrOff AnsiFlag = iota
	AttrBold
	_
	_
	AttrUnderscore
	AttrBlink
	_
	AttrReverseVideo
)

const (
	ForeBlack AnsiFlag = (iota + 30) << 8
	ForeRed
	ForeGreen
	ForeYellow
	ForeBlue
	ForeMagenta
	ForeCyan
	ForeWhite
)

const (
	BackBlack AnsiFlag = (iota + 40) << 16
	BackRed
	BackGreen
	BackYellow
	BackBlue
	BackMagenta
	BackCyan
	BackWhite
)

func (f AnsiFlag) String() string {
	ret := "\033["
	written := false
	for ; f != 0; f >>= 8 {
		p := f & 0xFF
		if p == 0 {
			continue
		}
		if written {
			ret += ";"
		}
		ret += strconv.Itoa(int(p))
		written = true
	}
	if !written {
		ret += "0"
	}
	return ret + "m"
}
