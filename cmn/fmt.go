package cmn

import (
	"fmt"
	"os"
)

/*
	helpers for reporting progress and errors on the terminal.
	the Cnd* variants take a fmtdisable flag so the user can turn raw
	(pipe friendly) output on with a switch.
*/

const MediumMark string = "✓"

const MediumX string = "✕"

const MediumBulletPoint string = "•"

func PrintflnSuccess(prefix, _fmt string, argv ...interface{}) {
	fmt.Fprintf(
		os.Stderr,
		fmt.Sprintf("%s%v%s %s%v\n",
			prefix, ForeGreen, MediumMark, _fmt, AttrOff),
		argv...)
}

func PrintflnWarn(prefix, _fmt string, argv ...interface{}) {
	fmt.Fprintf(
		os.Stderr,
		fmt.Sprintf("%s%v%s %s%v\n",
			prefix, ForeYellow, MediumX, _fmt, AttrOff),
		argv...)
}

func PrintflnNotify(prefix, _fmt string, argv ...interface{}) {
	fmt.Fprintf(
		os.Stdout,
		fmt.Sprintf("%s%v%s%v %s\n",
			prefix, ForeBlue, MediumBulletPoint, AttrOff, _fmt),
		argv...)
}

func PrintflnError(_fmt string, argv ...interface{}) {
	fmt.Fprintf(
		os.Stderr,
		fmt.Sprintf("%v%s\n%v", ForeRed, _fmt, AttrOff),
		argv...)
}

func PrintError(err error) {
	PrintflnError("%s", err)
}

func CndPrintfln(
	fmtdisable bool,
	fptr func(string, string, ...interface{}),
	prefix, _fmt string, argv ...interface{}) {

	if fmtdisable {
		fmt.Printf(fmt.Sprintf("%s\n", _fmt), argv...)
	} else {
		fptr(prefix, _fmt, argv...)
	}
}

func CndPrintError(fmtdisable bool, err error) {
	if fmtdisable {
		fmt.Fprintf(os.Stderr, "%s\n", err)
	} else {
		PrintError(err)
	}
}
