// Copyright © 2025 extraterm contributors
//
// vtdump feeds a captured byte stream through the terminal engine and
// prints the resulting grid, for inspecting what a given capture would
// have rendered without a live PTY attached.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aral/extraterm/vt"
)

func main() {
	cols := flag.Int("cols", 80, "terminal width in columns")
	rows := flag.Int("rows", 24, "terminal height in rows")
	scrollback := flag.Int("scrollback", 1000, "scrollback capacity in rows")
	showCursor := flag.Bool("cursor", true, "mark the cursor position with a caret")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: vtdump [flags] <capture-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("vtdump: %v", err)
	}

	term := vt.NewTerminal(*cols, *rows, vt.WithScrollback(*scrollback))
	term.Write(data)
	term.Flush()

	dumpGrid(term, *showCursor)
}

func dumpGrid(term *vt.Terminal, showCursor bool) {
	buf := term.Screen().Buffer()
	cx, cy := term.Cursor()

	var b strings.Builder
	for y := 0; y < buf.Height(); y++ {
		row := buf.ViewRow(y)
		for x, cell := range row {
			if cell.Rune == 0 {
				continue
			}
			b.WriteRune(cell.Rune)
			if showCursor && x == cx && y == cy {
				b.WriteByte('^')
			}
		}
		b.WriteByte('\n')
	}
	fmt.Print(b.String())
}
