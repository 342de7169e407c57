// Command halcyon-uci is the UCI entrypoint, wiring the on-disk result
// cache (internal/store), the search engine (internal/search), and the
// protocol loop (internal/uci) together. It also exposes a standalone
// "board" subcommand for rendering a FEN from the shell, outside the UCI
// protocol itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/halcyonchess/core/internal/board"
	"github.com/halcyonchess/core/internal/store"
	"github.com/halcyonchess/core/internal/uci"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "board" {
		runBoard(os.Args[2:])
		return
	}

	ctx := context.Background()

	loop := uci.New(ctx, os.Stdin, os.Stdout)

	cache, err := store.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "halcyon-uci: result cache unavailable, continuing without it: %v\n", err)
	} else {
		defer cache.Close()
		loop.UseCache(cache)
	}

	loop.Run()
}

// runBoard renders a position from a FEN (or the starting position) to the
// terminal with colored square backgrounds, independent of the UCI loop.
func runBoard(args []string) {
	fs := flag.NewFlagSet("board", flag.ExitOnError)
	fen := fs.String("fen", "", "FEN to render (default: starting position)")
	fs.Parse(args)

	pos := board.NewPosition()
	if *fen != "" {
		p, err := board.ParseFEN(*fen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "halcyon-uci: invalid FEN: %v\n", err)
			os.Exit(1)
		}
		pos = p
	}

	printBoard(pos)
}

var (
	lightSquare = color.New(color.BgHiWhite, color.FgBlack)
	darkSquare  = color.New(color.BgGreen, color.FgBlack)
	sideBanner  = color.New(color.FgHiCyan, color.Bold)
)

// printBoard renders pos rank 8 down to rank 1, files a..h left to right,
// with alternating light/dark square backgrounds and a side-to-move banner.
func printBoard(pos *board.Position) {
	for rank := 7; rank >= 0; rank-- {
		fmt.Printf("%d ", rank+1)
		for file := 7; file >= 0; file-- {
			sq := board.NewSquare(file, rank)
			piece := pos.PieceAt(sq)

			label := " . "
			if piece != board.NoPiece {
				label = fmt.Sprintf(" %s ", piece.String())
			}

			sqColor := lightSquare
			if (file+rank)%2 == 0 {
				sqColor = darkSquare
			}
			sqColor.Print(label)
		}
		fmt.Println()
	}
	fmt.Println("   a  b  c  d  e  f  g  h")

	turn := "White"
	if pos.SideToMove == board.Black {
		turn = "Black"
	}
	sideBanner.Printf("%s to move\n", turn)
}
