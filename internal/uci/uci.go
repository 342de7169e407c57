// Package uci is a thin external-collaborator protocol loop: it reads
// position/go/stop lines, drives search.Run, and prints bestmove. This is
// explicitly outside the core's scope (spec §1) but is the ambient CLI
// glue every engine in the pack ships, trimmed here to the single-
// threaded, no-NNUE, no-ponder, no-tablebase contract the core actually
// implements.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/halcyonchess/core/internal/board"
	"github.com/halcyonchess/core/internal/eval"
	"github.com/halcyonchess/core/internal/perft"
	"github.com/halcyonchess/core/internal/search"
	"github.com/halcyonchess/core/internal/store"
	"github.com/seekerror/logw"
)

const defaultMaxDepth = 64

// Loop drives the protocol against in and out; typically os.Stdin/os.Stdout.
type Loop struct {
	in  *bufio.Scanner
	out io.Writer
	ctx context.Context

	pos        *board.Position
	searching  bool
	stopFlag   atomic.Bool
	searchDone chan struct{}
	cache      *store.Store
}

// New creates a protocol loop reading from in and writing to out.
func New(ctx context.Context, in io.Reader, out io.Writer) *Loop {
	return &Loop{
		in:  bufio.NewScanner(in),
		out: out,
		ctx: ctx,
		pos: board.NewPosition(),
	}
}

// UseCache attaches an on-disk result cache consulted by "go" before
// starting a search and updated after one completes. Optional; a nil or
// never-called cache leaves the loop searching every position fresh.
func (l *Loop) UseCache(cache *store.Store) {
	l.cache = cache
}

// Run reads commands until EOF or "quit".
func (l *Loop) Run() {
	for l.in.Scan() {
		line := strings.TrimSpace(l.in.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			l.handleUCI()
		case "isready":
			fmt.Fprintln(l.out, "readyok")
		case "ucinewgame":
			l.pos = board.NewPosition()
		case "position":
			l.handlePosition(args)
		case "go":
			l.handleGo(args)
		case "stop":
			l.handleStop()
		case "quit":
			l.handleStop()
			return
		case "d":
			fmt.Fprintln(l.out, l.pos.String())
		case "perft":
			l.handlePerft(args)
		case "eval":
			fmt.Fprintf(l.out, "info string eval %d\n", eval.Evaluate(l.pos))
		}
	}
}

func (l *Loop) handleUCI() {
	fmt.Fprintln(l.out, "id name halcyonchess")
	fmt.Fprintln(l.out, "id author halcyonchess")
	fmt.Fprintln(l.out, "uciok")
}

// handlePosition handles:
//
//	position startpos [moves ...]
//	position fen <fen> [moves ...]
func (l *Loop) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var moveStart int
	switch args[0] {
	case "startpos":
		l.pos = board.NewPosition()
		moveStart = 1
	case "fen":
		end := len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				end = i
				break
			}
		}
		pos, err := board.ParseFEN(strings.Join(args[1:end], " "))
		if err != nil {
			logw.Infof(l.ctx, "uci: invalid FEN: %v", err)
			return
		}
		l.pos = pos
		moveStart = end
	default:
		return
	}

	for i := moveStart; i < len(args); i++ {
		if args[i] == "moves" {
			continue
		}
		m, err := board.ParseMove(args[i], l.pos)
		if err != nil || !board.ValidateMove(l.pos, m, l.pos.InCheck()) {
			logw.Infof(l.ctx, "uci: invalid move %q", args[i])
			return
		}
		l.pos.Make(m)
	}
}

type goOptions struct {
	depth    int
	moveTime time.Duration
	infinite bool
}

func parseGoOptions(args []string) goOptions {
	var opts goOptions
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.moveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			opts.infinite = true
		}
	}
	return opts
}

// handleGo starts a search in the background and prints "bestmove" on
// completion; "stop" or a movetime/depth budget ends it.
func (l *Loop) handleGo(args []string) {
	opts := parseGoOptions(args)

	limits := search.Limits{MaxDepth: defaultMaxDepth}
	if opts.depth > 0 {
		limits.MaxDepth = opts.depth
	}
	if opts.moveTime > 0 {
		limits.TimeBudget = opts.moveTime
	} else if !opts.infinite && opts.depth == 0 {
		limits.TimeBudget = 5 * time.Second
	}

	if l.cache != nil {
		if cached, found, err := l.cache.Get(l.pos.Hash, limits.MaxDepth); err == nil && found {
			logw.Infof(l.ctx, "uci: cache hit for hash %x depth %d", l.pos.Hash, limits.MaxDepth)
			fmt.Fprintf(l.out, "info depth %d score cp %d\n", cached.Depth, cached.Score)
			fmt.Fprintf(l.out, "bestmove %s\n", cached.BestMove)
			return
		}
	}

	l.stopFlag.Store(false)
	l.searching = true
	l.searchDone = make(chan struct{})
	pos := l.pos.Copy()
	hash := l.pos.Hash

	go func() {
		defer close(l.searchDone)
		result := search.Run(l.ctx, pos, limits, &l.stopFlag)
		l.searching = false

		move := result.BestMove
		if move == board.NoMove {
			fmt.Fprintln(l.out, "bestmove 0000")
			return
		}
		fmt.Fprintf(l.out, "info depth %d score cp %d nodes %d pv %s\n",
			result.Depth, result.Score, result.Nodes, formatPV(result.PV))
		fmt.Fprintf(l.out, "bestmove %s\n", move.String())

		if l.cache != nil && !result.Aborted {
			entry := store.Entry{BestMove: move.String(), Score: result.Score, Depth: result.Depth}
			if err := l.cache.Put(hash, result.Depth, entry); err != nil {
				logw.Infof(l.ctx, "uci: cache write failed: %v", err)
			}
		}
	}()
}

func formatPV(pv []board.Move) string {
	parts := make([]string, len(pv))
	for i, m := range pv {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

func (l *Loop) handleStop() {
	if !l.searching {
		return
	}
	l.stopFlag.Store(true)
	<-l.searchDone
}

func (l *Loop) handlePerft(args []string) {
	if len(args) == 0 {
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil {
		return
	}

	entries := perft.Divide(l.pos, depth)
	var total int64
	for _, e := range entries {
		fmt.Fprintf(l.out, "%s: %d\n", e.Move.String(), e.Nodes)
		total += e.Nodes
	}
	fmt.Fprintf(l.out, "\nNodes searched: %d\n", total)
}
