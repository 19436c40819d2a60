package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gambitchess/gambit/pkg/board"
	"github.com/gambitchess/gambit/pkg/engine"
	"github.com/gambitchess/gambit/pkg/scenario"
	"github.com/gambitchess/gambit/pkg/store"
	"github.com/seekerror/logw"
)

var (
	storeDir     = flag.String("store", "", "Directory for a persistent Badger snapshot store (disabled if empty)")
	gameID       = flag.String("game", "local", "Game ID used for -store snapshots")
	scenarioName = flag.String("scenario", "", "Start from a named scenario instead of the standard position: fools-mate, stalemate, capture-duel-attacker-wins, capture-duel-defender-wins, capture-duel-defender-wins-retreat, retreat-cost-mismatch")
)

// scenarios maps -scenario names to pkg/scenario's deterministic builders.
var scenarios = map[string]func(context.Context) (*engine.Engine, error){
	"fools-mate":                         scenario.FoolsMate,
	"stalemate":                          scenario.Stalemate,
	"capture-duel-attacker-wins":         scenario.CaptureDuelAttackerWins,
	"capture-duel-defender-wins":         scenario.CaptureDuelDefenderWinsNonLongRange,
	"capture-duel-defender-wins-retreat": scenario.CaptureDuelDefenderWinsLongRange,
	"retreat-cost-mismatch":              scenario.RetreatCostMismatch,
}

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: gambit [options]

GAMBIT is a local two-session REPL for the Gambit Chess core engine. It reads
line commands from stdin and drives a single in-memory game, by default
between sessions "white-session" and "black-session":

  move <session> <from> <to> [promotion]
  allocate <session> <amount>
  retreat <session> <square> <cost>
  view <session>
  save
  quit

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	var db *store.Store
	if *storeDir != "" {
		var err error
		db, err = store.Open(*storeDir)
		if err != nil {
			logw.Exitf(ctx, "Failed to open store at %v: %v", *storeDir, err)
		}
		defer db.Close()
	}

	e := engine.New()
	if db != nil {
		if data, ok, err := db.LoadSnapshot(*gameID); err != nil {
			logw.Exitf(ctx, "Failed to load snapshot %v: %v", *gameID, err)
		} else if ok {
			if err := e.LoadState(data); err != nil {
				logw.Exitf(ctx, "Failed to restore snapshot %v: %v", *gameID, err)
			}
			logw.Infof(ctx, "Resumed game %v from store", *gameID)
		}
	}
	if !isInitialized(e) {
		if *scenarioName != "" {
			build, ok := scenarios[*scenarioName]
			if !ok {
				logw.Exitf(ctx, "Unknown scenario %q", *scenarioName)
			}
			built, err := build(ctx)
			if err != nil {
				logw.Exitf(ctx, "Failed to build scenario %q: %v", *scenarioName, err)
			}
			e = built
		} else if err := e.Initialize(ctx, scenario.WhiteSession, scenario.BlackSession); err != nil {
			logw.Exitf(ctx, "Failed to initialize game: %v", err)
		}
	}

	in := engine.ReadStdinLines(ctx)
	out := make(chan string, 1)
	go engine.WriteStdoutLines(ctx, out)
	defer close(out)

	for line := range in {
		reply := dispatch(ctx, e, db, line)
		if reply == "" {
			continue
		}
		out <- reply
		if reply == "bye" {
			return
		}
	}
}

// isInitialized reports whether e has already been initialized (a fresh engine.New() has not).
func isInitialized(e *engine.Engine) bool {
	_, err := e.CreateStateView("probe")
	return err == nil
}

func dispatch(ctx context.Context, e *engine.Engine, db *store.Store, line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "quit":
		return "bye"

	case "move":
		if len(fields) < 4 {
			return "error: usage: move <session> <from> <to> [promotion]"
		}
		from, err := board.ParseSquareStr(fields[2])
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		to, err := board.ParseSquareStr(fields[3])
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		promotion := board.NoPieceType
		if len(fields) > 4 {
			r := []rune(fields[4])
			p, ok := board.ParsePieceType(r[0])
			if !ok {
				return fmt.Sprintf("error: invalid promotion piece %q", fields[4])
			}
			promotion = p
		}
		res, err := e.ProcessMove(ctx, fields[1], from, to, promotion)
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		if res.TriggersDuel {
			return "duel pending"
		}
		saveIfConfigured(e, db)
		return "ok"

	case "allocate":
		if len(fields) != 3 {
			return "error: usage: allocate <session> <amount>"
		}
		amount, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		if _, err := e.ProcessBPAllocation(ctx, fields[1], amount); err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		saveIfConfigured(e, db)
		return "ok"

	case "retreat":
		if len(fields) != 4 {
			return "error: usage: retreat <session> <square> <cost>"
		}
		sq, err := board.ParseSquareStr(fields[2])
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		cost, err := strconv.Atoi(fields[3])
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		if _, err := e.ProcessTacticalRetreat(ctx, fields[1], sq, cost); err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		saveIfConfigured(e, db)
		return "ok"

	case "view":
		if len(fields) != 2 {
			return "error: usage: view <session>"
		}
		view, err := e.CreateStateView(fields[1])
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		return formatView(view)

	case "save":
		if db == nil {
			return "error: no -store configured"
		}
		saveIfConfigured(e, db)
		return "saved"

	default:
		return fmt.Sprintf("error: unknown command %q", fields[0])
	}
}

func saveIfConfigured(e *engine.Engine, db *store.Store) {
	if db == nil {
		return
	}
	data, err := e.SaveState()
	if err != nil {
		return
	}
	_ = db.SaveSnapshot(*gameID, data)
}

func formatView(view engine.GameStateView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "phase=%v turn=%v result=%v bp=%v", view.Phase, view.Turn, view.Result, view.OwnBP)
	if view.PendingDuel != nil {
		fmt.Fprintf(&sb, " duel{%v->%v}", view.PendingDuel.From, view.PendingDuel.To)
	}
	if view.PendingRetreat != nil {
		fmt.Fprintf(&sb, " retreat{piece@%v options=%v}", view.PendingRetreat.PieceSquare, len(view.PendingRetreat.Options))
	}
	return sb.String()
}
