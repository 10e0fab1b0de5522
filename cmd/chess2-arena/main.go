// chess2-arena plays computer-vs-computer games headlessly and reports
// the results.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chess2/internal/board"
	"github.com/hailam/chess2/internal/engine"
	"github.com/hailam/chess2/internal/session"
	"github.com/hailam/chess2/internal/storage"
)

var (
	games    = flag.Int("games", 10, "number of games to play")
	size     = flag.Int("size", board.DefaultBoardSize, "board size")
	white    = flag.Int("white", int(engine.DefaultDifficulty), "difficulty of the White computer (1-10)")
	black    = flag.Int("black", int(engine.DefaultDifficulty), "difficulty of the Black computer (1-10)")
	parallel = flag.Int("parallel", runtime.NumCPU(), "games played at once")
	maxPlies = flag.Int("maxplies", 400, "plies before a game counts as unfinished")
	save     = flag.Bool("save", true, "store the run summary with the game statistics")
)

type tally struct {
	mu         sync.Mutex
	whiteWins  int
	blackWins  int
	unfinished int
}

func (t *tally) add(winner board.Color, finished bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch {
	case !finished:
		t.unfinished++
	case winner == board.White:
		t.whiteWins++
	default:
		t.blackWins++
	}
}

func main() {
	flag.Parse()

	if *size < board.MinBoardSize || *size > board.MaxBoardSize {
		log.Fatalf("[ARENA] board size must be between %d and %d", board.MinBoardSize, board.MaxBoardSize)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run := &storage.ArenaRun{
		ID:        uuid.NewString(),
		Started:   time.Now(),
		BoardSize: *size,
		White:     int(engine.Difficulty(*white).Clamp()),
		Black:     int(engine.Difficulty(*black).Clamp()),
		Games:     *games,
	}
	log.Printf("[ARENA] run %s: %d games on %dx%d, White L%d vs Black L%d, %d at once",
		run.ID, run.Games, *size, *size, run.White, run.Black, *parallel)

	var t tally
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, *parallel))
	for i := range *games {
		g.Go(func() error {
			winner, finished, err := playGame(ctx, i, run)
			if err != nil {
				return err
			}
			t.add(winner, finished)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("[ARENA] stopped early: %v", err)
	}

	run.WhiteWins, run.BlackWins, run.Unfinished = t.whiteWins, t.blackWins, t.unfinished
	run.Duration = time.Since(run.Started)
	log.Printf("[ARENA] White %d, Black %d, unfinished %d in %v",
		run.WhiteWins, run.BlackWins, run.Unfinished, run.Duration.Round(time.Second))

	if *save {
		saveRun(run)
	}
}

// playGame plays one game, switching the difficulty to the side to move
// before every search.
func playGame(ctx context.Context, n int, run *storage.ArenaRun) (board.Color, bool, error) {
	sess, err := session.New(session.Config{
		Size:       run.BoardSize,
		Mode:       session.ComputerVsComputer,
		Difficulty: engine.Difficulty(run.White),
	}, engine.NewEngine())
	if err != nil {
		return board.White, false, err
	}

	for sess.Ply() < *maxPlies && !sess.State().GameOver() {
		if err := ctx.Err(); err != nil {
			return board.White, false, err
		}
		d := engine.Difficulty(run.White)
		if sess.State().Turn == board.Black {
			d = engine.Difficulty(run.Black)
		}
		sess.SetDifficulty(d)
		if _, ok := sess.ComputerTurn(); !ok {
			break
		}
	}

	st := sess.State()
	if !st.GameOver() {
		log.Printf("[ARENA] game %d (%s) unfinished after %d plies", n+1, sess.ID, sess.Ply())
		return board.White, false, nil
	}
	log.Printf("[ARENA] game %d (%s): %s wins in %d plies", n+1, sess.ID, st.Winner, sess.Ply())
	return st.Winner, true, nil
}

func saveRun(run *storage.ArenaRun) {
	store, err := storage.NewStorage()
	if err != nil {
		log.Printf("Warning: Failed to open storage: %v", err)
		return
	}
	defer store.Close()

	if err := store.SaveArenaRun(run); err != nil {
		log.Printf("Warning: Failed to save arena run: %v", err)
		return
	}
	log.Printf("[ARENA] saved run %s", run.ID)
}
