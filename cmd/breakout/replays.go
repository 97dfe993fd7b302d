package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

// errMismatch is returned when a re-simulation diverges from its recording.
var errMismatch = errors.New("replay diverged from the recording")

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse and verify recorded sessions",
	Long: `Sessions played with --record are kept in the replay database as a
seed plus one input frame per tick. They are a debugging aid: a recording
can be re-simulated, but a session cannot be resumed from it.

Examples:
  breakout replays list
  breakout replays list --plain --limit 5
  breakout replays verify 3f2a9c
  breakout replays delete 3f2a9c`,
}

var replaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	Long: `Shows the most recent recordings. In a terminal the list is interactive:
enter verifies the selected recording, x deletes it.`,
	Run: runReplaysList,
}

var replaysVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-simulate a recording and compare its final state",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysVerify,
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recording",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysDelete,
}

func init() {
	replaysListCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the list instead of browsing it")
	replaysListCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of recordings to show")

	replaysCmd.AddCommand(replaysListCmd)
	replaysCmd.AddCommand(replaysVerifyCmd)
	replaysCmd.AddCommand(replaysDeleteCmd)
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening replay database: %v", err)
	}
	return store
}

func runReplaysList(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	replays, err := store.RecentReplays(flagLimit)
	if err != nil {
		store.Close()
		fail("retrieving replays: %v", err)
	}

	fd := int(os.Stdout.Fd())
	if flagPlain || !term.IsTerminal(fd) {
		printReplays(replays)
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		width, height = w, h
	}
	remove := func(id string) error {
		_, err := store.DeleteReplay(id)
		return err
	}

	selected, err := tui.RunReplays(replays, remove, width, height)
	if err != nil {
		store.Close()
		fail("running replay browser: %v", err)
	}
	if selected == "" {
		return
	}
	if err := verify(store, selected); err != nil {
		store.Close()
		fail("%v", err)
	}
}

func printReplays(replays []storage.ReplaySummary) {
	if len(replays) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breakout play --record' to record one.")
		return
	}

	format := "  %-8s  %-12s  %-20s  %-6s  %-5s  %s\n"
	cols := tui.ReplayColumns
	fmt.Printf(format, cols[0], cols[1], cols[2], cols[3], cols[4], cols[5])
	fmt.Printf(format, "--", "----", "----", "-----", "-----", "-------")
	for _, r := range replays {
		row := tui.ReplayRow(r)
		fmt.Printf(format, row[0], row[1], row[2], row[3], row[4], row[5])
	}
}

func runReplaysVerify(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if err := verify(store, args[0]); err != nil {
		store.Close()
		fail("%v", err)
	}
}

func runReplaysDelete(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	id, err := resolve(store, args[0])
	if err == nil {
		_, err = store.DeleteReplay(id)
	}
	if err != nil {
		store.Close()
		fail("%v", err)
	}
	fmt.Printf("Deleted %s\n", id)
}

// resolve expands an ID prefix, failing when nothing matches.
func resolve(store *storage.Store, prefix string) (string, error) {
	id, err := store.ResolveID(prefix)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("no replay with ID %q", prefix)
	}
	return id, nil
}

// verify re-simulates a stored recording and reports the outcome.
func verify(store *storage.Store, prefix string) error {
	id, err := resolve(store, prefix)
	if err != nil {
		return err
	}
	r, err := store.Replay(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no replay with ID %q", id)
	}

	got, err := resimulate(*r)
	if err != nil {
		return err
	}

	fmt.Printf("Replay %s: seed %d, %d ticks, %dx%d at %d fps\n",
		r.ID, r.Seed, r.Ticks(), r.ScreenW, r.ScreenH, r.TickRate)
	fmt.Printf("  recorded  %016x  stage %d  %s\n", r.FinalHash, r.FinalStage+1, r.Outcome)
	fmt.Printf("  simulated %016x\n", got)
	if got != r.FinalHash {
		return errMismatch
	}
	fmt.Println("  match")
	return nil
}

// resimulate runs a recording headlessly and returns the final state hash.
func resimulate(r storage.Replay) (uint64, error) {
	opts, err := breakout.ReplayOptions(r.Config, r.Stages)
	if err != nil {
		return 0, err
	}
	return breakout.Replay(opts, r.Runtime(), r.Frames()).Hash(), nil
}
