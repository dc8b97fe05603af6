package cmd

import (
	"bufio"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/misterclayt0n/hygie/internal/models"
	"github.com/misterclayt0n/hygie/internal/provider"
	"github.com/misterclayt0n/hygie/internal/session"
	"github.com/misterclayt0n/hygie/internal/utils"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	sessionProfile  string
	sessionMinutes  int
	sessionFocus    string
	sessionPlanFile string
)

var errNoCommand = errors.New("no command")

const sessionHelp = `Commands:
  start               begin the warm-up
  done <kg> <reps>    validate the current set
  skip                skip the current warm-up or cool-down item
  rest                skip the rest period
  swap                replace the current exercise
  archive             save the session
  abandon             drop the session
  stats / back        show the profile stats, leave them
  state               print the current step again
  quit                leave without saving`

var startCmd = &cobra.Command{
	Use:   "start-session",
	Short: "Run a guided training session in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		id, err := st.ResolveProfileID(ctx, sessionProfile)
		if err != nil {
			return err
		}

		var plans provider.PlanProvider = provider.New(cfg.Provider)
		if sessionPlanFile != "" {
			plan, err := utils.ParsePlanFile(sessionPlanFile)
			if err != nil {
				return fmt.Errorf("failed to read plan: %w", err)
			}
			plans = filePlan{PlanProvider: plans, plan: *plan}
		}

		view := newSessionView(cmd.OutOrStdout())
		c := session.NewController(st, plans, session.RealClock(utils.Loc), session.Options{
			ProfileID:       id,
			Minutes:         cmp.Or(sessionMinutes, cfg.Session.DurationMinutes),
			Focus:           cmp.Or(sessionFocus, cfg.Session.Focus),
			ProviderTimeout: cfg.ProviderTimeout(),
			OnChange:        view.onChange,
		})
		if err := c.Prepare(ctx); err != nil {
			return fmt.Errorf("failed to prepare session: %w", err)
		}

		runCtx, cancel := context.WithCancel(ctx)
		defer func() {
			cancel()
			<-c.Done()
		}()
		go func() {
			if err := c.Run(runCtx); err != nil {
				logrus.WithError(err).Errorln("session loop stopped")
			}
		}()

		s, err := c.State(ctx)
		if err != nil {
			return err
		}
		view.show(s)

		lines := readLines(ctx, cmd.InOrStdin())
		for {
			select {
			case <-ctx.Done():
				fmt.Println("\nInterrupted, nothing was saved.")
				return nil

			case line, ok := <-lines:
				if !ok {
					return nil
				}
				sc, err := parseCommand(line)
				if errors.Is(err, errNoCommand) {
					continue
				}
				if err != nil {
					printError(err)
					continue
				}

				over, err := apply(ctx, c, view, sc)
				if err != nil {
					printError(err)
					continue
				}
				if over {
					return nil
				}
			}
		}
	},
}

// filePlan serves a plan read from disk and leaves every other call to the configured provider.
type filePlan struct {
	provider.PlanProvider
	plan models.WorkoutPlan
}

func (f filePlan) GeneratePlan(context.Context, *models.Profile, int, string) (models.WorkoutPlan, error) {
	return f.plan, nil
}

type sessionCommand struct {
	name   string
	weight float64
	reps   int
}

func parseCommand(line string) (sessionCommand, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return sessionCommand{}, errNoCommand
	}

	sc := sessionCommand{name: fields[0]}
	switch sc.name {
	case "done":
		if len(fields) != 3 {
			return sessionCommand{}, fmt.Errorf("usage: done <kg> <reps>")
		}
		weight, err := strconv.ParseFloat(strings.TrimSuffix(fields[1], "kg"), 64)
		if err != nil {
			return sessionCommand{}, fmt.Errorf("invalid weight %q", fields[1])
		}
		reps, err := strconv.Atoi(fields[2])
		if err != nil {
			return sessionCommand{}, fmt.Errorf("invalid reps %q", fields[2])
		}
		sc.weight, sc.reps = weight, reps
	case "start", "skip", "rest", "swap", "archive", "abandon", "stats", "back", "state", "help", "quit":
	default:
		return sessionCommand{}, fmt.Errorf("unknown command %q, type help", sc.name)
	}
	return sc, nil
}

// apply sends sc to the controller. It reports whether the terminal session is over.
func apply(ctx context.Context, c *session.Controller, view *sessionView, sc sessionCommand) (bool, error) {
	var err error
	switch sc.name {
	case "start":
		_, err = c.Start(ctx)
	case "done":
		_, err = c.ValidateSet(ctx, sc.weight, sc.reps)
	case "skip":
		_, err = c.Skip(ctx)
	case "rest":
		_, err = c.SkipRest(ctx)
	case "swap":
		_, err = c.Substitute(ctx)

	case "archive":
		if _, err = c.Archive(ctx); err != nil {
			return false, fmt.Errorf("%w, type archive to retry", err)
		}
		return true, nil

	case "abandon":
		if _, err = c.Abandon(ctx); err == nil {
			fmt.Println("Session abandoned, nothing was saved.")
			return true, nil
		}

	case "stats":
		var s session.State
		if s, err = c.BrowseStats(ctx); err == nil {
			printStatus(s.Profile, time.Now())
			if unarchived(s) {
				color.New(color.FgYellow).Println("⚠ This session is not archived, leaving the stats drops it.")
			}
		}

	case "back":
		prev, err := c.State(ctx)
		if err != nil {
			return false, err
		}
		if _, err = c.ExitStats(ctx); err != nil {
			return false, err
		}
		if unarchived(prev) {
			fmt.Println("Session dropped, nothing was saved.")
		}
		// a started session is gone once the stats are left
		return !prev.StartedAt.IsZero(), nil

	case "state":
		var s session.State
		if s, err = c.State(ctx); err == nil {
			view.show(s)
		}
	case "help":
		fmt.Println(sessionHelp)
	case "quit":
		return true, nil
	}
	return false, err
}

// unarchived reports whether s belongs to a started session the store has no record of.
func unarchived(s session.State) bool {
	if s.StartedAt.IsZero() {
		return false
	}
	if s.Loaded == nil {
		return true
	}
	for _, done := range s.Loaded.CompletedSessions() {
		if done.ID == s.ID {
			return false
		}
	}
	return true
}

// readLines streams the lines of r until it ends or ctx is done. A read already blocked on r
// only returns with the next line.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func printError(err error) {
	color.New(color.FgRed).Fprintf(os.Stderr, "\n✗ %v\n", err)
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVarP(&sessionProfile, "profile", "p", "", "Profile name/ID")
	startCmd.Flags().IntVarP(&sessionMinutes, "minutes", "m", 0, "Session length in minutes (config default when 0)")
	startCmd.Flags().StringVarP(&sessionFocus, "focus", "f", "", "Session focus, e.g. upper, lower, full body")
	startCmd.Flags().StringVar(&sessionPlanFile, "plan", "", "Run this TOML or YAML plan instead of asking the provider")
	startCmd.MarkFlagRequired("profile")
}
