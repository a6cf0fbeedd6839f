package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/peterbourgon/ff/ffcli"

	"github.com/Vinothdevgit/voting-client/internal/bootstrap"
	"github.com/Vinothdevgit/voting-client/internal/domain/countdown"
	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	"github.com/Vinothdevgit/voting-client/internal/domain/routing"
	"github.com/Vinothdevgit/voting-client/internal/domain/tally"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
)

func (c *cli) loginCommand() *ffcli.Command {
	fs := newFlagSet("ballot login", c.stderr)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password (prompted when empty)")

	return &ffcli.Command{
		Name:      "login",
		Usage:     "ballot login -u <username> [-p <password>]",
		ShortHelp: "Sign in and store the session",
		FlagSet:   fs,
		Exec: func([]string) error {
			var err error
			if *username == "" {
				if *username, err = c.readLine("Username: "); err != nil {
					return err
				}
			}
			if *password == "" {
				if *password, err = c.readLine("Password: "); err != nil {
					return err
				}
			}

			return c.session(nil, func(app *bootstrap.App, _ routing.View) error {
				sess, err := app.Controller.Login(c.ctx, election.Credentials{Username: *username, Password: *password})
				if err != nil {
					return err
				}
				view := app.Controller.View()
				return c.printer().print(
					map[string]string{"username": *username, "role": sess.Role.String(), "home": view.String()},
					func(tw *tabwriter.Writer) {
						fmt.Fprintf(tw, "Logged in as %s (%s)\n", *username, sess.Role)
						fmt.Fprintf(tw, "Home:\t%s (%s)\n", view.Title(), view)
					},
				)
			})
		},
	}
}

func (c *cli) logoutCommand() *ffcli.Command {
	return &ffcli.Command{
		Name:      "logout",
		Usage:     "ballot logout",
		ShortHelp: "Clear the stored session",
		FlagSet:   newFlagSet("ballot logout", c.stderr),
		Exec: func([]string) error {
			return c.session(nil, func(app *bootstrap.App, _ routing.View) error {
				if err := app.Controller.Logout(c.ctx); err != nil {
					return err
				}
				c.printer().message("Logged out.")
				return nil
			})
		},
	}
}

type whoamiView struct {
	Subject   string    `json:"subject"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
	Home      string    `json:"home"`
	Menu      []string  `json:"menu"`
}

func (c *cli) whoamiCommand() *ffcli.Command {
	return &ffcli.Command{
		Name:      "whoami",
		Usage:     "ballot whoami",
		ShortHelp: "Show the stored session",
		FlagSet:   newFlagSet("ballot whoami", c.stderr),
		Exec: func([]string) error {
			return c.session(nil, func(app *bootstrap.App, home routing.View) error {
				sess, err := app.Sessions.Get(c.ctx)
				if err != nil {
					return err
				}
				if !sess.Authenticated() {
					return apperrors.Unauthenticated("not logged in")
				}

				out := whoamiView{Role: sess.Role.String(), Home: home.String()}
				for _, v := range routing.Reachable(sess) {
					out.Menu = append(out.Menu, v.Title())
				}
				// The stored role is authoritative; the token is only inspected
				// for display.
				if d, err := app.Decoder.Inspect(sess.Credential); err == nil {
					out.Subject = d.Subject
					out.ExpiresAt = d.ExpiresAt
				}

				return c.printer().print(out, func(tw *tabwriter.Writer) {
					fmt.Fprintf(tw, "User:\t%s\n", out.Subject)
					fmt.Fprintf(tw, "Role:\t%s\n", out.Role)
					if !out.ExpiresAt.IsZero() {
						fmt.Fprintf(tw, "Expires:\t%s\n", out.ExpiresAt.Format(time.RFC1123))
					}
					fmt.Fprintf(tw, "Home:\t%s\n", out.Home)
					fmt.Fprintf(tw, "Menu:\t%s\n", strings.Join(out.Menu, ", "))
				})
			})
		},
	}
}

type decisionView struct {
	Requested  string `json:"requested"`
	View       string `json:"view"`
	Title      string `json:"title"`
	Redirected bool   `json:"redirected"`
}

func (c *cli) openCommand() *ffcli.Command {
	return &ffcli.Command{
		Name:      "open",
		Usage:     "ballot open <path>",
		ShortHelp: "Resolve a client path for the stored session",
		FlagSet:   newFlagSet("ballot open", c.stderr),
		Exec: func(args []string) error {
			if len(args) != 1 {
				return apperrors.ValidationField("path", "exactly one path is required")
			}
			return c.session(nil, func(app *bootstrap.App, _ routing.View) error {
				d, err := app.Controller.Navigate(c.ctx, args[0])
				if err != nil {
					return err
				}
				out := decisionView{Requested: d.Requested, View: d.View.String(), Title: d.View.Title(), Redirected: d.Redirected}
				return c.printer().print(out, func(tw *tabwriter.Writer) {
					if d.Redirected {
						fmt.Fprintf(tw, "%s redirected to %s (%s)\n", d.Requested, d.View, d.View.Title())
						return
					}
					fmt.Fprintf(tw, "%s (%s)\n", d.View, d.View.Title())
				})
			})
		},
	}
}

func (c *cli) candidatesCommand() *ffcli.Command {
	fs := newFlagSet("ballot candidates", c.stderr)
	query := fs.String("q", "", "only show candidates matching this text")

	return &ffcli.Command{
		Name:      "candidates",
		Usage:     "ballot candidates [-q <text>]",
		ShortHelp: "List the candidates on the ballot",
		FlagSet:   fs,
		Exec: func([]string) error {
			return c.session(nil, func(app *bootstrap.App, _ routing.View) error {
				if err := requireView(c.ctx, app, routing.ViewVoting); err != nil {
					return err
				}
				cs := election.FilterCandidates(app.Ballot.Candidates(c.ctx), *query)
				return c.printCandidates(cs)
			})
		},
	}
}

func (c *cli) printCandidates(cs []election.Candidate) error {
	return c.printer().print(cs, func(tw *tabwriter.Writer) {
		if len(cs) == 0 {
			fmt.Fprintln(tw, "No candidates.")
			return
		}
		fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION\tPROMISES")
		for _, cand := range cs {
			promises := make([]string, len(cand.Promises))
			for i, p := range cand.Promises {
				promises[i] = string(p)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cand.ID, cand.Name, cand.Description, strings.Join(promises, "; "))
		}
	})
}

func (c *cli) voteCommand() *ffcli.Command {
	return &ffcli.Command{
		Name:      "vote",
		Usage:     "ballot vote <candidate-id>",
		ShortHelp: "Cast your ballot, wait out the countdown and show the results",
		FlagSet:   newFlagSet("ballot vote", c.stderr),
		Exec: func(args []string) error {
			if len(args) != 1 {
				return apperrors.ValidationField("candidate", "exactly one candidate id is required")
			}
			id := election.CandidateID(strings.TrimSpace(args[0]))
			p := c.printer()

			onTick := func(s countdown.State) {
				if p.format != formatTable {
					return
				}
				suffix := ""
				if s.Closing() {
					suffix = " (closing)"
				}
				fmt.Fprintf(c.stderr, "\rResults in %s%s   ", s.Display(), suffix)
			}

			return c.session(onTick, func(app *bootstrap.App, _ routing.View) error {
				if err := requireView(c.ctx, app, routing.ViewVoting); err != nil {
					return err
				}

				outcome, err := app.Controller.Vote(c.ctx, id)
				switch outcome {
				case election.OutcomeAccepted:
					p.message(outcome.Message())
				case election.OutcomeDuplicate:
					return apperrors.Conflict(outcome.Message())
				default:
					if err == nil {
						err = errors.New(outcome.Message())
					}
					return fmt.Errorf("%s: %w", outcome.Message(), err)
				}

				cd := app.Controller.Countdown()
				if cd == nil {
					return errors.New("countdown did not start")
				}
				onTick(cd.State())
				select {
				case <-cd.Done():
				case <-c.ctx.Done():
					return c.ctx.Err()
				}
				if p.format == formatTable {
					fmt.Fprintln(c.stderr)
				}
				if !cd.Finished() {
					return errors.New("countdown interrupted")
				}
				return c.showResults(app)
			})
		},
	}
}

func (c *cli) resultsCommand() *ffcli.Command {
	return &ffcli.Command{
		Name:      "results",
		Usage:     "ballot results",
		ShortHelp: "Show the election results",
		FlagSet:   newFlagSet("ballot results", c.stderr),
		Exec: func([]string) error {
			return c.session(nil, func(app *bootstrap.App, _ routing.View) error {
				if err := requireView(c.ctx, app, routing.ViewResults); err != nil {
					return err
				}
				return c.showResults(app)
			})
		},
	}
}

type rankedView struct {
	Rank        int      `json:"rank"`
	CandidateID string   `json:"candidateId,omitempty"`
	Name        string   `json:"name"`
	Votes       int64    `json:"votes"`
	Share       float64  `json:"share"`
	Promises    []string `json:"promises,omitempty"`
}

type resultsView struct {
	Headline   string       `json:"headline"`
	Pending    bool         `json:"pending"`
	TotalVotes int64        `json:"totalVotes"`
	Winner     *rankedView  `json:"winner,omitempty"`
	Entries    []rankedView `json:"entries"`
}

func newResultsView(s tally.Summary) resultsView {
	out := resultsView{Headline: s.Headline(), Pending: s.Pending(), TotalVotes: s.TotalVotes(), Entries: []rankedView{}}
	for _, r := range s.Ranked() {
		out.Entries = append(out.Entries, toRankedView(r))
	}
	if w, ok := s.Winner(); ok {
		rv := toRankedView(tally.Ranked{TallyEntry: w, Rank: 1, Share: s.Share(w.VoteCount)})
		out.Winner = &rv
	}
	return out
}

func toRankedView(r tally.Ranked) rankedView {
	promises := make([]string, len(r.Promises))
	for i, p := range r.Promises {
		promises[i] = string(p)
	}
	return rankedView{
		Rank:        r.Rank,
		CandidateID: string(r.CandidateID),
		Name:        r.Name,
		Votes:       r.VoteCount,
		Share:       r.Share,
		Promises:    promises,
	}
}

func (c *cli) showResults(app *bootstrap.App) error {
	s, err := app.Ballot.Results(c.ctx)
	if err != nil {
		return err
	}
	return c.printSummary(s)
}

func (c *cli) printSummary(s tally.Summary) error {
	return c.printer().print(newResultsView(s), func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, s.Headline())
		if s.Pending() {
			return
		}
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "RANK\tCANDIDATE\tVOTES\tSHARE")
		for _, r := range s.Ranked() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				tally.FormatRank(r.Rank), r.Name, tally.FormatCount(r.VoteCount), tally.FormatShare(r.Share))
		}
		if w, ok := s.Winner(); ok && len(w.Promises) > 0 {
			fmt.Fprintf(tw, "\n%s promised:\n", w.Name)
			for _, p := range w.Promises {
				fmt.Fprintf(tw, "  - %s\n", p)
			}
		}
	})
}
