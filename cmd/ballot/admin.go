package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/peterbourgon/ff/ffcli"

	"github.com/Vinothdevgit/voting-client/internal/bootstrap"
	domainauth "github.com/Vinothdevgit/voting-client/internal/domain/auth"
	"github.com/Vinothdevgit/voting-client/internal/domain/election"
	"github.com/Vinothdevgit/voting-client/internal/domain/routing"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
)

func (c *cli) adminCommand() *ffcli.Command {
	admin := &ffcli.Command{
		Name:      "admin",
		Usage:     "ballot admin <subcommand> [flags]",
		ShortHelp: "Manage users and candidates (ADMIN only)",
		FlagSet:   newFlagSet("ballot admin", c.stderr),
		Subcommands: []*ffcli.Command{
			c.addUserCommand(),
			c.addCandidateCommand(),
			c.editCandidateCommand(),
			c.deleteCandidateCommand(),
			c.adminCandidatesCommand(),
			c.voteSummaryCommand(),
		},
	}
	admin.Exec = c.usageExec(admin)
	return admin
}

// adminSession runs fn once the stored session has been allowed onto view.
func (c *cli) adminSession(view routing.View, fn func(app *bootstrap.App) error) error {
	return c.session(nil, func(app *bootstrap.App, _ routing.View) error {
		if err := requireView(c.ctx, app, view); err != nil {
			return err
		}
		return fn(app)
	})
}

func (c *cli) addUserCommand() *ffcli.Command {
	fs := newFlagSet("ballot admin add-user", c.stderr)
	username := fs.String("username", "", "login name for the new account")
	password := fs.String("password", "", "initial password")
	fullName := fs.String("full-name", "", "display name")
	role := fs.String("role", string(domainauth.RoleUser), "USER or ADMIN")

	return &ffcli.Command{
		Name:      "add-user",
		Usage:     "ballot admin add-user -username <name> -password <pw> -full-name <name> [-role USER|ADMIN]",
		ShortHelp: "Register a voter or administrator",
		FlagSet:   fs,
		Exec: func([]string) error {
			return c.adminSession(routing.ViewAddUser, func(app *bootstrap.App) error {
				err := app.Admin.AddUser(c.ctx, election.NewUser{
					Username: *username,
					Password: *password,
					FullName: *fullName,
					Role:     domainauth.Role(*role),
				})
				if err != nil {
					return err
				}
				c.printer().message("User %s registered.", strings.TrimSpace(*username))
				return nil
			})
		},
	}
}

// candidateFlags binds the add/edit candidate form.
type candidateFlags struct {
	name        *string
	description *string
	symbol      *string
	promises    *string
}

func bindCandidateFlags(fs *flag.FlagSet) candidateFlags {
	return candidateFlags{
		name:        fs.String("name", "", "candidate name"),
		description: fs.String("description", "", "short description"),
		symbol:      fs.String("symbol", "", "ballot symbol"),
		promises:    fs.String("promises", "", "one promise per line; - reads them from stdin"),
	}
}

func (c *cli) promiseText(raw string) (string, error) {
	if raw != "-" {
		return raw, nil
	}
	b, err := io.ReadAll(c.stdin)
	if err != nil {
		return "", fmt.Errorf("read promises: %w", err)
	}
	return string(b), nil
}

func (c *cli) addCandidateCommand() *ffcli.Command {
	fs := newFlagSet("ballot admin add-candidate", c.stderr)
	f := bindCandidateFlags(fs)

	return &ffcli.Command{
		Name:      "add-candidate",
		Usage:     "ballot admin add-candidate -name <name> [-description <text>] [-promises <lines>]",
		ShortHelp: "Put a candidate on the ballot",
		FlagSet:   fs,
		Exec: func([]string) error {
			text, err := c.promiseText(*f.promises)
			if err != nil {
				return err
			}
			return c.adminSession(routing.ViewAddCandidate, func(app *bootstrap.App) error {
				in := election.CandidateInput{
					Name:        *f.name,
					Description: *f.description,
					Symbol:      *f.symbol,
					Promises:    election.ParsePromises(text),
				}
				if err := app.Admin.AddCandidate(c.ctx, in); err != nil {
					return err
				}
				c.printer().message("Candidate %s added.", strings.TrimSpace(in.Name))
				return nil
			})
		},
	}
}

func (c *cli) editCandidateCommand() *ffcli.Command {
	fs := newFlagSet("ballot admin edit-candidate", c.stderr)
	f := bindCandidateFlags(fs)

	return &ffcli.Command{
		Name:      "edit-candidate",
		Usage:     "ballot admin edit-candidate [-name ...] [-description ...] [-promises ...] <candidate-id>",
		ShortHelp: "Change a candidate; unset flags keep their current value",
		FlagSet:   fs,
		Exec: func(args []string) error {
			if len(args) != 1 {
				return apperrors.ValidationField("candidate", "exactly one candidate id is required")
			}
			id := election.CandidateID(strings.TrimSpace(args[0]))

			set := map[string]bool{}
			fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
			text, err := c.promiseText(*f.promises)
			if err != nil {
				return err
			}

			return c.adminSession(routing.ViewManageCandidates, func(app *bootstrap.App) error {
				current, err := findCandidate(c, app, id)
				if err != nil {
					return err
				}

				in := election.CandidateInput{
					Name:        current.Name,
					Description: current.Description,
					Symbol:      current.Symbol,
				}
				for _, p := range current.Promises {
					in.Promises = append(in.Promises, string(p))
				}
				if set["name"] {
					in.Name = *f.name
				}
				if set["description"] {
					in.Description = *f.description
				}
				if set["symbol"] {
					in.Symbol = *f.symbol
				}
				if set["promises"] {
					in.Promises = election.ParsePromises(text)
				}

				if err := app.Admin.EditCandidate(c.ctx, id, in); err != nil {
					return err
				}
				c.printer().message("Candidate %s updated.", id)
				return nil
			})
		},
	}
}

func findCandidate(c *cli, app *bootstrap.App, id election.CandidateID) (election.Candidate, error) {
	cs, err := app.Admin.Candidates(c.ctx, "")
	if err != nil {
		return election.Candidate{}, err
	}
	for _, cand := range cs {
		if cand.ID == id {
			return cand, nil
		}
	}
	return election.Candidate{}, apperrors.NotFoundf("candidate %s not found", id)
}

func (c *cli) deleteCandidateCommand() *ffcli.Command {
	return &ffcli.Command{
		Name:      "delete-candidate",
		Usage:     "ballot admin delete-candidate <candidate-id>",
		ShortHelp: "Remove a candidate from the ballot",
		FlagSet:   newFlagSet("ballot admin delete-candidate", c.stderr),
		Exec: func(args []string) error {
			if len(args) != 1 {
				return apperrors.ValidationField("candidate", "exactly one candidate id is required")
			}
			id := election.CandidateID(strings.TrimSpace(args[0]))
			return c.adminSession(routing.ViewManageCandidates, func(app *bootstrap.App) error {
				if err := app.Admin.DeleteCandidate(c.ctx, id); err != nil {
					return err
				}
				c.printer().message("Candidate %s deleted.", id)
				return nil
			})
		},
	}
}

func (c *cli) adminCandidatesCommand() *ffcli.Command {
	fs := newFlagSet("ballot admin candidates", c.stderr)
	query := fs.String("q", "", "search name, description and promises")

	return &ffcli.Command{
		Name:      "candidates",
		Usage:     "ballot admin candidates [-q <text>]",
		ShortHelp: "List and search candidates",
		FlagSet:   fs,
		Exec: func([]string) error {
			return c.adminSession(routing.ViewManageCandidates, func(app *bootstrap.App) error {
				cs, err := app.Admin.Candidates(c.ctx, *query)
				if err != nil {
					return err
				}
				return c.printCandidates(cs)
			})
		},
	}
}

type overviewView struct {
	Candidates int         `json:"candidates"`
	Votes      resultsView `json:"votes"`
}

func (c *cli) voteSummaryCommand() *ffcli.Command {
	return &ffcli.Command{
		Name:      "votes",
		Usage:     "ballot admin votes",
		ShortHelp: "Show the vote summary with the candidate count",
		FlagSet:   newFlagSet("ballot admin votes", c.stderr),
		Exec: func([]string) error {
			return c.adminSession(routing.ViewVoteSummary, func(app *bootstrap.App) error {
				o, err := app.Admin.Overview(c.ctx)
				if err != nil {
					return err
				}
				p := c.printer()
				if p.format != formatTable {
					return p.print(overviewView{Candidates: o.CandidateCount(), Votes: newResultsView(o.Votes)}, nil)
				}
				fmt.Fprintf(c.stdout, "Candidates: %d\n", o.CandidateCount())
				return c.printSummary(o.Votes)
			})
		},
	}
}
