package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/dugout/internal/domain/model"
)

func newPlayersCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "List, show and edit players",
	}
	cmd.AddCommand(newPlayersListCommand(ctx))
	cmd.AddCommand(newPlayersShowCommand(ctx))
	cmd.AddCommand(newPlayersEditCommand(ctx))
	cmd.AddCommand(newPlayersDescribeCommand(ctx))
	return cmd
}

func newPlayersListCommand(ctx *commandContext) *cobra.Command {
	var sortField string
	var desc bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			players, err := ctx.client().ListPlayers(cmd.Context(), sortField, desc)
			if err != nil {
				return err
			}
			if ctx.json {
				return writeJSON(cmd, players)
			}
			if len(players) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No players")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPlayers(players))
			return nil
		},
	}
	cmd.Flags().StringVar(&sortField, "sort", "", "Sort by field (e.g. homeRuns, avg, name)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	return cmd
}

func newPlayersShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.client().GetPlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if ctx.json {
				return writeJSON(cmd, p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPlayer(p))
			return nil
		},
	}
}

func newPlayersEditCommand(ctx *commandContext) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:     "edit <id> --set field=value...",
		Short:   "Edit player fields",
		Example: "  dugoutctl players edit babe-ruth-0 --set homeRuns=715 --set avg=0.345",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parseAssignments(sets)
			if err != nil {
				return err
			}
			p, err := ctx.client().UpdatePlayer(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			if ctx.json {
				return writeJSON(cmd, p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPlayer(p))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value to change (repeatable)")
	return cmd
}

func newPlayersDescribeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <id>",
		Short: "Show the scouting report, generating it on first use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := ctx.client().Describe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if ctx.json {
				return writeJSON(cmd, report)
			}
			source := "generated"
			if report.Cached {
				source = "cached"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n(%s)\n", report.Description, source)
			return nil
		},
	}
}

// Field kinds accepted by --set, keyed by JSON name.
var editableFields = map[string]string{
	"name": "string", "position": "string",
	"games": "int", "atBats": "int", "runs": "int", "hits": "int",
	"doubles": "int", "triples": "int", "homeRuns": "int", "rbi": "int",
	"walks": "int", "strikeouts": "int", "stolenBases": "int", "caughtStealing": "int",
	"avg": "float", "obp": "float", "slg": "float", "ops": "float",
}

// parseAssignments turns field=value pairs into a typed JSON patch. Range
// checks are left to the server.
func parseAssignments(sets []string) (map[string]any, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("at least one --set field=value is required")
	}
	patch := make(map[string]any, len(sets))
	for _, s := range sets {
		field, value, ok := strings.Cut(s, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid --set %q: want field=value", s)
		}
		kind, known := editableFields[field]
		if !known {
			return nil, fmt.Errorf("unknown field %q", field)
		}
		switch kind {
		case "int":
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("field %q: %q is not an integer", field, value)
			}
			patch[field] = n
		case "float":
			f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil {
				return nil, fmt.Errorf("field %q: %q is not a number", field, value)
			}
			patch[field] = f
		default:
			patch[field] = value
		}
	}
	return patch, nil
}

func renderPlayers(players []model.Player) string {
	headers := []string{"ID", "Name", "Pos", "G", "H", "HR", "RBI", "AVG", "OPS"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight}
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{
			p.ID, p.Name, p.Position,
			strconv.Itoa(p.Games), strconv.Itoa(p.Hits), strconv.Itoa(p.HomeRuns), strconv.Itoa(p.RBI),
			formatRate(p.Average), formatRate(p.OPS),
		})
	}
	return renderTable(headers, rows, aligns)
}

func renderPlayer(p model.Player) string {
	description := "-"
	if p.HasDescription() {
		description = *p.Description
	}
	rows := [][]string{
		{"ID", p.ID},
		{"Name", p.Name},
		{"Position", p.Position},
		{"Games", strconv.Itoa(p.Games)},
		{"At bats", strconv.Itoa(p.AtBats)},
		{"Runs", strconv.Itoa(p.Runs)},
		{"Hits", strconv.Itoa(p.Hits)},
		{"Doubles", strconv.Itoa(p.Doubles)},
		{"Triples", strconv.Itoa(p.Triples)},
		{"Home runs", strconv.Itoa(p.HomeRuns)},
		{"RBI", strconv.Itoa(p.RBI)},
		{"Walks", strconv.Itoa(p.Walks)},
		{"Strikeouts", strconv.Itoa(p.Strikeouts)},
		{"Stolen bases", strconv.Itoa(p.StolenBases)},
		{"Caught stealing", strconv.Itoa(p.CaughtStealing)},
		{"AVG", formatRate(p.Average)},
		{"OBP", formatRate(p.OnBase)},
		{"SLG", formatRate(p.Slugging)},
		{"OPS", formatRate(p.OPS)},
		{"Scouting report", description},
	}
	return renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
