package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"invest-sim/domain"
	"invest-sim/report"
	"invest-sim/service"
)

type inputFlags struct {
	name         string
	initial      float64
	contribution float64
	term         float64
	termUnit     string
	rate         float64
	rateUnit     string
	tax          float64
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.name, "name", "n", "", "scenario name")
	fs.Float64Var(&f.initial, "initial", 0, "initial amount")
	fs.Float64Var(&f.contribution, "contribution", 0, "monthly contribution")
	fs.Float64Var(&f.term, "term", 0, "term length")
	fs.StringVar(&f.termUnit, "term-unit", string(domain.TermMonths), "term unit (months|years)")
	fs.Float64Var(&f.rate, "rate", 0, "rate of return, in percent")
	fs.StringVar(&f.rateUnit, "rate-unit", string(domain.RateAnnual), "rate period (monthly|annual)")
	fs.Float64Var(&f.tax, "tax", 0, "tax on gains, in percent")
}

func (f *inputFlags) input() (domain.ScenarioInput, error) {
	in := domain.ScenarioInput{
		Name:                  f.name,
		InitialAmount:         f.initial,
		RecurringContribution: f.contribution,
		TermValue:             f.term,
		TermUnit:              domain.TermUnit(f.termUnit),
		RateValue:             f.rate,
		RateUnit:              domain.RateUnit(f.rateUnit),
		TaxRatePercent:        f.tax,
	}
	if !in.TermUnit.Valid() {
		return in, fmt.Errorf("invalid --term-unit %q: must be months or years", f.termUnit)
	}
	if !in.RateUnit.Valid() {
		return in, fmt.Errorf("invalid --rate-unit %q: must be monthly or annual", f.rateUnit)
	}
	return in, nil
}

// NewCalcCommand creates the calc command.
func NewCalcCommand(opts *RootOptions) *cobra.Command {
	flags := &inputFlags{}
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Project a scenario without saving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input()
			if err != nil {
				return err
			}
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			result := app.Service.Calculate(input)
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writeResult(cmd.OutOrStdout(), app.Service.Formatter(), result)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

// NewSaveCommand creates the save command.
func NewSaveCommand(opts *RootOptions) *cobra.Command {
	flags := &inputFlags{}
	var index int
	var expectedID string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Project a scenario and save it, or replace a saved one with --index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.input()
			if err != nil {
				return err
			}
			target := domain.Create()
			if cmd.Flags().Changed("index") {
				target = domain.UpdateAt(index).WithExpectedID(expectedID)
			}

			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			out, err := app.Service.Submit(input, target)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q at index %d\n", input.Name, out.Index)
			return writeResult(cmd.OutOrStdout(), app.Service.Formatter(), out.Result)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().IntVar(&index, "index", -1, "index of the saved scenario to replace")
	cmd.Flags().StringVar(&expectedID, "id", "", "expected id of the scenario at --index")
	return cmd
}

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			views := app.Service.ListForDisplay()
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), views)
			}
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No scenarios saved yet.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tFINAL VALUE\tCONTRIBUTION\tTERM\tRATE")
			for _, v := range views {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s /month\t%g %s\t%g%% %s\n",
					v.Index, v.Name, v.FormattedFinalValue, v.FormattedContribution,
					v.TermValue, v.TermUnit, v.RateValue, v.RateUnit)
			}
			return tw.Flush()
		},
	}
}

// NewShowCommand creates the show command.
func NewShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <index>",
		Short: "Show the stored inputs and result of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			scenario, err := app.Service.Scenario(index)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), scenario)
			}

			out := cmd.OutOrStdout()
			in := scenario.Input
			money := app.Service.Formatter()
			fmt.Fprintf(out, "Name:          %s\n", in.Name)
			fmt.Fprintf(out, "ID:            %s\n", scenario.ID)
			fmt.Fprintf(out, "Initial:       %s\n", money.FormatAmount(in.InitialAmount))
			fmt.Fprintf(out, "Contribution:  %s /month\n", money.FormatAmount(in.RecurringContribution))
			fmt.Fprintf(out, "Term:          %g %s\n", in.TermValue, in.TermUnit)
			fmt.Fprintf(out, "Rate:          %g%% %s\n", in.RateValue, in.RateUnit)
			fmt.Fprintf(out, "Tax on gains:  %g%%\n", in.TaxRatePercent)
			return writeResult(out, money, scenario.Result)
		},
	}
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(opts *RootOptions) *cobra.Command {
	var yes bool
	var expectedID string

	cmd := &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete a saved scenario",
		Long: `Delete the scenario at <index>. Scenarios after it move up by one
position. Asks for confirmation unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			scenario, err := app.Service.Scenario(index)
			if err != nil {
				return err
			}
			if expectedID == "" {
				expectedID = scenario.ID
			}

			if !yes {
				confirmer := opts.confirmer
				if confirmer == nil {
					confirmer = readlineConfirmer{in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
				}
				ok, err := confirmer.Confirm(fmt.Sprintf("Delete scenario %q?", scenario.Input.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Service.RequestDelete(index, expectedID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", scenario.Input.Name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().StringVar(&expectedID, "id", "", "expected id of the scenario at <index>")
	return cmd
}

// NewExportCommand creates the export command.
func NewExportCommand(opts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved scenarios as a PDF report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			rep := report.NewScenarioReport(app.Service.Formatter())
			if err := rep.Write(f, app.Service.Scenarios(), time.Now()); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "scenarios.pdf", "PDF file to write")
	return cmd
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", arg)
	}
	return index, nil
}

func writeResult(w io.Writer, money *service.MoneyFormatter, result domain.ScenarioResult) error {
	_, err := fmt.Fprintf(w,
		"Final net value:   %s\nTotal contributed: %s\nNet gain:          %s\nTaxes:             %s\n",
		money.Format(result.FinalNetValue),
		money.Format(result.TotalContributed),
		money.Format(result.NetGain),
		money.Format(result.TaxAmount),
	)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
