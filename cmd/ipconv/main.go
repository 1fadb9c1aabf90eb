// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/curioloop/ipconv/convcheck"
	"github.com/curioloop/ipconv/linalg"
	"github.com/curioloop/ipconv/replay"
)

var (
	flagOptionsPath string
	flagStopAt      int
	flagLogLevel    int
	flagLinalg      string
)

func main() {
	root := newRootCmd()
	root.SilenceUsage = true
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ipconv",
		Short: "Interior-point termination checks",
		Long:  "ipconv replays recorded interior-point iterations through the termination and acceptable point tests.",
	}

	cmd.PersistentFlags().StringVar(&flagOptionsPath, "options", "", "path to a YAML file with termination options")

	cmd.AddCommand(replayCmd())
	cmd.AddCommand(optionsCmd())
	cmd.AddCommand(checkCmd())
	return cmd
}

func loadOptions() (convcheck.Termination, error) {
	if flagOptionsPath == "" {
		return convcheck.DefaultTermination(), nil
	}
	return convcheck.LoadTermination(flagOptionsPath)
}

func provider(name string) (linalg.Provider, error) {
	switch name {
	case "gonum", "":
		return linalg.Gonum{}, nil
	case "blas":
		return linalg.Blas{}, nil
	default:
		return nil, fmt.Errorf("unknown linear algebra provider %q", name)
	}
}

func replayCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "replay TRACE",
		Short: "Replay a YAML trace through the convergence check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop, err := loadOptions()
			if err != nil {
				return err
			}
			trace, err := replay.LoadTrace(args[0])
			if err != nil {
				return err
			}
			norm, err := provider(flagLinalg)
			if err != nil {
				return err
			}

			p := convcheck.Problem{Stop: stop, Norm: norm}
			if flagStopAt >= 0 {
				p.Callback = replay.StopAt(flagStopAt)
			}

			out := cmd.OutOrStdout()
			logger := &convcheck.Logger{
				Level: convcheck.LogLevel(flagLogLevel),
				Msg:   out,
				Out:   out,
			}

			sum, err := replay.Run(trace, p, logger)
			if err != nil {
				return err
			}
			sum.Write(out)
			return nil
		},
	}
	c.Flags().IntVar(&flagStopAt, "stop-at", -1, "request a user stop at this iteration")
	c.Flags().IntVar(&flagLogLevel, "log-level", int(convcheck.LogNoop), "checker log level (-1 none, 0 exit, 1 iterations, 2 details)")
	c.Flags().StringVar(&flagLinalg, "linalg", "gonum", "norm provider: gonum or blas")
	return c
}

func optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the termination options with their bounds and values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stop, err := loadOptions()
			if err != nil {
				return err
			}
			writeOptions(cmd.OutOrStdout(), &stop)
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a YAML options file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := convcheck.LoadTermination(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}
}

func writeOptions(w io.Writer, stop *convcheck.Termination) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "option\ttype\tbound\tdefault\tvalue\tdescription")
	for _, o := range convcheck.Options() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%s\n",
			o.Name, o.Kind, o.Bound(), o.Default, o.Value(stop), o.Description)
	}
	_ = tw.Flush()
}
