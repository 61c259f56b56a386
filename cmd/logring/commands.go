package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/luhtfiimanal/go-logring"
)

func (a *app) pushCommand() *cobra.Command {
	var (
		id        uint64
		fromStdin bool
	)
	cmd := &cobra.Command{
		Use:   "push [payload...]",
		Short: "Append one record per argument (or per stdin line)",
		RunE: func(cmd *cobra.Command, args []string) error {
			payloads := make([][]byte, 0, len(args))
			for _, arg := range args {
				payloads = append(payloads, []byte(arg))
			}
			if fromStdin {
				lines, err := readLines(a.stdin)
				if err != nil {
					return err
				}
				payloads = append(payloads, lines...)
			}
			if len(payloads) == 0 {
				return errors.New("nothing to push: give payload arguments or --stdin")
			}

			explicitID := cmd.Flags().Changed("id")
			return a.withRing(func(r *logring.Ring) error {
				for i, p := range payloads {
					var err error
					if explicitID {
						err = r.Push(id+uint64(i), p)
					} else {
						_, err = r.PushNow(p)
					}
					if err != nil {
						return errors.WithMessagef(err, "push record %d", i)
					}
				}
				a.log.Info().Int("records", len(payloads)).Int64("used", r.Used()).Msg("pushed")
				return nil
			})
		},
	}
	cmd.Flags().Uint64Var(&id, "id", 0, "id of the first record (default: current time in ms)")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "also push every line read from stdin")
	return cmd
}

func (a *app) shiftCommand() *cobra.Command {
	var (
		count  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Remove and print the oldest records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(cmd.OutOrStdout(), asJSON)
			return a.withRing(func(r *logring.Ring) error {
				for i := 0; i < count; i++ {
					rec, err := r.Shift()
					if errors.Is(err, logring.ErrEmptyLog) && i > 0 {
						return nil
					}
					if err != nil {
						return err
					}
					if err := out.record(rec); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "maximum number of records to shift")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON lines")
	return cmd
}

func (a *app) dumpCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every stored record, oldest first, without consuming",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(cmd.OutOrStdout(), asJSON)
			return a.withRing(func(r *logring.Ring) error {
				return r.ForEach(out.record)
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON lines")
	return cmd
}

func (a *app) statCommand() *cobra.Command {
	var (
		asJSON bool
		watch  bool
	)
	cmd := &cobra.Command{
		Use:   "stat",
		Short: "Print header and occupancy without taking ownership of the log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(cmd.OutOrStdout(), asJSON)
			if watch {
				out.compact = true
				return watchHeader(cmd.Context(), a.cfg.File, a.log, out.snapshot)
			}
			s, err := logring.ReadHeader(a.cfg.File)
			if err != nil {
				return err
			}
			return out.snapshot(s)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "print again whenever the file is written")
	return cmd
}

func (a *app) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every stored record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRing(func(r *logring.Ring) error {
				return r.Clear()
			})
		},
	}
}

func (a *app) resizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resize <limit>",
		Short: "Rewrite the log with a new total size, keeping the newest records that fit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Wrapf(err, "limit %q", args[0])
			}
			return a.withRing(func(r *logring.Ring) error {
				dropped, err := r.Resize(limit)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "limit=%d dropped=%d\n", r.Limit(), dropped)
				return nil
			})
		},
	}
}

func readLines(in io.Reader) ([][]byte, error) {
	var lines [][]byte
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, append([]byte(nil), sc.Bytes()...))
	}
	return lines, errors.Wrap(sc.Err(), "read stdin")
}
