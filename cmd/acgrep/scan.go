package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sarthakjha889/go-aho-corasick/dict"
)

var (
	dictFile   string
	ignoreCase bool
	normalise  bool
	overlap    bool
	countOnly  bool
)

// scanCmd searches files for the patterns of a dictionary.
var scanCmd = &cobra.Command{
	Use:   "scan -d DICT [file...]",
	Short: "Search files for dictionary patterns",
	Long: `Scan reads each file (standard input when none are given or for "-")
and prints every occurrence as file:line:column: text [label]. Files are
scanned concurrently and reported in argument order.

The exit status is 0 when something matched, 1 when nothing did and 2 on error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(dictFile)
		if err != nil {
			return fmt.Errorf("open dictionary: %w", err)
		}
		defer f.Close()

		d, err := dict.Parse(f, dict.Options{
			CaseInsensitive: ignoreCase,
			Normalise:       normalise,
			Overlapping:     overlap,
		})
		if err != nil {
			return fmt.Errorf("parse dictionary %s: %w", dictFile, err)
		}

		log := newLogger("warn", "")
		log.Debug("dictionary loaded", "path", dictFile, "patterns", d.Len())

		total, err := scanFiles(cmd.Context(), d, args, cmd.InOrStdin(), cmd.OutOrStdout(), countOnly)
		if err != nil {
			return err
		}
		if total == 0 {
			return errNoMatch
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&dictFile, "dict", "d", "", "Dictionary file")
	scanCmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "Fold case on patterns and text")
	scanCmd.Flags().BoolVarP(&normalise, "normalise", "n", false, "Ignore diacritics on patterns and text")
	scanCmd.Flags().BoolVar(&overlap, "overlap", false, "Report overlapping occurrences")
	scanCmd.Flags().BoolVarP(&countOnly, "count", "c", false, "Print only the number of occurrences per file")
	_ = scanCmd.MarkFlagRequired("dict")
}

type fileResult struct {
	out     bytes.Buffer
	matches int
}

// scanFiles scans files concurrently and writes their results to out in
// argument order. It returns the total number of occurrences.
func scanFiles(ctx context.Context, d *dict.Dictionary, files []string, stdin io.Reader, out io.Writer, countOnly bool) (int, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if name == "-" {
				return scanReader(d, "(standard input)", stdin, &results[i], countOnly)
			}
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			defer f.Close()
			return scanReader(d, name, f, &results[i], countOnly)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for i := range results {
		if countOnly {
			fmt.Fprintf(out, "%s:%d\n", displayName(files[i]), results[i].matches)
		} else if _, err := out.Write(results[i].out.Bytes()); err != nil {
			return 0, err
		}
		total += results[i].matches
	}
	return total, nil
}

func displayName(name string) string {
	if name == "-" {
		return "(standard input)"
	}
	return name
}

func scanReader(d *dict.Dictionary, name string, r io.Reader, res *fileResult, countOnly bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for n := 1; sc.Scan(); n++ {
		ms := d.FindAll(sc.Text())
		res.matches += len(ms)
		if countOnly {
			continue
		}
		for _, m := range ms {
			fmt.Fprintf(&res.out, "%s:%d:%d: %s", name, n, m.Begin+1, m.Text)
			if m.Value != m.Pattern {
				fmt.Fprintf(&res.out, " [%s]", m.Value)
			}
			res.out.WriteByte('\n')
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
