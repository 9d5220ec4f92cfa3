// Copyright 2026 The Turn Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Command turn optimizes combinational logic networks stored in
// ASCII aiger format.
package main

import (
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-air/turn/aiger"
	"github.com/go-air/turn/resub"
	"github.com/go-air/turn/vlog"
)

var log = logrus.New()

var (
	outPath    string
	outFormat  string
	moduleName string
	maxLeaves  int
	maxInserts int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "turn",
	Short:         "turn reworks majority logic networks",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
}

var optCmd = &cobra.Command{
	Use:   "opt <input.aag>",
	Short: "resubstitute and shrink a network",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := path2Reader(args[0])
		if err != nil {
			return err
		}
		a, err := aiger.Read(r)
		if err != nil {
			return err
		}
		m := a.Mig()
		log.WithFields(logrus.Fields{
			"ins":   m.NumIns(),
			"outs":  m.NumOuts(),
			"gates": m.NumLiveGates(),
		}).Info("read network")

		ps := resub.NewParams()
		ps.MaxLeaves = maxLeaves
		ps.MaxInserts = maxInserts
		ps.Verbose = verbose
		ps.Logger = log
		st := resub.Run(m, ps)
		st.Report(log)
		log.WithField("gates", m.NumLiveGates()).Info("optimized network")

		w, closer, err := path2Writer(outPath)
		if err != nil {
			return err
		}
		defer closer()
		switch format(outPath) {
		case "v":
			return vlog.Write(w, m, vlog.Params{ModuleName: moduleName})
		default:
			return a.Write(w)
		}
	},
}

func init() {
	optCmd.Flags().StringVarP(&outPath, "out", "o", "-", "output path, - for stdout")
	optCmd.Flags().StringVar(&outFormat, "format", "", "output format: aag or v (default from output suffix)")
	optCmd.Flags().StringVar(&moduleName, "module", "top", "verilog module name")
	optCmd.Flags().IntVar(&maxLeaves, "max-leaves", 8, "window leaf limit")
	optCmd.Flags().IntVar(&maxInserts, "max-inserts", 2, "replacement gate limit")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(optCmd)
}

func format(p string) string {
	if outFormat != "" {
		return outFormat
	}
	if strings.HasSuffix(p, ".v") {
		return "v"
	}
	return "aag"
}

func path2Reader(p string) (io.Reader, error) {
	if p == "-" {
		return os.Stdin, nil
	}
	st, stErr := os.Stat(p)
	if stErr != nil {
		return nil, stErr
	}
	if st.Mode()&os.ModeSymlink != 0 {
		q, e := os.Readlink(p)
		if e != nil {
			return nil, e
		}
		p = q
	}
	f, e := os.Open(p)
	if e != nil {
		return nil, e
	}
	if strings.HasSuffix(p, ".gz") {
		r, e := gzip.NewReader(f)
		if e != nil {
			return nil, e
		}
		return r, nil
	}
	if strings.HasSuffix(p, ".bz2") {
		return bzip2.NewReader(f), nil
	}
	return f, nil
}

func path2Writer(p string) (io.Writer, func() error, error) {
	if p == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, e := os.Create(p)
	if e != nil {
		return nil, nil, e
	}
	return f, f.Close, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
