// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	save "github.com/ficsit-tools/ficsave"
	"github.com/ficsit-tools/ficsave/log"
)

var outputPath string

func newLogger() log.Logger {
	level := log.ParseLevel(os.Getenv("FICSAVE_LOG_LEVEL"))
	return log.NewFilter(log.NewStdLogger(os.Stderr), log.FilterLevel(level))
}

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <path>",
		Short: "Decode a save file and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Prefix = fmt.Sprintf("Decoding %s... ", path)
			sp.Start()

			s, err := save.Open(path, &save.Options{Logger: newLogger()})
			if err != nil {
				sp.Stop()
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer s.Close()

			err = s.Decode()
			sp.Stop()
			if err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}

			out := os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outputPath, err)
				}
				defer f.Close()
				out = f
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(s); err != nil {
				return fmt.Errorf("encode %s: %w", path, err)
			}

			if outputPath != "" {
				fmt.Printf("wrote %s\n", outputPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "write JSON to this path instead of stdout")
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:   "ficsave",
		Short: "Decode Satisfactory save files into JSON",
	}
	root.AddCommand(newDecodeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
