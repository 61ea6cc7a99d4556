/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"dirpx.dev/redbox"
	"dirpx.dev/redbox/adapter"
	"dirpx.dev/redbox/decoder"
	"dirpx.dev/redbox/variant"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// errRejected is returned after a rejected payload has been printed.
var errRejected = errors.New("payload rejected")

type frameDoc struct {
	File       string `yaml:"file"`
	MethodName string `yaml:"method_name"`
	LineNumber int    `yaml:"line_number"`
	Column     int    `yaml:"column"`
}

type reportDoc struct {
	ID        uint32     `yaml:"id"`
	Message   string     `yaml:"message"`
	Callstack []frameDoc `yaml:"callstack"`
}

func newDecodeCmd(rf *rootFlags) *cobra.Command {
	var (
		output    string
		strict    bool
		maxFrames int
	)
	cmd := &cobra.Command{
		Use:   "decode <file.json|->",
		Short: "Decode an exception payload and print the result",
		Long: `decode reads the JSON argument array of a report call, e.g.

  ["Boom", [{"file": "a.js", "methodName": "f", "lineNumber": 10, "column": 2}], 42]

and prints the decoded report, or the structured error explaining why the
router would reject it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rf.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strict-frames") {
				cfg.StrictFrames = strict
			}
			if cmd.Flags().Changed("max-frames") {
				cfg.MaxFrames = maxFrames
			}
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			return runDecode(cmd.OutOrStdout(), cfg.Decoder(), data, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or yaml")
	cmd.Flags().BoolVar(&strict, "strict-frames", false, "reject callstack frames without position keys")
	cmd.Flags().IntVar(&maxFrames, "max-frames", 0, "reject callstacks longer than this (0 = no limit)")
	return cmd
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return data, nil
}

func runDecode(w io.Writer, d *decoder.Decoder, data []byte, output string) error {
	if output != "text" && output != "yaml" {
		return fmt.Errorf("unknown output format %q", output)
	}
	args, err := variant.ParseJSON(data)
	if err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}
	info, derr := d.Decode(args)
	if derr != nil {
		if err := printRejection(w, derr, output); err != nil {
			return err
		}
		return errRejected
	}
	return printReport(w, info, output)
}

func printReport(w io.Writer, info redbox.ErrorInfo, output string) error {
	if output == "yaml" {
		doc := reportDoc{ID: info.ID, Message: info.Message, Callstack: make([]frameDoc, 0, len(info.Callstack))}
		for _, f := range info.Callstack {
			doc.Callstack = append(doc.Callstack, frameDoc(f))
		}
		return yaml.NewEncoder(w).Encode(doc)
	}
	if _, err := fmt.Fprintf(w, "#%d %s\n", info.ID, info.Message); err != nil {
		return err
	}
	for _, f := range info.Callstack {
		if _, err := fmt.Fprintf(w, "  at %s\n", f); err != nil {
			return err
		}
	}
	return nil
}

func printRejection(w io.Writer, err error, output string) error {
	view := adapter.ToView(err)
	if output == "yaml" {
		return yaml.NewEncoder(w).Encode(view)
	}
	_, werr := fmt.Fprintf(w, "rejected: %v\n", err)
	return werr
}
