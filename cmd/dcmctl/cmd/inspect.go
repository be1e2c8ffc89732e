// Copyright 2026 the dcmio authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openimaging/dcmio/dicom"
)

var (
	inspectForce     bool
	inspectSkipPixel bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the elements of a DICOM file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := dicom.ReadFile(args[0], dicom.ReadOptions{
			Force:               inspectForce,
			StopBeforePixelData: inspectSkipPixel,
			Logger:              logger,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "transfer syntax: %s\n", file.TransferSyntaxUID)
		if file.Meta != nil {
			fmt.Fprintln(out, "file meta:")
			printDataSet(cmd, file.Meta, 1)
		}
		fmt.Fprintln(out, "data set:")
		printDataSet(cmd, file.DataSet, 1)
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectForce, "force", false, "read streams without the DICM marker")
	inspectCmd.Flags().BoolVar(&inspectSkipPixel, "skip-pixel-data", false, "stop before the pixel data element")
	rootCmd.AddCommand(inspectCmd)
}

func printDataSet(cmd *cobra.Command, ds *dicom.DataSet, depth int) {
	out := cmd.OutOrStdout()
	indent := strings.Repeat("  ", depth)
	for _, element := range ds.SortedElements() {
		keyword := element.Tag.Keyword()
		if keyword == "" {
			keyword = "?"
		}
		fmt.Fprintf(out, "%s%s %-2s %-32s %s\n", indent, element.Tag, element.VR, keyword, summarizeValue(element))

		if v, err := element.Value(); err == nil {
			if seq, ok := v.(*dicom.Sequence); ok {
				for i, item := range seq.Items {
					fmt.Fprintf(out, "%s  item %d:\n", indent, i)
					printDataSet(cmd, item, depth+2)
				}
			}
		}
	}
}

func summarizeValue(element *dicom.DataElement) string {
	if element.IsDeferred() {
		return fmt.Sprintf("<deferred, %d bytes>", element.ValueLength)
	}
	v, err := element.Value()
	if err != nil {
		return fmt.Sprintf("<unreadable: %v>", err)
	}
	switch v := v.(type) {
	case *dicom.Sequence:
		return fmt.Sprintf("<sequence, %d items>", len(v.Items))
	case []byte:
		if len(v) > 16 {
			return fmt.Sprintf("<%d bytes>", len(v))
		}
		return fmt.Sprintf("% X", v)
	default:
		s := fmt.Sprintf("%v", v)
		if len(s) > 72 {
			s = s[:69] + "..."
		}
		return s
	}
}
