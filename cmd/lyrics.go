// Package cmd implements the command-line interface for lyra.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/lyra-cli/lyra/lyrics"
	"github.com/lyra-cli/lyra/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(lyricsCmd)
	lyricsCmd.Flags().BoolP("json", "j", false, "Print the decoded file as JSON")
	lyricsCmd.Flags().Bool("schema", false, "Print the JSON schema of the --json output")
	lyricsCmd.SetOut(os.Stdout)
}

// stamp formats milliseconds the way LRC files write them.
func stamp(ms int64) string {
	return fmt.Sprintf("[%02d:%02d.%02d]", ms/60000, ms/1000%60, ms/10%100)
}

var lyricsCmd = &cobra.Command{
	Use:   "lyrics <file.lrc>",
	Short: "Decode a lyric file and print its tags and timed lines",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			reflector := new(jsonschema.Reflector)
			reflector.Anonymous = true
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(reflector.Reflect(&lyrics.Document{})))
			return
		}

		if len(args) == 0 {
			handleErr(errors.New("a lyric file is required"))
		}

		decoder := lyrics.NewLRC()
		handleErr(decoder.Decode(args[0]))

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(decoder.Document()))
			return
		}

		decoder.DumpMetadata(cmd.OutOrStdout())
		for {
			entry, ok := decoder.ReadPacket()
			if !ok {
				break
			}
			cmd.Printf("%s %s\n", style.Faint(stamp(entry.PTS)), entry.Text)
		}
	},
}
