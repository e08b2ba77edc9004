// Package cmd implements the command-line interface for lyra.
package cmd

import (
	"os"
	"runtime"
	"runtime/debug"
	"text/template"

	"github.com/lyra-cli/lyra/color"
	"github.com/lyra-cli/lyra/constant"
	"github.com/lyra-cli/lyra/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version")
}

// buildSetting reads a value stamped by the go toolchain, such as vcs.revision.
func buildSetting(name string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	setting, ok := lo.Find(info.Settings, func(s debug.BuildSetting) bool { return s.Key == name })
	if !ok || setting.Value == "" {
		return "unknown"
	}
	return setting.Value
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
}).Parse(`{{ magenta .Logo }}

  {{ faint "Version" }}     {{ bold .Version }}
  {{ faint "Revision" }}    {{ bold .Revision }}
  {{ faint "Built" }}       {{ bold .BuiltAt }}
  {{ faint "Go" }}          {{ bold .GoVersion }}
  {{ faint "Platform" }}    {{ bold .OS }}/{{ bold .Arch }}
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), struct {
			Logo, Version, Revision, BuiltAt, GoVersion, OS, Arch string
		}{
			Logo:      constant.AsciiArtLogo,
			Version:   constant.Version,
			Revision:  buildSetting("vcs.revision"),
			BuiltAt:   buildSetting("vcs.time"),
			GoVersion: runtime.Version(),
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
		}))
	},
}
