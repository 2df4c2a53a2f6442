// Package main 实现 draftctl：在命令行直接运行一次改写，不经过 HTTP
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configDir string
	useMock   bool
	version   = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "draftctl",
	Short: "Run length-constrained draft rewrites from the command line",
	Long: `draftctl runs the same generation pipeline as the HTTP service.
It is useful for tuning prompts and sampling settings without a frontend.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "configs", "configuration directory")
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "use the offline mock driver")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(modelsCmd)
}
