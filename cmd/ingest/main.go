// Command ingest loads a directory of .txt, .md and .pdf documents and posts
// each one to the API server's POST /documents endpoint.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Add documents to the Public Service Navigation knowledge base",
	Long: `ingest walks a directory of .txt, .md and .pdf documents and posts each one
to the POST /documents endpoint of a running API server. Markdown files may
carry YAML front matter with title, category and other metadata.

Every flag can also be set through the environment with the NAVIGATOR_ prefix,
for example NAVIGATOR_SERVER=http://localhost:8000.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := run(cmd.Context(), options{
			server:  viper.GetString("server"),
			dir:     viper.GetString("dir"),
			timeout: viper.GetDuration("timeout"),
		}, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d of %d documents (%d chunks)\n", summary.Ingested, summary.Total, summary.Chunks)
		if summary.Failed > 0 {
			return fmt.Errorf("%d documents failed", summary.Failed)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().String("server", "http://localhost:8000", "API server base URL")
	rootCmd.Flags().String("dir", "data", "directory with documents to ingest")
	rootCmd.Flags().Duration("timeout", 30*time.Second, "timeout for each request")

	if err := viper.BindPFlags(rootCmd.Flags()); err != nil {
		panic(err)
	}
}

func initConfig() {
	viper.SetEnvPrefix("NAVIGATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
