package commands

import (
	"fmt"
	"os"

	"github.com/arloliu/packbuf/binding"
	"github.com/arloliu/packbuf/buffer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd opens the interactive inspector.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packview [snapshot-file]",
		Short: "Inspect packed buffer snapshots",
		Long: `packview decodes a packbuf snapshot and shows its layout and records in an
interactive table. Without a file it shows a generated demo buffer.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runInspect,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./packview.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log buffer and snapshot events to stderr")

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(newInfoCmd(), newDemoCmd())
}

// initConfig reads the config file and PACKVIEW_* environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("packview")
	}

	viper.SetEnvPrefix("PACKVIEW")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// initLogging routes the library loggers to stderr when verbose is set.
func initLogging() {
	if !viper.GetBool("verbose") {
		return
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return
	}

	buffer.SetLogger(logger)
	binding.SetLogger(logger)
}
