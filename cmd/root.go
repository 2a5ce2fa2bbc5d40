package cmd

import (
	"fmt"
	"os"

	"github.com/neptaco/unilog/pkg/debuglog"
	"github.com/neptaco/unilog/pkg/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	cfgFile  string
	logLevel string
	Version  string
)

var rootCmd = &cobra.Command{
	Use:   "unilog",
	Short: "Debug log exporter for Unity applications",
	Long: `Unilog mirrors application and Unity log messages into rotating
debug log files stored next to the application's persistent data.

It reads the same LogConfig.txt settings file the in-game logger uses,
so a device or player build can be inspected and reconfigured from the
command line.`,
	SilenceUsage: true,
}

func Execute(version string) {
	Version = version
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.unilog.yaml)")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("data-dir", "", "persistent data directory holding LogConfig.txt and Logs/")
	flags.String("company", "", "company name used to locate the persistent data directory")
	flags.String("product", "", "product name used to locate the persistent data directory")
	flags.String("project", "", "Unity project whose company and product names locate the data directory")
	flags.Int("max-files", debuglog.DefaultMaxFiles, "log file count that triggers a purge on activation")
	flags.String("diag-log", "", "write diagnostic output to this rotating file")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	for _, name := range []string{"log-level", "no-color", "data-dir", "company", "product", "project", "max-files", "diag-log"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			logrus.Fatalf("Failed to bind %s flag: %v", name, err)
		}
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".unilog")
	}

	viper.SetEnvPrefix("UNILOG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logrus.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}

	level, err := logrus.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	ui.SetDebugMode(level >= logrus.DebugLevel)
	ui.SetNoColor(noColor())

	if path := viper.GetString("diag-log"); path != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}

	if noColor() {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
		})
	}
}

func noColor() bool {
	return viper.GetBool("no-color") || os.Getenv("NO_COLOR") != ""
}
