package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"github.com/hushwire/hushwire/hushwire"
)

// Execute runs the root command and exits with the ErrorCode of any
// failure, so scripts can tell a tampered envelope from a bad key.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	return int(hushwire.Code(err))
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "hushwire",
	Short:         "End-to-end encryption primitives for chat messages",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLog(viper.GetUint("logLevel"), viper.GetString("log"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().UintP("logLevel", "v", 0,
		"Verbose mode for debugging")
	viper.BindPFlag("logLevel", rootCmd.PersistentFlags().Lookup("logLevel"))

	rootCmd.PersistentFlags().StringP("log", "l", "-",
		"Path to the log output path (- is stderr)")
	viper.BindPFlag("log", rootCmd.PersistentFlags().Lookup("log"))

	rootCmd.PersistentFlags().StringP("config", "c", "",
		"Path to a YAML config file")
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	def := hushwire.DefaultConfig()
	rootCmd.PersistentFlags().Bool("compress", def.Compress,
		"Compress long messages before sealing (reveals compressibility)")
	viper.BindPFlag("compress", rootCmd.PersistentFlags().Lookup("compress"))

	rootCmd.PersistentFlags().Int("compressMinSize", def.CompressMinSize,
		"Smallest plaintext, in bytes, considered for compression")
	viper.BindPFlag("compressMinSize", rootCmd.PersistentFlags().Lookup("compressMinSize"))

	rootCmd.PersistentFlags().String("compressLevel", def.CompressLevel,
		"Compression level: fast, default or best")
	viper.BindPFlag("compressLevel", rootCmd.PersistentFlags().Lookup("compressLevel"))

	rootCmd.PersistentFlags().Int("maxMessageSize", def.MaxMessageSize,
		"Largest decompressed plaintext accepted, in bytes")
	viper.BindPFlag("maxMessageSize", rootCmd.PersistentFlags().Lookup("maxMessageSize"))
}

// initConfig reads the config file, if any, and HUSHWIRE_* environment
// variables. Flags take precedence over both.
func initConfig() {
	viper.SetEnvPrefix("hushwire")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	path := viper.GetString("config")
	if path == "" {
		return
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		jww.FATAL.Panicf("Unable to read config %q: %+v", path, err)
	}
}

func initLog(threshold uint, logPath string) {
	jww.SetStdoutOutput(os.Stderr)
	if logPath != "-" && logPath != "" {
		// Disable stderr output
		jww.SetStdoutOutput(io.Discard)
		// Use log file
		logOutput, err := os.OpenFile(logPath,
			os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			panic(err.Error())
		}
		jww.SetLogOutput(logOutput)
	}

	if threshold > 1 {
		jww.INFO.Printf("log level set to: TRACE")
		jww.SetStdoutThreshold(jww.LevelTrace)
		jww.SetLogThreshold(jww.LevelTrace)
		jww.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else if threshold == 1 {
		jww.INFO.Printf("log level set to: DEBUG")
		jww.SetStdoutThreshold(jww.LevelDebug)
		jww.SetLogThreshold(jww.LevelDebug)
		jww.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		jww.SetStdoutThreshold(jww.LevelWarn)
		jww.SetLogThreshold(jww.LevelWarn)
	}
}

// newEngine builds an Engine from the merged flag, env and file settings.
func newEngine() (*hushwire.Engine, error) {
	cfg := hushwire.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return hushwire.NewEngine(cfg)
}

// requireString returns a viper value, failing when it is empty. Secrets
// may come from HUSHWIRE_* variables instead of flags to keep them out of
// the process list.
func requireString(key string) (string, error) {
	v := viper.GetString(key)
	if v == "" {
		return "", errors.Errorf("--%s (or HUSHWIRE_%s) is required", key, strings.ToUpper(key))
	}
	return v, nil
}

// readInput returns args[0] if present, otherwise all of stdin with one
// trailing newline removed.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "read stdin")
	}
	return strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r"), nil
}
