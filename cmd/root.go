package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asadnaved9/safebrowse/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	            __     _
	 ___  __ _ / _| __| |__  _ __ _____      _____  ___
	/ __|/ _` + "`" + ` | |_ / _` + "`" + ` | '_ \| '__/ _ \ \ /\ / / __|/ _ \
	\__ \ (_| |  _| (_| | |_) | | | (_) \ V  V /\__ \  __/
	|___/\__,_|_|  \__,_|_.__/|_|  \___/ \_/\_/ |___/\___|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "safebrowse",
	Short: "A parental-control backend for scoring and logging risky content.",
	Long: LOGO + `safebrowse scores text and URLs against keyword rule tables with
age-based thresholds, serves the parent-facing API, and keeps an
append-only log of everything it blocked.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.safebrowse.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("rules", "", "YAML rule table file (built-in defaults when unset)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".safebrowse")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.safebrowse.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("server.listen", ":8080")
	viper.SetDefault("database.path", "safebrowse.sqlite")
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("rules.path", "")
	viper.SetDefault("webhook.url", "")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}
