package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/asadnaved9/safebrowse/internal/auth"
	"github.com/asadnaved9/safebrowse/internal/notify"
	"github.com/asadnaved9/safebrowse/internal/server"
	"github.com/asadnaved9/safebrowse/internal/utils"
	"github.com/asadnaved9/safebrowse/pkg/risk"
	"github.com/asadnaved9/safebrowse/pkg/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SafeBrowse API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr := stringSetting(cmd, "listen", "server.listen")
		dbPath := stringSetting(cmd, "dbpath", "database.path")
		rulesPath := stringSetting(cmd, "rules", "rules.path")
		webhookURL := stringSetting(cmd, "webhook", "webhook.url")

		secret := stringSetting(cmd, "jwt-secret", "auth.jwt_secret")
		if secret == "" {
			secret = "safebrowse-secret-change-in-production"
			utils.Log.Warn("auth.jwt_secret is not set, using the insecure default")
		}

		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		table, err := risk.LoadTable(rulesPath)
		if err != nil {
			return err
		}

		srv := server.New(db, auth.NewManager(secret, 0), risk.New(table), notify.New(webhookURL))
		return srv.Start(listenAddr)
	},
}

// stringSetting prefers an explicitly set flag over the config file.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	serveCmd.Flags().String("dbpath", "safebrowse.sqlite", "Path to the sqlite database")
	serveCmd.Flags().String("jwt-secret", "", "Secret used to sign access tokens")
	serveCmd.Flags().String("webhook", "", "Webhook URL notified when content is blocked")
}
