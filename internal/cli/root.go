package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/i474232898/mood-tracker/internal/client"
)

var (
	cfgFile   string
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "moodctl",
	Short: "Log your mood together with the current weather",
	Long: `moodctl talks to a running mood-tracker server. It lets you:
  - log a mood with an optional note and the current weather
  - browse your 10 most recent entries
  - see how you felt over the last 7 days`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/moodctl/config.toml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "mood-tracker server URL (overrides server.url)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "moodctl"))
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("moodctl")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setDefaults() {
	viper.SetDefault("server.url", "http://localhost:3000")
	viper.SetDefault("server.timeout", "10s")
	viper.SetDefault("weather.default_place", client.DefaultPlace)
}

// newAPI builds an HTTP client for the configured server.
func newAPI() *client.HTTPClient {
	url := serverURL
	if url == "" {
		url = viper.GetString("server.url")
	}
	timeout := viper.GetDuration("server.timeout")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return client.NewHTTPClient(url, &http.Client{Timeout: timeout})
}

func newController() *client.Controller {
	return client.NewController(newAPI(), configLocator{}, viper.GetString("weather.default_place"))
}

// configLocator stands in for device geolocation: a position is known only
// when both coordinates are configured.
type configLocator struct{}

func (configLocator) Locate(ctx context.Context) (client.Coordinates, error) {
	if !viper.IsSet("location.latitude") || !viper.IsSet("location.longitude") {
		return client.Coordinates{}, client.ErrLocationUnavailable
	}
	return client.Coordinates{
		Latitude:  viper.GetFloat64("location.latitude"),
		Longitude: viper.GetFloat64("location.longitude"),
	}, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
