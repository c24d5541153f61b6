package main

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

// env holds the FLATHIVECTL_-prefixed defaults; flags override them.
type env struct {
	API   string `envconfig:"API" default:"http://localhost:8080"`
	Token string `envconfig:"TOKEN" default:""`
}

var (
	apiFlag   string
	tokenFlag string
	rootCmd   = &cobra.Command{
		Use:   "flathivectl",
		Short: "CLI client for the flathive REST API",
	}
)

// client builds a resty client for the selected service, attaching the
// session token when one is set.
func client() *resty.Client {
	c := resty.New().SetBaseURL(apiFlag)
	if tokenFlag != "" {
		c.SetAuthToken(tokenFlag)
	}
	return c
}

func main() {
	var defaults env
	if err := envconfig.Process("FLATHIVECTL", &defaults); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", defaults.API, "Flathive service base URL")
	rootCmd.PersistentFlags().StringVarP(&tokenFlag, "token", "t", defaults.Token, "Session token")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
