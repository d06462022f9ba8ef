// Package main runs the companion task server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"taskmaster/internal/server"
)

var Version = "0.1.0"

func main() {
	v := server.NewViper()
	var configFile string

	rootCmd := &cobra.Command{
		Use:     "taskmaster-server",
		Short:   "Task server for the taskmaster CLI",
		Version: Version,
		// Running without a subcommand serves.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, v, configFile)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "server config file (yaml, toml or json)")
	bindStoreFlags(rootCmd, v)

	rootCmd.AddCommand(serveCmd(v, &configFile))
	rootCmd.AddCommand(initDBCmd(v, &configFile))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bindStoreFlags adds the flags shared by serve and init-db and binds them
// to v so they override the environment.
func bindStoreFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.String("port", "", "listen port (APP_PORT)")
	flags.String("store", "", "store kind: memory, sqlite or mysql (TASKMASTER_STORE)")
	flags.Bool("memory", false, "shorthand for --store memory")
	flags.String("sqlite-path", "", "sqlite database file (SQLITE_PATH)")

	_ = v.BindPFlag("app_port", flags.Lookup("port"))
	_ = v.BindPFlag("store", flags.Lookup("store"))
	_ = v.BindPFlag("sqlite_path", flags.Lookup("sqlite-path"))
}

func serveCmd(v *viper.Viper, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the task API under /api",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, v, *configFile)
		},
	}
}

func initDBCmd(v *viper.Viper, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the tasks table and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v, *configFile)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg, nil)
			if err != nil {
				return err
			}
			if err := st.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s store ready\n", cfg.Store)
			return nil
		},
	}
}

// loadConfig applies --memory on top of the viper-backed configuration.
func loadConfig(cmd *cobra.Command, v *viper.Viper, configFile string) (*server.Config, error) {
	if memory, _ := cmd.Flags().GetBool("memory"); memory {
		v.Set("store", server.StoreMemory)
	}
	return server.LoadConfig(v, configFile)
}
