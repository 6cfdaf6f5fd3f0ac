/*
Copyright © 2021 CELLA, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yomorun/datagen/pkg/file"
	"github.com/yomorun/datagen/pkg/log"
	"github.com/yomorun/datagen/pkg/ylog"
)

// NewRootCmd returns the datagen command with all its subcommands.
func NewRootCmd() *cobra.Command {
	var (
		verbose    bool
		jsonStatus bool
	)

	rootCmd := &cobra.Command{
		Use:           "datagen",
		Short:         "Generate random integers with their sorted and unique forms",
		Version:       GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.EnableJSONFormat(jsonStatus)
			return initLogger(verbose)
		},
	}

	// overwrite the shorthand of version flag to V.
	rootCmd.Flags().BoolP("version", "V", false, "version for datagen")
	rootCmd.SetVersionTemplate(fmt.Sprintf("datagen version %s\n", rootCmd.Version))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonStatus, "json", false, "print status lines as json")

	rootCmd.AddCommand(
		newServeCmd(),
		newGenCmd(),
		newSchemaCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the datagen command, it is called by main.main().
func Execute() {
	initDotEnv()

	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.FailureStatusEvent(os.Stderr, "%s", err.Error())
		os.Exit(1)
	}
}

// initDotEnv loads environment variables from .env file.
func initDotEnv() {
	if file.Exists(".env") {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
			os.Exit(1)
		}
	}
}

// initLogger rebuilds the default logger from environment, verbose forces debug level.
func initLogger(verbose bool) error {
	conf, err := ylog.ParseConfig()
	if err != nil {
		return err
	}
	if verbose {
		conf.Level = "debug"
		conf.Verbose = true
	}
	ylog.SetDefault(ylog.NewFromConfig(conf))

	return nil
}
