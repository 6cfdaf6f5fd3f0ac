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
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yomorun/datagen/pkg/config"
	"github.com/yomorun/datagen/pkg/log"
	"github.com/yomorun/datagen/pkg/trace"
	"github.com/yomorun/datagen/pkg/ylog"
	"github.com/yomorun/datagen/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the payload on GET /data",
		Long:  "Serve a freshly generated payload as json on every GET /data request.",
		Args:  cobra.NoArgs,
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "server config file (.yaml|.yml)")
	flags.String("host", config.DefaultHost, "listening host")
	flags.IntP("port", "p", config.DefaultPort, "listening port")
	flags.String("tracing-endpoint", "", "OTLP/HTTP collector endpoint, tracing is disabled if empty")
	flags.Bool("tracing-insecure", false, "disable TLS to the tracing collector")

	v := bindPFlags(flags)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		conf, err := resolveServeConfig(v)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cmd, conf)
	}

	return cmd
}

// resolveServeConfig merges the config sources, from the highest precedence:
// flags, environment, config file and defaults.
func resolveServeConfig(v *viper.Viper) (config.Config, error) {
	conf := config.Default()

	if path := v.GetString("config"); path != "" {
		var err error
		if conf, err = config.ParseConfigFile(path); err != nil {
			return conf, err
		}
	}

	if v.IsSet("host") {
		conf.Host = v.GetString("host")
	}
	if v.IsSet("port") {
		conf.Port = v.GetInt("port")
	}
	if v.IsSet("tracing-endpoint") {
		conf.Tracing.Endpoint = v.GetString("tracing-endpoint")
	}
	if v.IsSet("tracing-insecure") {
		conf.Tracing.Insecure = v.GetBool("tracing-insecure")
	}

	ylog.Debug("serve config",
		"name", conf.Name,
		"addr", conf.Addr(),
		"tracing", conf.Tracing.Endpoint,
		"port_env", getViperName("port"),
	)

	return conf, config.Validate(&conf)
}

func serve(ctx context.Context, cmd *cobra.Command, conf config.Config) error {
	out := cmd.OutOrStdout()

	tp, shutdown, err := trace.NewTracerProvider(ctx, conf.Name, conf.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			ylog.Warn("shutdown tracer provider", "err", err)
		}
	}()
	trace.SetGlobal(tp)

	done := log.Spinner(out, "Starting datagen server on %s", conf.Addr())
	ln, err := net.Listen("tcp", conf.Addr())
	if err != nil {
		done(log.Failure)
		return err
	}
	done(log.Success)

	log.InfoStatusEvent(out, "Payload endpoint: %s", log.Cyan("http://"+ln.Addr().String()+server.DataPath))

	srv := server.New(conf,
		server.WithTracerProvider(tp),
		server.WithLogger(ylog.Logger()),
	)
	if err := srv.Serve(ctx, ln); err != nil {
		return err
	}

	log.SuccessStatusEvent(out, "datagen server stopped")
	return nil
}
