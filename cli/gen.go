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
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/yomorun/datagen/payload"
	"github.com/yomorun/datagen/pkg/log"
	"github.com/yomorun/datagen/pkg/ylog"
)

type genOptions struct {
	format string
	pretty bool
	check  bool
	cron   string
}

func newGenCmd() *cobra.Command {
	var opts genOptions

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Print a payload",
		Long:  "Print a payload to stdout, with --cron a new payload is printed on every tick until interrupted.",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(payload.FormatJSON), "output format: json|yaml|msgpack")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent json output")
	cmd.Flags().BoolVar(&opts.check, "check", false, "validate the payload before printing it")
	cmd.Flags().StringVar(&opts.cron, "cron", "", `print on a schedule, e.g. "@every 5s" or "*/1 * * * *"`)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		format, err := payload.ParseFormat(opts.format)
		if err != nil {
			return err
		}

		emit := newEmitter(cmd.OutOrStdout(), format, opts)
		if opts.cron == "" {
			return emit()
		}

		c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
		if _, err := c.AddFunc(opts.cron, func() {
			if err := emit(); err != nil {
				ylog.Error("emit payload", err)
			}
		}); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.InfoStatusEvent(cmd.ErrOrStderr(), "Printing a payload on %q", opts.cron)
		c.Start()
		<-ctx.Done()
		<-c.Stop().Done()

		return nil
	}

	return cmd
}

// newEmitter returns a func that builds and writes one payload to w.
func newEmitter(w io.Writer, format payload.Format, opts genOptions) func() error {
	var mu sync.Mutex

	return func() error {
		p := payload.Build()
		if opts.check {
			if err := p.Validate(); err != nil {
				return err
			}
		}

		mu.Lock()
		defer mu.Unlock()

		return payload.Encode(w, format, p, opts.pretty)
	}
}
