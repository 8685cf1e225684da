package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GPTx-global/guru-dataoracle/oracle/config"
	"github.com/GPTx-global/guru-dataoracle/oracle/daemon"
	"github.com/GPTx-global/guru-dataoracle/oracle/log"
)

// StartCmd runs the registry until interrupted.
func StartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run the registry API server and the data feeder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := homeFlag(cmd)
			if err != nil {
				return err
			}

			cfg, err := config.Load(home)
			if err != nil {
				return err
			}

			d, err := daemon.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			cfg.Print()

			if err := d.Start(); err != nil {
				d.Stop()
				return err
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			select {
			case sig := <-sigCh:
				log.Infof("received %s, shutting down", sig)
			case <-cmd.Context().Done():
			}

			d.Stop()
			return nil
		},
	}
}
