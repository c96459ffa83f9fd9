package main

import (
	"github.com/spf13/cobra"

	"github.com/couchcryptid/thermal-trace/internal/adapter/kafka"
	"github.com/couchcryptid/thermal-trace/internal/session"
)

var publishFaults bool

var faultsCmd = &cobra.Command{
	Use:   "faults",
	Short: "Print the fault log, optionally publishing it to Kafka",
	RunE:  runFaults,
}

func init() {
	faultsCmd.Flags().BoolVar(&publishFaults, "publish", false, "publish faults to KAFKA_FAULT_TOPIC (implied by FAULTS_ENABLED=true)")
}

func runFaults(cmd *cobra.Command, _ []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	readings, err := a.readings()
	if err != nil {
		return err
	}
	sess := session.New(session.DiscardView, a.sessionOptions(), a.logger, a.metrics)
	if err := sess.OnLoad(readings); err != nil {
		return err
	}
	if err := printFaults(cmd.OutOrStdout(), sess); err != nil {
		return err
	}

	if !publishFaults && !a.cfg.FaultsEnabled {
		return nil
	}
	summary, _ := sess.Summary()
	w := kafka.NewFaultWriter(a.cfg, a.logger, a.metrics)
	defer func() {
		if err := w.Close(); err != nil {
			a.logger.Error("kafka writer close error", "error", err)
		}
	}()
	return w.PublishFaults(cmd.Context(), summary.TraceID, summary.Faults)
}
