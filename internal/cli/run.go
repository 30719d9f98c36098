package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/me/funcscan/internal/env"
	"github.com/me/funcscan/internal/launcher"
	"github.com/me/funcscan/internal/logupload"
	"github.com/me/funcscan/internal/metrics"
	"github.com/me/funcscan/internal/params"
	"github.com/me/funcscan/internal/provision"
	"github.com/me/funcscan/internal/runner"
	"github.com/me/funcscan/internal/store"
	"github.com/me/funcscan/internal/workspace"
	"github.com/spf13/cobra"
)

// dryRunHandle stands in for the storage handle when nothing is provisioned.
const dryRunHandle = "<storage-handle>"

func newRunCmd() *cobra.Command {
	var opts paramOptions
	var runName string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Provision a volume and run the pipeline on it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.resolve()
			if err != nil {
				return err
			}
			if err := params.Validate(p); err != nil {
				return err
			}
			if runName != "" {
				cfg.LogUpload.RunName = runName
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if dryRun {
				return printPlan(cmd.OutOrStdout(), dryRunHandle, p)
			}

			r, cleanup, err := buildRunner(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			run, err := r.Execute(cmd.Context(), p)
			if run != nil {
				logger.Info("run finished", "run_id", run.ID, "state", run.State)
			}
			return err
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&runName, "run-name", "", "Name used for the log destination (default: $FUNCSCAN_RUN_NAME)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the engine command without provisioning or running")

	return cmd
}

func newLaunchCmd() *cobra.Command {
	var opts paramOptions
	var handle string
	var runName string

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Run the pipeline on an already provisioned volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.resolve()
			if err != nil {
				return err
			}
			if err := params.Validate(p); err != nil {
				return err
			}
			if runName != "" {
				cfg.LogUpload.RunName = runName
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			r, cleanup, err := buildRunner(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			run, err := r.Launch(cmd.Context(), handle, p)
			if run != nil {
				logger.Info("run finished", "run_id", run.ID, "state", run.State)
			}
			return err
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&handle, "storage-handle", "", "Handle of the provisioned volume")
	cmd.Flags().StringVar(&runName, "run-name", "", "Name used for the log destination (default: $FUNCSCAN_RUN_NAME)")
	cmd.MarkFlagRequired("storage-handle")

	return cmd
}

// buildRunner wires the provisioner, stager, uploader, launcher, metrics and
// optional run ledger from the loaded configuration.
func buildRunner(cmd *cobra.Command) (*runner.Runner, func(), error) {
	uploader, err := logupload.NewUploader(cfg.LogUpload, uploadAuthorization())
	if err != nil {
		return nil, nil, err
	}
	publisher := logupload.NewPublisher(cfg.LogUpload, uploader, logger)
	publisher.CheckDestination(uploader)
	stager := workspace.NewStager(cfg.Workspace, logger)
	l := launcher.New(cfg, stager, publisher, logger).WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

	runName, _ := publisher.RunName()
	opts := []runner.Option{
		runner.WithRunName(runName),
		runner.WithMetrics(metrics.New(cfg.Metrics, logger)),
	}

	cleanup := func() {}
	if cfg.Store.Path != "" {
		st, err := openStore(cmd.Context())
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, runner.WithStore(st))
		cleanup = func() { st.Close() }
	}

	return runner.New(provision.NewClient(cfg.Provision, logger), l, logger, opts...), cleanup, nil
}

func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	st, err := store.NewSQLiteStore(cfg.Store.Path, logger)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("migrate run ledger: %w", err)
	}
	return st, nil
}

// uploadAuthorization reuses the execution token for authenticated uploads.
func uploadAuthorization() string {
	token, ok := env.Lookup(cfg.Provision.TokenEnv)
	if !ok {
		return ""
	}
	return cfg.Provision.AuthScheme + " " + token
}

func printPlan(w io.Writer, handle string, p *params.Config) error {
	plan, err := launcher.New(cfg, nil, nil, logger).Plan(handle, p)
	if err != nil {
		return err
	}
	for _, kv := range plan.Overrides {
		fmt.Fprintln(w, kv.String())
	}
	fmt.Fprintln(w, strings.Join(plan.Command, " "))
	return nil
}
