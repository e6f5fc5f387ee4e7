package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/taskrun/internal/adapters/render"
	"go.trai.ch/taskrun/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <executable> [-- args...]",
		Short: "Run a task and print its result",
		Long: `Run a task executable, passing parameters through the environment
and/or standard input, and print the classified result.

The exit status is 0 when the task succeeded, 1 when it produced a
failure result and 2 when it could not be run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()

			opts := app.RunOptions{
				Executable: args[0],
				Args:       args[1:],
				ConfigPath: c.configPath,
				Out:        cmd.OutOrStdout(),
			}
			opts.Params, _ = flags.GetStringArray("param")
			opts.ParamsJSON, _ = flags.GetString("params")
			opts.InputMethod, _ = flags.GetString("input-method")
			opts.EnvPrefix, _ = flags.GetString("env-prefix")
			opts.Interpreter, _ = flags.GetString("interpreter")
			opts.Format, _ = flags.GetString("format")
			opts.Noop, _ = flags.GetBool("noop")
			opts.Watch, _ = flags.GetBool("watch")
			opts.MetricsFile, _ = flags.GetString("metrics-file")

			if flags.Changed("timeout") {
				timeout, _ := flags.GetDuration("timeout")
				opts.Timeout = &timeout
			}
			if flags.Changed("max-output") {
				maxOutput, _ := flags.GetInt("max-output")
				opts.MaxOutput = &maxOutput
			}

			return c.app.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringArrayP("param", "p", nil, "Task parameter as key=value (repeatable)")
	cmd.Flags().String("params", "", "Task parameters as a JSON object, or @file to read them from a file")
	cmd.Flags().String("input-method", "", "How parameters are passed: env, stdin or both")
	cmd.Flags().String("env-prefix", "", "Prefix for parameter environment variables (default \"PT_\")")
	cmd.Flags().Duration("timeout", 0, "Kill the task after this long (0 disables the timeout)")
	cmd.Flags().Int("max-output", 0, "Maximum bytes captured from each of stdout and stderr")
	cmd.Flags().String("interpreter", "", "Interpreter used to run the executable")
	cmd.Flags().StringP("format", "f", render.FormatHuman, "Output format: human or json")
	cmd.Flags().Bool("noop", false, "Ask the task for a noop run; fails unless the task supports noop")
	cmd.Flags().BoolP("watch", "w", false, "Run the task again whenever it changes")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file after each run")
	return cmd
}
