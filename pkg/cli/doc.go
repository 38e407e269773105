/*
Package cli provides command-line utilities shared by the canopy
subcommands.

Output Formatting:

Command results render as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Pass ctx to operations that should stop on shutdown.
*/
package cli
