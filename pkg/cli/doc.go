/*
Package cli provides command-line interface utilities for Atlas.

The cli package includes typed command errors and signal helpers used by the
atlas command.

Error Types:

Commands report configuration problems with ConfigError and execution
failures with CommandError:

	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("gateway", err.Error())
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown

or block on the raw signal channel:

	sig := <-cli.WaitForShutdown()
*/
package cli
