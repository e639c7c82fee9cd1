/*
Package cli provides command-line helpers for the behar command.

Error Types:

Commands wrap failures in typed errors so callers can tell a bad
configuration from a failed command:

	if err := config.Initialize(path); err != nil {
		return cli.NewConfigError("", err.Error())
	}
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown

or, when the command reacts to the signal itself:

	sigChan := cli.WaitForShutdown()
	sig := <-sigChan
*/
package cli
