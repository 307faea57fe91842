/*
Package cli provides command-line helpers shared by the triton command:
typed errors carrying exit codes and signal-aware contexts.

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
