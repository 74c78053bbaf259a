// Package app bootstraps the command line tools.
//
// Every command follows the same lifecycle:
//
//  1. Load configuration from defaults, nhlvis.yaml and NHLVIS_* variables
//  2. Initialize logging and telemetry
//  3. Create the data directory tree
//  4. Run one or more stages under a signal-aware context
//  5. Flush the trace and metrics files and close the log
//
// Usage:
//
//	application, err := app.New("ingest")
//	if err != nil {
//	    app.Exit(nil, "Startup failed", err)
//	}
//	defer application.Close()
//
//	ctx, cancel := application.Context()
//	defer cancel()
//	err = application.RunStage(ctx, "ingest", func(ctx context.Context) error { ... })
package app
