// Package operations runs the candid data pipeline as a sequence of steps.
//
// A Pipeline holds an ordered list of Step implementations and executes them
// against a shared OperationState. Steps exchange datasets through the state
// context:
//
//   - clean loads users, matches and chats and applies the cleaning rules
//   - prepare derives ages, chat statistics and the joined candidate records
//   - analyze computes descriptive statistics and the chart workbook
//   - export writes the cleaned and prepared CSV files
//   - cluster builds the k-means feature table
//
// Execution is linear. The first failing step stops the run and every later
// step is marked skipped. Each step runs under its own timeout from Config;
// a cancelled parent context is reported as a cancellation, an expired step
// deadline as a timeout.
//
// Every run and step is traced and counted through the providers in
// internal/infrastructure. After a run, NewRunManifest summarises the state
// for manifest.json.
//
// Example usage:
//
//	p, err := operations.NewPipeline(operations.PipelineOptions{Logger: logger},
//		operations.NewCleanStep(inputs, cleaner, logger),
//		operations.NewPrepareStep(preparer),
//		operations.NewExportStep(exp),
//	)
//	if err != nil {
//		return err
//	}
//	state := operations.NewOperationState(runID)
//	err = p.Run(ctx, state)
//	_ = operations.NewRunManifest(state, p.StepIDs()).SaveToFile(path)
package operations
