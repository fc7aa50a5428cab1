// Package domain contains the Eisenhower Matrix model: tasks, their notes,
// the four quadrants and the table that maps urgent/important flags onto
// them in both directions.
//
// The package has no dependencies on storage or transport. Everything that
// mutates a task goes through Task.Apply, Task.MoveTo or Task.Reclassify so
// the quadrant never drifts away from the flags.
package domain
