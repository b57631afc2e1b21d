// Package publish force-publishes a build output directory to a remote branch.
//
// The Service re-initializes the directory as a fresh repository, registers
// the origin remote, stages and commits every file, creates the publish
// branch, force-pushes it with upstream tracking, and finally removes the
// directory's git metadata. The sequence is ordered and non-interruptible;
// the first failing step aborts the run with a StepError naming the step.
package publish
