// Package deploy orchestrates the full deployment pipeline: origin remote
// resolution, entry file rewriting, and branch publishing, in that order with
// no feedback loop. The rewrite stage is skippable for non-web bundles and an
// optional clean-worktree check can gate the pipeline.
package deploy
