// Package gitrepo contains helpers for interrogating Git repositories.
//
// It exposes origin URL resolution from repository configuration files,
// remote URL parsing and repository name derivation, and RepositoryManager
// for inspecting worktree status ahead of destructive deployments.
package gitrepo
