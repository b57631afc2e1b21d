package pathutils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// TargetPathResolver normalizes deployment path inputs consistently across commands.
type TargetPathResolver struct {
	homeExpander *HomeExpander
}

// NewTargetPathResolver constructs a TargetPathResolver with default behavior.
func NewTargetPathResolver() *TargetPathResolver {
	return NewTargetPathResolverWithExpander(nil)
}

// NewTargetPathResolverWithExpander constructs a TargetPathResolver using the provided expander.
func NewTargetPathResolverWithExpander(homeExpander *HomeExpander) *TargetPathResolver {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}

	return &TargetPathResolver{homeExpander: resolvedExpander}
}

// Resolve trims whitespace, expands the user's home directory, and canonicalizes the path.
//
// Empty or whitespace-only input resolves to the empty string.
func (resolver *TargetPathResolver) Resolve(candidatePath string) string {
	expander := resolver.homeExpander
	if resolver == nil || expander == nil {
		expander = NewHomeExpander()
	}

	trimmedCandidate := strings.TrimSpace(candidatePath)
	if len(trimmedCandidate) == 0 {
		return ""
	}

	expandedPath := expander.Expand(trimmedCandidate)
	if len(expandedPath) == 0 {
		return ""
	}

	return canonicalizePath(expandedPath)
}

// ResolveWithinRoot joins candidate with the root directory unless candidate is already absolute.
//
// Both inputs are trimmed; an empty candidate resolves to the empty string and
// an empty root leaves a relative candidate unchanged.
func ResolveWithinRoot(root string, candidate string) string {
	trimmedCandidate := strings.TrimSpace(candidate)
	if len(trimmedCandidate) == 0 {
		return ""
	}
	if filepath.IsAbs(trimmedCandidate) {
		return filepath.Clean(trimmedCandidate)
	}

	trimmedRoot := strings.TrimSpace(root)
	if len(trimmedRoot) == 0 {
		return filepath.Clean(trimmedCandidate)
	}
	return filepath.Join(trimmedRoot, trimmedCandidate)
}

// PathsEqual reports whether two paths identify the same filesystem location.
func PathsEqual(firstPath string, secondPath string) bool {
	return comparisonPath(canonicalizePath(firstPath)) == comparisonPath(canonicalizePath(secondPath))
}

// IsNestedPath reports whether candidate equals parent or lies underneath it.
func IsNestedPath(parent string, candidate string) bool {
	parentClean := comparisonPath(canonicalizePath(parent))
	candidateClean := comparisonPath(canonicalizePath(candidate))

	if candidateClean == parentClean {
		return true
	}

	if len(candidateClean) <= len(parentClean) {
		return false
	}

	if !strings.HasPrefix(candidateClean, parentClean) {
		return false
	}

	parentEndsWithSeparator := parentClean[len(parentClean)-1] == os.PathSeparator
	if parentEndsWithSeparator {
		return true
	}

	return candidateClean[len(parentClean)] == os.PathSeparator
}

func canonicalizePath(path string) string {
	cleanedPath := filepath.Clean(path)
	absolutePath, absoluteError := filepath.Abs(cleanedPath)
	if absoluteError == nil {
		return filepath.Clean(absolutePath)
	}
	return cleanedPath
}

func comparisonPath(path string) string {
	comparison := filepath.Clean(path)
	if runtime.GOOS == "windows" {
		comparison = strings.ToLower(comparison)
	}
	return comparison
}
