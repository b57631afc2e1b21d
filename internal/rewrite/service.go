package rewrite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	outputDirectoryRequiredMessageConstant = "output directory required"
	entryFileNameRequiredMessageConstant   = "entry file name required"
	listOutputDirectoryErrorTemplate       = "unable to list output directory %s: %w"
	readEntryFileErrorTemplateConstant     = "unable to read entry file %s: %w"
	statEntryFileErrorTemplateConstant     = "unable to stat entry file %s: %w"
	writeEntryFileErrorTemplateConstant    = "unable to write entry file %s: %w"
	candidateSetLogMessageConstant         = "Collected rewrite candidates"
	rewriteCompletionLogMessageConstant    = "Entry file rewrite completed"
	dryRunLogMessageConstant               = "Dry run: entry file left untouched"
	entryFileFieldNameConstant             = "entry_file"
	outputDirectoryFieldNameConstant       = "output_directory"
	candidateNamesFieldNameConstant        = "candidate_names"
	repositoryNameFieldNameConstant        = "repository_name"
	rewrittenLineCountFieldNameConstant    = "rewritten_lines"
	lineSeparatorConstant                  = "\n"
	prefixSeparatorConstant                = "/"
)

// ErrOutputDirectoryRequired indicates the rewrite configuration lacked an output directory.
var ErrOutputDirectoryRequired = errors.New(outputDirectoryRequiredMessageConstant)

// ErrEntryFileNameRequired indicates the rewrite configuration lacked an entry file name.
var ErrEntryFileNameRequired = errors.New(entryFileNameRequiredMessageConstant)

// Configuration describes one asset path rewrite pass.
type Configuration struct {
	OutputDirectoryPath string
	EntryFileName       string
	RepositoryName      string
	DryRun              bool
}

// Outcome reports the effects of a rewrite pass.
type Outcome struct {
	EntryFilePath  string
	CandidateNames []string
	RewrittenLines int
}

// AssetRewriter prefixes asset references in the entry file with the repository name.
//
// Matching is pure case-sensitive substring search over the output directory's
// immediate entry names, with no word-boundary or markup awareness, and a
// second pass over an already rewritten file prefixes matches again. Callers
// rely on this exact behavior for published asset paths.
type AssetRewriter struct {
	logger *zap.Logger
}

// NewAssetRewriter constructs an AssetRewriter.
func NewAssetRewriter(logger *zap.Logger) *AssetRewriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetRewriter{logger: logger}
}

// Rewrite loads the entry file, prefixes candidate matches, and rewrites the file in place.
func (rewriter *AssetRewriter) Rewrite(_ context.Context, configuration Configuration) (Outcome, error) {
	trimmedOutputDirectory := strings.TrimSpace(configuration.OutputDirectoryPath)
	if len(trimmedOutputDirectory) == 0 {
		return Outcome{}, ErrOutputDirectoryRequired
	}
	trimmedEntryFileName := strings.TrimSpace(configuration.EntryFileName)
	if len(trimmedEntryFileName) == 0 {
		return Outcome{}, ErrEntryFileNameRequired
	}

	directoryEntries, listError := os.ReadDir(trimmedOutputDirectory)
	if listError != nil {
		return Outcome{}, fmt.Errorf(listOutputDirectoryErrorTemplate, trimmedOutputDirectory, listError)
	}

	candidateNames := make([]string, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		candidateNames = append(candidateNames, directoryEntry.Name())
	}

	entryFilePath := filepath.Join(trimmedOutputDirectory, trimmedEntryFileName)
	rewriter.logger.Debug(candidateSetLogMessageConstant,
		zap.String(outputDirectoryFieldNameConstant, trimmedOutputDirectory),
		zap.Strings(candidateNamesFieldNameConstant, candidateNames),
		zap.String(repositoryNameFieldNameConstant, configuration.RepositoryName),
	)

	entryFileContent, readError := os.ReadFile(entryFilePath)
	if readError != nil {
		return Outcome{}, fmt.Errorf(readEntryFileErrorTemplateConstant, entryFilePath, readError)
	}

	entryFileLines := strings.Split(string(entryFileContent), lineSeparatorConstant)
	prefix := configuration.RepositoryName + prefixSeparatorConstant

	rewrittenLineCount := 0
	for lineIndex := range entryFileLines {
		rewrittenLine := prefixCandidateMatches(entryFileLines[lineIndex], candidateNames, prefix)
		if rewrittenLine != entryFileLines[lineIndex] {
			rewrittenLineCount++
			entryFileLines[lineIndex] = rewrittenLine
		}
	}

	outcome := Outcome{
		EntryFilePath:  entryFilePath,
		CandidateNames: candidateNames,
		RewrittenLines: rewrittenLineCount,
	}

	if configuration.DryRun {
		rewriter.logger.Info(dryRunLogMessageConstant,
			zap.String(entryFileFieldNameConstant, entryFilePath),
			zap.Int(rewrittenLineCountFieldNameConstant, rewrittenLineCount),
		)
		return outcome, nil
	}

	entryFileInfo, statError := os.Stat(entryFilePath)
	if statError != nil {
		return Outcome{}, fmt.Errorf(statEntryFileErrorTemplateConstant, entryFilePath, statError)
	}

	rewrittenContent := strings.Join(entryFileLines, lineSeparatorConstant)
	writeError := os.WriteFile(entryFilePath, []byte(rewrittenContent), entryFileInfo.Mode().Perm())
	if writeError != nil {
		return Outcome{}, fmt.Errorf(writeEntryFileErrorTemplateConstant, entryFilePath, writeError)
	}

	rewriter.logger.Info(rewriteCompletionLogMessageConstant,
		zap.String(entryFileFieldNameConstant, entryFilePath),
		zap.Int(rewrittenLineCountFieldNameConstant, rewrittenLineCount),
	)

	return outcome, nil
}

// prefixCandidateMatches inserts the prefix before the first occurrence of each
// candidate, recomputing the insertion point against the mutated line so that
// multiple candidate matches compound left to right in candidate order.
func prefixCandidateMatches(line string, candidateNames []string, prefix string) string {
	rewrittenLine := line
	for _, candidateName := range candidateNames {
		matchIndex := strings.Index(rewrittenLine, candidateName)
		if matchIndex < 0 {
			continue
		}
		rewrittenLine = rewrittenLine[:matchIndex] + prefix + rewrittenLine[matchIndex:]
	}
	return rewrittenLine
}
