package gitrepo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// GitConfigurationRelativePathConstant locates the configuration file inside a repository root.
	GitConfigurationRelativePathConstant = ".git/config"

	originSectionMarkerConstant            = `[remote "origin"]`
	urlKeyMarkerConstant                   = "url"
	sectionHeaderMarkerConstant            = "["
	keyValueSeparatorConstant              = "="
	originSectionNotFoundMessageConstant   = "Could not find remote origin in .git/config"
	originURLNotFoundMessageConstant       = "Could not find remote origin URL in .git/config"
	configurationOpenErrorTemplateConstant = "unable to open git configuration %s: %w"
	configurationReadErrorTemplateConstant = "unable to read git configuration %s: %w"
)

// ErrOriginSectionNotFound indicates the configuration lacks an origin remote section.
var ErrOriginSectionNotFound = errors.New(originSectionNotFoundMessageConstant)

// ErrOriginURLNotFound indicates the origin section lacks a url entry.
var ErrOriginURLNotFound = errors.New(originURLNotFoundMessageConstant)

// ResolveOriginURL reads the configuration file under the repository root and
// returns the URL recorded for the origin remote.
func ResolveOriginURL(repositoryRoot string) (string, error) {
	return ResolveOriginURLFromConfiguration(filepath.Join(repositoryRoot, GitConfigurationRelativePathConstant))
}

// ResolveOriginURLFromConfiguration resolves the origin remote URL from an
// explicit configuration file path.
//
// The file is scanned line by line: first for a line containing the origin
// remote section marker, then for a line containing the url key. A section
// header encountered before the url key, or end of file, yields
// ErrOriginURLNotFound. A url line takes the value after the first separator.
func ResolveOriginURLFromConfiguration(configurationPath string) (string, error) {
	configurationFile, openError := os.Open(configurationPath)
	if openError != nil {
		return "", fmt.Errorf(configurationOpenErrorTemplateConstant, configurationPath, openError)
	}
	defer func() {
		_ = configurationFile.Close()
	}()

	originURL, scanError := scanOriginURL(configurationFile)
	if scanError != nil {
		if errors.Is(scanError, ErrOriginSectionNotFound) || errors.Is(scanError, ErrOriginURLNotFound) {
			return "", scanError
		}
		return "", fmt.Errorf(configurationReadErrorTemplateConstant, configurationPath, scanError)
	}
	return originURL, nil
}

func scanOriginURL(configurationReader io.Reader) (string, error) {
	lineScanner := bufio.NewScanner(configurationReader)

	originSectionFound := false
	for lineScanner.Scan() {
		if strings.Contains(lineScanner.Text(), originSectionMarkerConstant) {
			originSectionFound = true
			break
		}
	}
	if !originSectionFound {
		if readError := lineScanner.Err(); readError != nil {
			return "", readError
		}
		return "", ErrOriginSectionNotFound
	}

	for lineScanner.Scan() {
		currentLine := lineScanner.Text()
		if strings.Contains(currentLine, urlKeyMarkerConstant) {
			separatorIndex := strings.Index(currentLine, keyValueSeparatorConstant)
			if separatorIndex >= 0 {
				return strings.TrimSpace(currentLine[separatorIndex+1:]), nil
			}
			break
		}
		if strings.Contains(currentLine, sectionHeaderMarkerConstant) {
			break
		}
	}
	if readError := lineScanner.Err(); readError != nil {
		return "", readError
	}
	return "", ErrOriginURLNotFound
}
