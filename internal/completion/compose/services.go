package compose

import (
	"os"
	"regexp"
	"strings"
)

// The scanner reads only the flat list of keys directly under a top-level
// "services:" mapping. Flow style, anchors and multi-document files are not
// understood.
var (
	skippedLine  = regexp.MustCompile(`^\s*(#|$)`)
	servicesLine = regexp.MustCompile(`^services:(\s|#|$)`)
	entryLine    = regexp.MustCompile(`^(\s*)(\w[\w.-]*):`)
)

type scanState int

const (
	seekingSection scanState = iota
	inSection
	done
)

// ExtractServices returns the service names declared in the compose file at
// path, in file order. An empty path or an unreadable file yields no services.
// It is readServices without the error, which the resolver keeps for logging.
func ExtractServices(path string) []string {
	names, err := readServices(path)
	if err != nil {
		return []string{}
	}
	return names
}

func readServices(path string) ([]string, error) {
	if path == "" {
		return []string{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseServices(string(data)), nil
}

// ParseServices scans compose file content for service names. Duplicates are
// kept; the scan stops for good at the first key indented less than the first
// service. Lines have no length limit.
func ParseServices(content string) []string {
	names := []string{}
	state := seekingSection
	baseline := -1

	for _, line := range strings.Split(content, "\n") {
		if state == done {
			break
		}
		line = strings.TrimSuffix(line, "\r")
		if skippedLine.MatchString(line) {
			continue
		}

		switch state {
		case seekingSection:
			if servicesLine.MatchString(line) {
				state = inSection
			}
		case inSection:
			m := entryLine.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			indent, name := len(m[1]), m[2]
			switch {
			case baseline < 0 && indent > 0:
				baseline = indent
				names = append(names, name)
			case indent == baseline:
				names = append(names, name)
			case indent < baseline || indent == 0:
				// A top-level key closes the section even before any service was seen.
				state = done
			}
		}
	}

	return names
}
