package scope

import (
	"regexp"
	"sort"
	"strings"

	"ai-helpdesk-be/internal/dto"
)

// Source tells the orchestrator how a scope was picked.
type Source int

const (
	SourceTag Source = iota
	SourceDirectory
	SourceSticky
)

// Resolution is the outcome of mapping a message to a project scope.
type Resolution struct {
	Scope  string
	Query  string // message text with the tag / project name stripped
	Source Source
}

var tagPattern = regexp.MustCompile(`#([A-Za-z0-9_\-]+)`)

// Resolver maps free text to a project scope using, in order: an explicit
// #tag, the longest project-name match from the tenant directory, then the
// session's sticky scope. All inputs are immutable; the resolver holds no
// session state itself.
type Resolver struct {
	// matchThreshold is the minimum word-overlap score for a directory name
	// to count as mentioned. 1.0 means exact whole-phrase containment only.
	matchThreshold float64
}

func NewResolver(matchThreshold float64) *Resolver {
	if matchThreshold <= 0 || matchThreshold > 1 {
		matchThreshold = 1.0
	}
	return &Resolver{matchThreshold: matchThreshold}
}

// Resolve picks the scope for a message. directory maps project name → scope
// id, currentScope is the session's sticky scope ("" if none). On failure it
// returns a *dto.NeedsScopeError listing the known project names.
func (r *Resolver) Resolve(directory map[string]string, currentScope, message string) (*Resolution, error) {
	// 1. Explicit #tag wins verbatim.
	if m := tagPattern.FindStringSubmatch(message); m != nil {
		query := strings.TrimSpace(strings.Replace(message, m[0], "", 1))
		return &Resolution{
			Scope:  m[1],
			Query:  collapseSpaces(query),
			Source: SourceTag,
		}, nil
	}

	// 2. Longest directory name mentioned in the message.
	if name, ok := r.bestDirectoryMatch(directory, message); ok {
		return &Resolution{
			Scope:  directory[name],
			Query:  stripName(message, name),
			Source: SourceDirectory,
		}, nil
	}

	// 3. Sticky scope from the running session.
	if currentScope != "" {
		return &Resolution{
			Scope:  currentScope,
			Query:  collapseSpaces(strings.TrimSpace(message)),
			Source: SourceSticky,
		}, nil
	}

	names := make([]string, 0, len(directory))
	for name := range directory {
		names = append(names, name)
	}
	sort.Strings(names)
	return nil, &dto.NeedsScopeError{KnownProjects: names}
}

// bestDirectoryMatch returns the highest-scoring project name. When two names
// are substrings of one another the longer literal match is preferred, so
// candidates are ranked by score, then name length.
func (r *Resolver) bestDirectoryMatch(directory map[string]string, message string) (string, bool) {
	names := make([]string, 0, len(directory))
	for name := range directory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	best := ""
	bestScore := 0.0
	for _, name := range names {
		score := matchScore(message, name)
		if score >= r.matchThreshold && score > bestScore {
			best = name
			bestScore = score
		}
	}
	return best, best != ""
}

// matchScore is 1.0 for a case-insensitive whole-phrase occurrence, otherwise
// the fraction of the name's words present as whole words in the message.
func matchScore(message, name string) float64 {
	if name == "" {
		return 0
	}
	if containsPhrase(message, name) {
		return 1.0
	}

	nameWords := strings.Fields(strings.ToLower(name))
	if len(nameWords) == 0 {
		return 0
	}
	matched := 0
	for _, w := range nameWords {
		if containsPhrase(message, w) {
			matched++
		}
	}
	return float64(matched) / float64(len(nameWords))
}

func containsPhrase(message, phrase string) bool {
	pattern := `(?i)\b` + regexp.QuoteMeta(phrase) + `\b`
	matched, err := regexp.MatchString(pattern, message)
	return err == nil && matched
}

// stripName removes the project-name mention (word-boundary, case-insensitive)
// from the residual query text.
func stripName(message, name string) string {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return collapseSpaces(strings.TrimSpace(message))
	}
	stripped := re.ReplaceAllString(message, " ")
	return collapseSpaces(strings.TrimSpace(stripped))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
