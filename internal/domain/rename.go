package domain

import (
	"strings"

	"github.com/fatih/camelcase"
)

// DefaultPartialSuffixes is the built-in ordered mapping from abbreviated
// suffix forms to their full forms. Order matters: the first entry whose full
// form matches the required suffix and whose partial form ends the current
// name wins.
func DefaultPartialSuffixes() []PartialSuffix {
	return []PartialSuffix{
		{Partial: "Repo", Full: "Repository"},
		{Partial: "Config", Full: "Configuration"},
		{Partial: "Spec", Full: "Specification"},
		{Partial: "Svc", Full: "Service"},
	}
}

// MergePartialSuffixes prepends user-supplied mappings to the defaults so
// overrides win while the built-ins stay available.
func MergePartialSuffixes(overrides []PartialSuffix) []PartialSuffix {
	return append(append([]PartialSuffix{}, overrides...), DefaultPartialSuffixes()...)
}

// TargetName computes the repaired name for a type that is missing its
// required suffix. A trailing partial form of the suffix is replaced
// ("UserConfig" -> "UserConfiguration"); otherwise the suffix is appended
// ("UserStore" -> "UserStoreRepository").
func TargetName(currentName, requiredSuffix string, mappings []PartialSuffix) string {
	for _, m := range mappings {
		if !strings.EqualFold(m.Full, requiredSuffix) {
			continue
		}
		if stem, ok := trimPartial(currentName, m.Partial); ok {
			return stem + requiredSuffix
		}
	}
	return currentName + requiredSuffix
}

// trimPartial removes a trailing partial suffix, case-insensitively, but only
// when the cut falls on a camel-case word boundary. "UserConfig" loses
// "Config"; "Interval" keeps its tail even though it ends in "val".
func trimPartial(name, partial string) (string, bool) {
	if len(partial) == 0 || len(name) < len(partial) {
		return "", false
	}
	cut := len(name) - len(partial)
	if !strings.EqualFold(name[cut:], partial) {
		return "", false
	}
	if cut > 0 && !isWordBoundary(name, cut) {
		return "", false
	}
	return name[:cut], true
}

func isWordBoundary(name string, cut int) bool {
	offset := 0
	for _, word := range camelcase.Split(name) {
		if offset == cut {
			return true
		}
		offset += len(word)
	}
	return offset == cut
}

// LastWord returns the final camel-case word of an identifier, used by the
// heuristic rules to match conventional trailing words without being fooled
// by accidental substrings.
func LastWord(name string) string {
	words := camelcase.Split(name)
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}
