package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv expands environment references in a probe definition value, so
// tokens like "Bearer ${API_TOKEN}" stay out of config files.
//
// Semantics:
//   - `$VAR` and `${VAR}` are expanded via os.ExpandEnv.
//   - A `${VAR}` whose VAR is absent from the environment is an error.
//   - `$$` emits a literal `$`.
func expandEnv(s string) (string, error) {
	const dollarSentinel = "\x00PROBEWATCH_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollarSentinel)

	missing := make(map[string]struct{})
	for _, match := range envRefPattern.FindAllStringSubmatch(s, -1) {
		if _, ok := os.LookupEnv(match[1]); !ok {
			missing[match[1]] = struct{}{}
		}
	}
	if len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for k := range missing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(keys, ", "))
	}

	s = os.ExpandEnv(s)
	return strings.ReplaceAll(s, dollarSentinel, "$"), nil
}

func expandEnvSlice(values []string) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		expanded, err := expandEnv(v)
		if err != nil {
			return nil, err
		}
		out[i] = expanded
	}
	return out, nil
}
