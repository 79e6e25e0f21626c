package runtime

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// Environ returns the current process environment with overrides applied.
// The result is sorted so subprocess invocations are reproducible in logs and tests.
func Environ(overrides map[string]string) []string {
	overrideEnvs := make([]string, 0, len(overrides))
	for k, v := range overrides {
		overrideEnvs = append(overrideEnvs, fmt.Sprintf("%s=%s", k, v))
	}
	return mergeEnvs(os.Environ(), overrideEnvs)
}

func mergeEnvs(baseEnvs, overrideEnvs []string) []string {
	envMap := make(map[string]string, len(baseEnvs))

	for _, e := range baseEnvs {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}

	for _, e := range overrideEnvs {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	slices.Sort(result)

	return result
}
