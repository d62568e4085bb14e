package cli

import (
	"fmt"
	"strconv"
	"strings"
)

type invalidArgError struct {
	name  string
	value string
	want  string
}

func (e invalidArgError) Error() string {
	return fmt.Sprintf("invalid %s: %q (expected %s)", e.name, e.value, e.want)
}

func parseIndexArg(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, invalidArgError{name: "index", value: s, want: "a non-negative integer"}
	}
	return n, nil
}
