package view

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const apiTimeout = 15 * time.Second

// APICtx returns a context with a standard timeout for API calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}

// formValue sends numeric input as a number and anything else as trimmed text.
// Zero-padded digits such as "007" stay text.
func formValue(s string) any {
	s = strings.TrimSpace(s)

	if len(s) > 1 && s[0] == '0' && s[1] != '.' {
		return s
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	return s
}

func prettyJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}

	return string(out)
}
