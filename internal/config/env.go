package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// envReader applies typed environment values and keeps the first parse error.
type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *envReader) get(key string) (string, bool) {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (e *envReader) fail(key, value, kind string) {
	if e.err == nil {
		e.err = &FieldError{Field: key, Message: fmt.Sprintf("invalid %s %q", kind, value)}
	}
}

func (e *envReader) str(dst *string, key string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envReader) integer(dst *int, key string) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, "integer")
		return
	}
	*dst = n
}

func (e *envReader) boolean(dst *bool, key string) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, "boolean")
		return
	}
	*dst = b
}

func (e *envReader) duration(dst *time.Duration, key string) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, "duration")
		return
	}
	*dst = d
}

// list parses a comma-separated value, dropping blank entries
func (e *envReader) list(dst *[]string, key string) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}
