package gbi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrPrefs is returned for malformed preference strings.
var ErrPrefs = errors.New("invalid preference")

// ParsePrefs turns a preference string of the form "key::value; key::value"
// into options. Recognised keys are host (WxH), upscale, widescreen, game,
// seed and budget.
func ParsePrefs(prefs string) ([]Option, error) {
	var opts []Option
	for _, p := range strings.Split(prefs, ";") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		kv := strings.Split(p, "::")
		if len(kv) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrPrefs, strings.TrimSpace(p))
		}
		key, value := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])

		opt, err := parsePref(key, value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrPrefs, key, err)
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

func parsePref(key, value string) (Option, error) {
	switch key {
	case "host":
		ws, hs, ok := strings.Cut(value, "x")
		if !ok {
			return nil, fmt.Errorf("expected WxH, got %q", value)
		}
		w, err := strconv.Atoi(ws)
		if err != nil {
			return nil, err
		}
		h, err := strconv.Atoi(hs)
		if err != nil {
			return nil, err
		}
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("size %dx%d", w, h)
		}
		return HostSize(w, h), nil
	case "upscale":
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, err
		}
		return Upscale(float32(f)), nil
	case "widescreen":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		return Widescreen(b), nil
	case "game":
		return GameName(value), nil
	case "seed":
		n, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return nil, err
		}
		return RandomSeed(n), nil
	case "budget":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		return InstructionBudget(n), nil
	}
	return nil, errors.New("unknown key")
}
