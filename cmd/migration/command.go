package main

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	commandUp      = "up"
	commandDown    = "down"
	commandVersion = "version"
	commandForce   = "force"
	commandGoto    = "goto"
	commandSeed    = "seed"
)

type command struct {
	name    string
	steps   int
	version int
	target  uint
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, fmt.Errorf("command is required")
	}

	name := strings.ToLower(strings.TrimSpace(args[0]))
	rest := args[1:]
	switch name {
	case commandUp, commandVersion, commandSeed:
		return command{name: name}, nil
	case commandDown:
		steps, err := parseSteps(rest)
		if err != nil {
			return command{}, err
		}
		return command{name: name, steps: steps}, nil
	case commandForce:
		if len(rest) == 0 {
			return command{}, fmt.Errorf("force requires a version argument")
		}
		version, err := parseVersion(rest[0])
		if err != nil {
			return command{}, err
		}
		return command{name: name, version: version}, nil
	case commandGoto, "migrate":
		if len(rest) == 0 {
			return command{}, fmt.Errorf("goto requires a target version argument")
		}
		target, err := parseTarget(rest[0])
		if err != nil {
			return command{}, err
		}
		return command{name: commandGoto, target: target}, nil
	default:
		return command{}, fmt.Errorf("unknown command %q", args[0])
	}
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

// parseVersion accepts -1, which golang-migrate uses for "no version".
func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < -1 {
		return 0, fmt.Errorf("version must be >= -1")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}
