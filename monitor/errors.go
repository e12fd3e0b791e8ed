package monitor

import "errors"

var (
	// ErrNilAttempter indicates no probe attempter was supplied.
	ErrNilAttempter = errors.New("monitor: attempter is required")

	// ErrUnnamedTarget indicates a target with an empty name.
	ErrUnnamedTarget = errors.New("monitor: target name is required")

	// ErrDuplicateTarget indicates two targets share a name.
	ErrDuplicateTarget = errors.New("monitor: duplicate target name")
)
