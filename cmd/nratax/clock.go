package main

import "time"

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

func currentYear() int { return nowFunc().Year() }
