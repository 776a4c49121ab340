package config

import "time"

const (
	// Typing speed
	DefaultSpeedWPM = 70
	MinSpeedWPM     = 20
	MaxSpeedWPM     = 200

	// Typing time bounds (seconds)
	MinTypingSeconds = 0.5
	MaxTypingSeconds = 10.0

	// Questions
	QuestionCooldown = time.Second
	// ReportPause is the pause between the answer and the typing-time report.
	ReportPause = time.Second
)
