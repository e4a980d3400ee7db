package config

// Specification of requested logging verbosity.
// ENUM(none, normal, debug)
type VerbosityLevel int

// Specification of log file handling mode.
// ENUM(overwrite, append)
type LoggingMode int
