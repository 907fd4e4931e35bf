package config

// FileNames are the recognized config file names, in lookup order.
var FileNames = []string{"dummy.yaml", "dummy.yml"}

// Environment variables that override file values.
const (
	SeedEnv    = "DUMMY_SEED"
	VerboseEnv = "DUMMY_VERBOSE"
)
