// Package config loads and validates the pipeline configuration.
//
// # Configuration Sources
//
// Configuration is resolved in the following order of precedence:
//
//	1. Command-line flags (applied by cmd/candid)
//	2. Environment variables (CANDID_*)
//	3. YAML configuration file (candid.yaml or configs/candid.yaml)
//	4. Default values
//
// # Environment Variables
//
// Nested sections are joined with underscores:
//
//	CANDID_LOGGING_LEVEL=debug
//	CANDID_PATHS_USERS_FILE=data/users.csv
//	CANDID_CLEANING_TEST_ACCOUNTS=21,18,31
//	CANDID_PREPARATION_REFERENCE_DATE=2024-06-30
//	CANDID_ANALYSIS_TOP_N=15
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := config.NewPaths(cfg.Paths)
package config
