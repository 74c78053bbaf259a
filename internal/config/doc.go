// Package config provides configuration loading for the nhlvis commands.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML file: $NHLVIS_CONFIG, nhlvis.yaml or configs/nhlvis.yaml
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// Nested fields join their section and field names under the NHLVIS prefix:
//
//	NHLVIS_ANALYSIS_TEAM=UTA
//	NHLVIS_ANALYSIS_COUNT_METRICS=G,A,P
//	NHLVIS_API_RPS=2
//	NHLVIS_API_SEASONS=20232024,20242025
//	NHLVIS_CHART_DPI=150
//	NHLVIS_LOGGING_LEVEL=debug
//	NHLVIS_PATHS_DATA_DIR=/var/lib/nhlvis
//
// # Validation
//
// Load rejects a configuration whose team is not 2-3 upper-case letters,
// whose page size is outside 1-100, whose DPI is outside 72-600, or whose
// metric sets are empty or name an unknown metric code.
//
// # Paths
//
// Every file location derives from the data directory; see Paths.
package config
