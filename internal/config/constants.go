package config

// Application constants
const (
	AppName   = "candid"
	EnvPrefix = "CANDID"

	// Default directories (relative to the working directory)
	DefaultDataDir   = "data"
	DefaultOutputDir = "output"
	DefaultLogsDir   = "logs"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogFile   = "logs/candid.log"

	// Output files written to the output directory
	UsersCleanCSV     = "users_clean.csv"
	MatchesCleanCSV   = "matches_clean.csv"
	ChatsCleanCSV     = "chats_clean.csv"
	CandidDataCSV     = "candid_data.csv"
	ChatStatsCSV      = "chat_stats.csv"
	DataQualityCSV    = "data_quality.csv"
	QualitySummaryCSV = "quality_summary.csv"
	ClusterDataCSV    = "cluster_features.csv"
	AnalysisWorkbook  = "analysis.xlsx"
	MetricsTextfile   = "metrics.prom"
	TraceFile         = "trace.json"
	ManifestFile      = "manifest.json"
)
