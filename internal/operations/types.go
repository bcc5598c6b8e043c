package operations

import (
	"time"
)

// Step identifiers
const (
	StepIDClean   = "clean"
	StepIDPrepare = "prepare"
	StepIDAnalyze = "analyze"
	StepIDExport  = "export"
	StepIDCluster = "cluster"
)

// Step names
const (
	StepNameClean   = "Data Cleaning"
	StepNamePrepare = "Data Preparation"
	StepNameAnalyze = "Exploratory Analysis"
	StepNameExport  = "Dataset Export"
	StepNameCluster = "Cluster Pre-processing"
)

// Context keys for data passed between steps
const (
	ContextKeyRaw           = "raw_dataset"
	ContextKeyClean         = "clean_dataset"
	ContextKeyCleanReport   = "clean_report"
	ContextKeyPrepared      = "prepared_dataset"
	ContextKeyPrepareReport = "prepare_report"
	ContextKeyAnalysis      = "analysis_result"
	ContextKeyClusterFrame  = "cluster_frame"
)

// DefaultStepTimeout bounds a step without a configured timeout
const DefaultStepTimeout = 30 * time.Minute
