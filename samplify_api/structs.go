package samplify_api

import "time"

// The root entity of the output schema. One PipelineResult is produced per
// sample and run, composed from the fragments of the individual tool parsers.
type PipelineResult struct {
	SchemaVersion int    `json:"schema_version"`
	SampleID      string `json:"sample_id"`
	SampleName    string `json:"sample_name"`
	LimsID        string `json:"lims_id"`

	// Metadata on how the sample was sequenced and analysed
	Sequencing SequencingInfo `json:"sequencing"`
	Pipeline   PipelineInfo   `json:"pipeline"`

	// Quality control and species identification
	Qc                []MethodIndex `json:"qc"`
	SpeciesPrediction []MethodIndex `json:"species_prediction"`

	// Typing and phenotype prediction
	TypingResult      []MethodIndex `json:"typing_result"`
	ElementTypeResult []MethodIndex `json:"element_type_result"`

	// Reconciled variant calls, grouped by major type
	SnvVariants   []Variant `json:"snv_variants,omitempty"`
	SvVariants    []Variant `json:"sv_variants,omitempty"`
	IndelVariants []Variant `json:"indel_variants,omitempty"`
}

// Information on how the sample was sequenced
type SequencingInfo struct {
	RunID      string     `json:"run_id"`
	Platform   string     `json:"platform"`
	Instrument string     `json:"instrument,omitempty"`
	Method     string     `json:"method,omitempty"`
	Date       *time.Time `json:"date"`
}

// Information on the pipeline run that produced the input files
type PipelineInfo struct {
	Pipeline string `json:"pipeline"`
	Version  string `json:"version"`
	Commit   string `json:"commit,omitempty"`

	// Always a list, a bare scalar in the raw run info is promoted
	AnalysisProfile    []string      `json:"analysis_profile"`
	Assay              string        `json:"assay,omitempty"`
	ReleaseLifeCycle   string        `json:"release_life_cycle"`
	WorkflowName       string        `json:"workflow_name,omitempty"`
	Command            string        `json:"command,omitempty"`
	ConfigurationFiles []string      `json:"configuration_files"`
	Softwares          []SoupVersion `json:"softwares"`
	Date               *time.Time    `json:"date"`
}

// Version of Software of Unknown Provenance
type SoupVersion struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Type    SoupType `json:"type"`
}

// Key-value container for one analytical result. Every parser fragment is
// reported through a MethodIndex so that consumers can look up results by
// analysis category and tool.
type MethodIndex struct {
	Type     AnalysisType `json:"type"`
	Software Software     `json:"software"`
	Version  string       `json:"version,omitempty"`
	Result   interface{}  `json:"result"`
}

// The validated partial result produced by one parser. The assembler merges
// the fragments of all invoked parsers into the final PipelineResult.
type Fragment struct {
	Qc                []MethodIndex
	SpeciesPrediction []MethodIndex
	TypingResult      []MethodIndex
	ElementTypeResult []MethodIndex
	Variants          []Variant
	Softwares         []SoupVersion
}

// A parser maps one upstream tool output file onto a validated Fragment.
// One implementation exists per tool, selected by explicit dispatch on which
// input files were supplied.
type Parser interface {
	Parse(path string) (*Fragment, error)
}

// Prediction of the species in the sample
type SppPrediction struct {
	ScientificName      string   `json:"scientific_name"`
	TaxonomyID          *int64   `json:"taxonomy_id"`
	TaxonomyLevel       string   `json:"taxonomy_lvl,omitempty"`
	KrakenAssignedReads *int64   `json:"kraken_assigned_reads,omitempty"`
	AddedReads          *int64   `json:"added_reads,omitempty"`
	FractionTotalReads  *float64 `json:"fraction_total_reads,omitempty"`
	PhylogeneticGroup   string   `json:"phylogenetic_group,omitempty"`
	SpeciesCoverage     *float64 `json:"species_coverage,omitempty"`
}

// MLST typing result
type TypingResultMlst struct {
	Scheme       string                 `json:"scheme"`
	SequenceType *int64                 `json:"sequence_type"`
	Alleles      map[string]interface{} `json:"alleles"`
}

// cgMLST typing result
type TypingResultCgMlst struct {
	NNovel   int                    `json:"n_novel"`
	NMissing int                    `json:"n_missing"`
	Alleles  map[string]interface{} `json:"alleles"`
}

// One lineage assignment reported by a lineage caller
type LineageInformation struct {
	Lineage  string   `json:"lineage"`
	Family   string   `json:"family,omitempty"`
	Rd       string   `json:"rd,omitempty"`
	Fraction *float64 `json:"fraction,omitempty"`
}

// Lineage typing result
type LineageResult struct {
	MainLineage string               `json:"main_lineage"`
	Sublineage  string               `json:"sublineage"`
	Lineages    []LineageInformation `json:"lineages,omitempty"`
}
