package samplify_api

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// SampleConfig is the analysis manifest for one sample. It names the sample
// and points at the output files of the upstream tools, every tool entry is
// optional and only supplied paths are parsed.
type SampleConfig struct {
	SampleID   string `yaml:"sample_id"`
	SampleName string `yaml:"sample_name"`
	LimsID     string `yaml:"lims_id"`

	// Pipeline run metadata emitted by the workflow engine
	RunInfo          string   `yaml:"run_info"`
	SoftwareVersions []string `yaml:"software_versions"`

	// Quality control
	Quast       string `yaml:"quast"`
	PostAlignQc string `yaml:"postalignqc"`

	// Species and typing
	Bracken        string `yaml:"bracken"`
	Mlst           string `yaml:"mlst"`
	Chewbbaca      string `yaml:"chewbbaca"`
	SerotypeFinder string `yaml:"serotypefinder"`

	// Resistance and virulence
	ResFinder       string `yaml:"resfinder"`
	AmrFinder       string `yaml:"amrfinder"`
	VirulenceFinder string `yaml:"virulencefinder"`
	Mykrobe         string `yaml:"mykrobe"`
	TbProfiler      string `yaml:"tbprofiler"`

	// Variant calls. The caller names are optional, a file carrying a
	// ##source meta line identifies its caller itself.
	SnvVcf    string `yaml:"snv_vcf"`
	SnvCaller string `yaml:"snv_caller"`
	SvVcf     string `yaml:"sv_vcf"`
	SvCaller  string `yaml:"sv_caller"`
}

// ReadSampleConfig reads the sample manifest, casts it to its struct and
// validates the mandatory fields
func ReadSampleConfig(path string) (*SampleConfig, error) {
	configFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open the sample config: %w", err)
	}

	var config SampleConfig

	if err := yaml.Unmarshal(configFile, &config); err != nil {
		return nil, fmt.Errorf("failed to parse the sample config: %w", err)
	}

	if config.SampleID == "" {
		return nil, &ValidationError{Field: "sample_id", Message: "must be set in the sample config"}
	}
	if config.RunInfo == "" {
		return nil, &ValidationError{Field: "run_info", Message: "must be set in the sample config"}
	}
	if config.SampleName == "" {
		config.SampleName = config.SampleID
	}

	return &config, nil
}

// GeneTarget is one resistance-associated gene with its location on the
// reference, used to annotate overlapping structural variants
type GeneTarget struct {
	Gene              string `yaml:"gene"`
	ReferenceSequence string `yaml:"reference_sequence"`
	Start             int64  `yaml:"start"`
	End               int64  `yaml:"end"`
}

// ReadGeneTargets reads the resistance-target table
func ReadGeneTargets(path string) ([]GeneTarget, error) {
	targetFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open the gene target table: %w", err)
	}

	var targets []GeneTarget

	if err := yaml.Unmarshal(targetFile, &targets); err != nil {
		return nil, fmt.Errorf("failed to parse the gene target table: %w", err)
	}

	for _, target := range targets {
		if target.Gene == "" || target.ReferenceSequence == "" {
			return nil, &ValidationError{Field: "gene_targets", Message: "every target needs a gene and a reference sequence"}
		}
		if target.End < target.Start {
			return nil, &ValidationError{
				Field:   "gene_targets",
				Message: fmt.Sprintf("target %s has an inverted interval %d-%d", target.Gene, target.Start, target.End),
			}
		}
	}

	return targets, nil
}
