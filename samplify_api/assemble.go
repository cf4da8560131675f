package samplify_api

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

// Assemble runs every parser with a supplied input file, merges their
// fragments and reconciles the variant calls into one validated result
func Assemble(config *SampleConfig, targets []GeneTarget) (*PipelineResult, error) {
	sequencing, pipeline, err := ParseRunInfo(config.RunInfo)
	if err != nil {
		return nil, err
	}

	result := &PipelineResult{
		SchemaVersion:     SchemaVersion,
		SampleID:          config.SampleID,
		SampleName:        config.SampleName,
		LimsID:            config.LimsID,
		Sequencing:        *sequencing,
		Pipeline:          *pipeline,
		Qc:                []MethodIndex{},
		SpeciesPrediction: []MethodIndex{},
		TypingResult:      []MethodIndex{},
		ElementTypeResult: []MethodIndex{},
	}

	if len(config.SoftwareVersions) > 0 {
		versions, err := ReadSoftwareVersions(config.SoftwareVersions)
		if err != nil {
			return nil, err
		}
		result.Pipeline.Softwares = versions
	}

	variants := []Variant{}
	for _, input := range []struct {
		software Software
		path     string
		parser   Parser
	}{
		{SoftwareQuast, config.Quast, &QuastParser{}},
		{SoftwarePostAlignQc, config.PostAlignQc, &PostAlignQcParser{}},
		{SoftwareBracken, config.Bracken, &BrackenParser{}},
		{SoftwareMlst, config.Mlst, &MlstParser{}},
		{SoftwareChewbbaca, config.Chewbbaca, &ChewbbacaParser{}},
		{SoftwareSerotypeFinder, config.SerotypeFinder, &SerotypeFinderParser{}},
		{SoftwareResFinder, config.ResFinder, &ResFinderParser{}},
		{SoftwareAmrFinder, config.AmrFinder, &AmrFinderParser{}},
		{SoftwareVirulenceFinder, config.VirulenceFinder, &VirulenceFinderParser{}},
		{SoftwareMykrobe, config.Mykrobe, &MykrobeParser{}},
		{SoftwareTbProfiler, config.TbProfiler, &TbProfilerParser{}},
		{"snv caller", config.SnvVcf, &SnvVcfParser{Caller: Software(config.SnvCaller)}},
		{"sv caller", config.SvVcf, &SvVcfParser{Caller: Software(config.SvCaller)}},
	} {
		if input.path == "" {
			continue
		}
		log.WithFields(log.Fields{"software": input.software, "file": input.path}).Info("Parsing result file")

		fragment, err := input.parser.Parse(input.path)
		if err != nil {
			return nil, err
		}

		result.Qc = append(result.Qc, fragment.Qc...)
		result.SpeciesPrediction = append(result.SpeciesPrediction, fragment.SpeciesPrediction...)
		result.TypingResult = append(result.TypingResult, fragment.TypingResult...)
		result.ElementTypeResult = append(result.ElementTypeResult, fragment.ElementTypeResult...)
		result.Pipeline.Softwares = append(result.Pipeline.Softwares, fragment.Softwares...)
		variants = append(variants, fragment.Variants...)
	}

	reconciled := Reconcile(variants, targets)
	result.SnvVariants, result.SvVariants, result.IndelVariants = SplitByType(reconciled)
	log.WithFields(log.Fields{
		"total": len(reconciled),
		"snv":   len(result.SnvVariants),
		"sv":    len(result.SvVariants),
		"indel": len(result.IndelVariants),
	}).Info("Reconciled variant calls")

	if err := result.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}

// WriteResult serializes the result as indented json to the given path, or
// to stdout when the path is empty
func WriteResult(result *PipelineResult, path string) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize the result: %w", err)
	}
	content = append(content, '\n')

	if path == "" {
		_, err = os.Stdout.Write(content)
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write the result: %w", err)
	}
	return nil
}
