package samplify_api

import (
	"fmt"
	"sort"
)

// Drugs the lineage caller reports resistance predictions for
var tbDrugPanel = []string{
	"amikacin",
	"capreomycin",
	"ciprofloxacin",
	"delamanid",
	"ethambutol",
	"ethionamide",
	"isoniazid",
	"kanamycin",
	"levofloxacin",
	"linezolid",
	"moxifloxacin",
	"ofloxacin",
	"pyrazinamide",
	"rifampicin",
	"streptomycin",
}

type tbDrugAnnotation struct {
	Drug       string `json:"drug"`
	Comment    string `json:"comment"`
	Confidence string `json:"confidence"`
	Source     string `json:"source"`
}

type tbVariant struct {
	GeneName            string             `json:"gene_name"`
	FeatureID           string             `json:"feature_id"`
	Pos                 int64              `json:"pos"`
	Ref                 string             `json:"ref"`
	Alt                 string             `json:"alt"`
	Sv                  bool               `json:"sv"`
	Type                string             `json:"type"`
	NucleotideChange    string             `json:"nucleotide_change"`
	ProteinChange       string             `json:"protein_change"`
	Depth               *float64           `json:"depth"`
	Freq                float64            `json:"freq"`
	Annotation          []tbDrugAnnotation `json:"annotation"`
	GeneAssociatedDrugs []string           `json:"gene_associated_drugs"`
}

type tbLineage struct {
	Lineage  string   `json:"lineage"`
	Family   string   `json:"family"`
	Rd       string   `json:"rd"`
	Fraction *float64 `json:"fraction"`
}

type tbSoftware struct {
	Process  string `json:"process"`
	Software string `json:"software"`
}

type tbDocument struct {
	SchemaVersion string `json:"schema_version"`
	Pipeline      struct {
		Software  []tbSoftware `json:"software"`
		DbVersion struct {
			Name   string `json:"name"`
			Commit string `json:"commit"`
		} `json:"db_version"`
	} `json:"pipeline"`
	DrVariants     []tbVariant `json:"dr_variants"`
	OtherVariants  []tbVariant `json:"other_variants"`
	QcFailVariants []tbVariant `json:"qc_fail_variants"`
	MainLineage    string      `json:"main_lin"`
	Sublineage     string      `json:"sublin"`
	Lineage        []tbLineage `json:"lineage"`
}

// TbProfilerParser reads the mycobacterial resistance and lineage report.
// Variants come in three groups, known resistance variants, variants in
// resistance genes without a database entry and known variants failing QC.
type TbProfilerParser struct{}

var supportedTbSchemaVersions = map[string]bool{"": true, "1.0": true, "1.1": true}

func (parser *TbProfilerParser) Parse(path string) (*Fragment, error) {
	var document tbDocument
	if err := readJSON(path, &document); err != nil {
		return nil, err
	}
	if !supportedTbSchemaVersions[document.SchemaVersion] {
		return nil, fmt.Errorf("tbprofiler report %s: unsupported schema version %q", path, document.SchemaVersion)
	}

	variants := parser.parseVariants(&document)

	fragment := &Fragment{
		ElementTypeResult: []MethodIndex{{
			Type:     AnalysisAmr,
			Software: SoftwareTbProfiler,
			Result: ElementTypeResult{
				Phenotypes: parser.srProfile(&document),
				Genes:      []Gene{},
				Variants:   variants,
			},
		}},
		TypingResult: []MethodIndex{{
			Type:     AnalysisLineage,
			Software: SoftwareTbProfiler,
			Result:   parser.parseLineage(&document),
		}},
		Variants: variants,
	}

	if document.Pipeline.DbVersion.Name != "" {
		fragment.Softwares = append(fragment.Softwares, SoupVersion{
			Name:    document.Pipeline.DbVersion.Name,
			Version: document.Pipeline.DbVersion.Commit,
			Type:    SoupDatabase,
		})
	}

	return fragment, nil
}

func (parser *TbProfilerParser) srProfile(document *tbDocument) SRProfile {
	resistant := map[string]bool{}
	for _, variant := range document.DrVariants {
		for _, drug := range variant.GeneAssociatedDrugs {
			resistant[drug] = true
		}
	}

	susceptible := []string{}
	for _, drug := range tbDrugPanel {
		if !resistant[drug] {
			susceptible = append(susceptible, drug)
		}
	}

	return SRProfile{
		Susceptible: susceptible,
		Resistant:   sortedKeys(resistant),
	}
}

func (parser *TbProfilerParser) parseVariants(document *tbDocument) []Variant {
	variantCaller := ""
	for _, software := range document.Pipeline.Software {
		if software.Process == "variant_calling" {
			variantCaller = software.Software
			break
		}
	}

	variants := []Variant{}
	for _, group := range []struct {
		calls    []tbVariant
		passedQc bool
	}{
		{document.DrVariants, true},
		{document.OtherVariants, true},
		{document.QcFailVariants, false},
	} {
		for _, call := range group.calls {
			variantType, variantSubtype := ClassifyVariant(call.Ref, call.Alt)
			if call.Sv {
				variantType = TypeSv
			}

			phenotypes := []PhenotypeInfo{}
			for _, annotation := range call.Annotation {
				phenotype := NewPhenotype(annotation.Drug, ElementAmr, SoftwareTbProfiler)
				if annotation.Comment != "" {
					phenotype.Reference = []string{annotation.Comment}
				}
				phenotype.Note = annotation.Confidence
				phenotype.Source = annotation.Source
				phenotypes = append(phenotypes, phenotype)
			}

			passed := group.passedQc
			frequency := call.Freq
			variants = append(variants, Variant{
				Caller:            SoftwareTbProfiler,
				VariantType:       variantType,
				VariantSubtype:    variantSubtype,
				ReferenceSequence: call.GeneName,
				Accession:         call.FeatureID,
				Start:             call.Pos,
				End:               call.Pos + int64(len(call.Alt)),
				RefNt:             call.Ref,
				AltNt:             call.Alt,
				Method:            variantCaller,
				Depth:             call.Depth,
				Frequency:         &frequency,
				PassedQc:          &passed,
				Phenotypes:        phenotypes,
				Provenance:        []Software{SoftwareTbProfiler},
			})
		}
	}

	sort.Slice(variants, func(left, right int) bool {
		if variants[left].ReferenceSequence != variants[right].ReferenceSequence {
			return variants[left].ReferenceSequence < variants[right].ReferenceSequence
		}
		return variants[left].Start < variants[right].Start
	})
	return variants
}

func (parser *TbProfilerParser) parseLineage(document *tbDocument) LineageResult {
	result := LineageResult{
		MainLineage: document.MainLineage,
		Sublineage:  document.Sublineage,
	}
	for _, lineage := range document.Lineage {
		result.Lineages = append(result.Lineages, LineageInformation{
			Lineage:  lineage.Lineage,
			Family:   lineage.Family,
			Rd:       lineage.Rd,
			Fraction: lineage.Fraction,
		})
	}
	return result
}
