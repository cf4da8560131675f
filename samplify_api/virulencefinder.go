package samplify_api

import (
	"sort"
	"strings"
)

type virulencePhenotype struct {
	Function    string   `json:"function"`
	RefDatabase []string `json:"ref_database"`
	SeqRegions  []string `json:"seq_regions"`
}

type virulenceSeqRegion struct {
	Name            string   `json:"name"`
	RefAcc          string   `json:"ref_acc"`
	RefDatabase     []string `json:"ref_database"`
	RefStartPos     *int64   `json:"ref_start_pos"`
	RefEndPos       *int64   `json:"ref_end_pos"`
	RefSeqLength    *int64   `json:"ref_seq_length"`
	AlignmentLength *int64   `json:"alignment_length"`
	Identity        *float64 `json:"identity"`
	Coverage        *float64 `json:"coverage"`
}

type virulenceDocument struct {
	Phenotypes map[string]virulencePhenotype `json:"phenotypes"`
	SeqRegions map[string]virulenceSeqRegion `json:"seq_regions"`
}

// VirulenceFinderParser reads the virulence gene predictions. Hits against a
// toxin database get the toxin subtype, shigatoxin genes are additionally
// reported as an stx typing result.
type VirulenceFinderParser struct{}

func (parser *VirulenceFinderParser) Parse(path string) (*Fragment, error) {
	var document virulenceDocument
	if err := readJSON(path, &document); err != nil {
		return nil, err
	}

	genes := []Gene{}
	stxGenes := []Gene{}
	phenotypeKeys := make([]string, 0, len(document.Phenotypes))
	for key := range document.Phenotypes {
		phenotypeKeys = append(phenotypeKeys, key)
	}
	sort.Strings(phenotypeKeys)
	for _, key := range phenotypeKeys {
		phenotype := document.Phenotypes[key]
		subtype := SubtypeVir
		for _, database := range phenotype.RefDatabase {
			if strings.Contains(database, "toxin") {
				subtype = SubtypeToxin
			}
		}

		for _, regionKey := range phenotype.SeqRegions {
			region, ok := document.SeqRegions[regionKey]
			if !ok {
				continue
			}
			gene := virulenceGene(&region, subtype, phenotype.Function)
			genes = append(genes, gene)
			if strings.HasPrefix(gene.GeneSymbol, "stx") {
				stxGenes = append(stxGenes, gene)
			}
		}
	}

	sort.SliceStable(genes, func(left, right int) bool {
		if genes[left].GeneSymbol != genes[right].GeneSymbol {
			return genes[left].GeneSymbol < genes[right].GeneSymbol
		}
		leftCov, rightCov := -1.0, -1.0
		if genes[left].Coverage != nil {
			leftCov = *genes[left].Coverage
		}
		if genes[right].Coverage != nil {
			rightCov = *genes[right].Coverage
		}
		return leftCov < rightCov
	})

	fragment := &Fragment{
		ElementTypeResult: []MethodIndex{{
			Type:     AnalysisVirulence,
			Software: SoftwareVirulenceFinder,
			Result: ElementTypeResult{
				Phenotypes: SRProfile{Susceptible: []string{}, Resistant: []string{}},
				Genes:      genes,
				Variants:   []Variant{},
			},
		}},
	}
	for _, gene := range stxGenes {
		fragment.TypingResult = append(fragment.TypingResult, MethodIndex{
			Type:     AnalysisStx,
			Software: SoftwareVirulenceFinder,
			Result:   gene,
		})
	}

	return fragment, nil
}

func virulenceGene(region *virulenceSeqRegion, subtype ElementSubtype, function string) Gene {
	gene := Gene{
		GeneSymbol:      region.Name,
		SequenceName:    function,
		ElementType:     ElementVirulence,
		ElementSubtype:  subtype,
		RefStartPos:     region.RefStartPos,
		RefEndPos:       region.RefEndPos,
		RefGeneLength:   region.RefSeqLength,
		AlignmentLength: region.AlignmentLength,
		Identity:        region.Identity,
		Coverage:        region.Coverage,
	}
	if !isNullish(region.RefAcc) {
		gene.Accession = region.RefAcc
	}
	return gene
}
