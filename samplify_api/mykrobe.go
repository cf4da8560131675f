package samplify_api

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Resistance variant format:
// <gene>_<aa change>-<nt change>:<ref depth>:<alt depth>:<genotype confidence>
var mykrobeVariantPattern = regexp.MustCompile(
	`^(?P<gene>.+)_(?P<aa>.+)-(?P<dna>.+):(?P<refdepth>\d+):(?P<altdepth>\d+):(?P<conf>\d+)$`,
)

var mykrobeRequiredColumns = []string{
	"sample",
	"mykrobe_version",
	"drug",
	"susceptibility",
	"variants",
	"species",
	"lineage",
}

// MykrobeParser reads the combined species, lineage and resistance report.
// The report format is dispatched on the header shape, files from unsupported
// tool versions are rejected.
type MykrobeParser struct{}

func (parser *MykrobeParser) Parse(path string) (*Fragment, error) {
	rows, err := readDelimited(path, ',')
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Fragment{}, nil
	}

	for _, required := range mykrobeRequiredColumns {
		if _, ok := rows[0][required]; !ok {
			return nil, fmt.Errorf("mykrobe report %s has an unsupported header shape, missing column %q", path, required)
		}
	}

	variants, err := parser.parseVariants(rows)
	if err != nil {
		return nil, fmt.Errorf("mykrobe report %s: %w", path, err)
	}

	fragment := &Fragment{
		SpeciesPrediction: []MethodIndex{{
			Type:     AnalysisSpecies,
			Software: SoftwareMykrobe,
			Result:   parser.parseSpecies(rows[0]),
		}},
		ElementTypeResult: []MethodIndex{{
			Type:     AnalysisAmr,
			Software: SoftwareMykrobe,
			Result: ElementTypeResult{
				Phenotypes: parser.srProfile(rows),
				Genes:      []Gene{},
				Variants:   variants,
			},
		}},
		Variants: variants,
	}

	if lineage := parser.parseLineage(rows[0]); lineage != nil {
		fragment.TypingResult = append(fragment.TypingResult, MethodIndex{
			Type:     AnalysisLineage,
			Software: SoftwareMykrobe,
			Result:   lineage,
		})
	}

	if version := rows[0]["mykrobe_version"]; !isNullish(version) {
		fragment.Softwares = append(fragment.Softwares, SoupVersion{
			Name:    string(SoftwareMykrobe),
			Version: version,
			Type:    SoupSoftware,
		})
	}

	return fragment, nil
}

func (parser *MykrobeParser) srProfile(rows []map[string]string) SRProfile {
	susceptible := map[string]bool{}
	resistant := map[string]bool{}
	for _, row := range rows {
		if row["drug"] == "" {
			continue
		}
		switch strings.ToUpper(row["susceptibility"]) {
		case "R":
			resistant[row["drug"]] = true
		case "S":
			susceptible[row["drug"]] = true
		}
	}
	return SRProfile{
		Susceptible: sortedKeys(susceptible),
		Resistant:   sortedKeys(resistant),
	}
}

func (parser *MykrobeParser) parseVariants(rows []map[string]string) ([]Variant, error) {
	variants := []Variant{}
	for _, row := range rows {
		if strings.ToUpper(row["susceptibility"]) != "R" || row["variants"] == "" {
			continue
		}
		if row["drug"] == "" {
			continue
		}

		phenotypes := []PhenotypeInfo{NewPhenotype(row["drug"], ElementAmr, SoftwareMykrobe)}
		for _, token := range strings.Split(row["variants"], ";") {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}

			match := mykrobeVariantPattern.FindStringSubmatch(token)
			if match == nil {
				return nil, fmt.Errorf("bad variant token %q", token)
			}
			gene, aaChange, dnaChange := match[1], match[2], match[3]

			aa, err := parseMutationNomenclature(aaChange)
			if err != nil {
				return nil, err
			}
			dna, err := parseMutationNomenclature(dnaChange)
			if err != nil {
				return nil, err
			}

			refDepth, _ := safeFloat(match[4])
			altDepth, _ := safeFloat(match[5])
			confidence, _ := safeFloat(match[6])

			depth := *refDepth + *altDepth
			var frequency *float64
			if depth > 0 {
				ratio := *altDepth / depth
				frequency = &ratio
			}

			refNt, altNt := dna.Ref, dna.Alt
			if aa.Subtype == SubTypeSubstitution {
				refNt, altNt = NtChange(refNt, altNt)
			}

			passed := true
			variant := Variant{
				Caller:            SoftwareMykrobe,
				VariantType:       aa.Type,
				VariantSubtype:    aa.Subtype,
				ReferenceSequence: gene,
				Start:             dna.Pos,
				End:               dna.Pos + int64(max(len(altNt), 1)),
				RefNt:             refNt,
				AltNt:             altNt,
				Method:            row["genotype_model"],
				Depth:             &depth,
				Frequency:         frequency,
				Confidence:        confidence,
				PassedQc:          &passed,
				Phenotypes:        phenotypes,
				Provenance:        []Software{SoftwareMykrobe},
			}
			// single residue changes are reported on amino acid level too
			if len(aa.Ref) == 1 && len(aa.Alt) == 1 {
				variant.RefAa = aa.Ref
				variant.AltAa = aa.Alt
			}
			variants = append(variants, variant)
		}
	}

	sort.Slice(variants, func(left, right int) bool {
		if variants[left].ReferenceSequence != variants[right].ReferenceSequence {
			return variants[left].ReferenceSequence < variants[right].ReferenceSequence
		}
		return variants[left].Start < variants[right].Start
	})
	return variants, nil
}

// parseSpecies reads the semicolon separated species fields of the first
// row, the fields are parallel lists
func (parser *MykrobeParser) parseSpecies(row map[string]string) []SppPrediction {
	splitList := func(field string) []string {
		if row[field] == "" {
			return nil
		}
		return strings.Split(row[field], ";")
	}
	at := func(values []string, index int) string {
		if index < len(values) {
			return values[index]
		}
		return ""
	}

	species := splitList("species")
	phyloGroups := splitList("phylo_group")
	speciesCoverage := splitList("species_per_covg")

	predictions := []SppPrediction{}
	for index, name := range species {
		if strings.TrimSpace(name) == "" {
			continue
		}
		prediction := SppPrediction{
			ScientificName:    strings.ReplaceAll(name, "_", " "),
			PhylogeneticGroup: strings.ReplaceAll(at(phyloGroups, index), "_", " "),
		}
		if coverage, err := safeFloat(at(speciesCoverage, index)); err == nil {
			prediction.SpeciesCoverage = coverage
		}
		predictions = append(predictions, prediction)
	}
	return predictions
}

// parseLineage reads the lineage call, the main lineage is the part before
// the first dot
func (parser *MykrobeParser) parseLineage(row map[string]string) *LineageResult {
	lineage := row["lineage"]
	if isNullish(lineage) {
		return nil
	}
	main, _, _ := strings.Cut(lineage, ".")
	return &LineageResult{
		MainLineage: main,
		Sublineage:  lineage,
	}
}

// MutationChange is a mutation in compact nomenclature, like GCG7569GTG
type MutationChange struct {
	Type    VariantType
	Subtype VariantSubType
	Ref     string
	Alt     string
	Pos     int64
}

var firstDigitPattern = regexp.MustCompile(`\d`)
var lastDigitPattern = regexp.MustCompile(`\d(\D*)$`)

// parseMutationNomenclature splits a token like GCG7569GTG into its
// reference allele, position and alternative allele
func parseMutationNomenclature(token string) (*MutationChange, error) {
	first := firstDigitPattern.FindStringIndex(token)
	last := lastDigitPattern.FindStringIndex(token)
	if first == nil || last == nil {
		return nil, fmt.Errorf("cannot parse mutation nomenclature %q", token)
	}

	ref := token[:first[0]]
	alt := token[last[0]+1:]
	position, err := safeInt(token[first[0] : last[0]+1])
	if err != nil || position == nil {
		return nil, fmt.Errorf("cannot parse mutation nomenclature %q", token)
	}

	change := &MutationChange{Ref: ref, Alt: alt, Pos: *position}
	change.Type, change.Subtype = ClassifyVariant(ref, alt)
	return change, nil
}
