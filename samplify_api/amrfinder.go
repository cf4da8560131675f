package samplify_api

import (
	"fmt"
	"regexp"
	"strings"
)

// AmrFinderParser reads the gene and point mutation report. Rows with the
// POINT element subtype describe mutations and are normalized to variants,
// all other rows are gene hits.
type AmrFinderParser struct{}

// Pattern for mutation names like A123T or GCG7569GTG
var mutationPattern = regexp.MustCompile(`^([A-Za-z]+)(\d+)([A-Za-z]+)$`)

var amrfinderElementTypes = map[string]ElementType{
	"AMR":       ElementAmr,
	"STRESS":    ElementStress,
	"VIRULENCE": ElementVirulence,
}

func (parser *AmrFinderParser) Parse(path string) (*Fragment, error) {
	rows, err := readDelimited(path, '\t')
	if err != nil {
		return nil, err
	}

	genesByType := map[ElementType][]Gene{}
	variants := []Variant{}
	for _, row := range rows {
		if _, ok := row["Gene symbol"]; !ok {
			return nil, fmt.Errorf("amrfinder report %s is missing the Gene symbol column", path)
		}

		if row["Element subtype"] == "POINT" {
			variant, err := amrfinderVariant(row)
			if err != nil {
				return nil, fmt.Errorf("amrfinder report %s: %w", path, err)
			}
			variants = append(variants, *variant)
			continue
		}

		gene, err := amrfinderGene(row)
		if err != nil {
			return nil, fmt.Errorf("amrfinder report %s: %w", path, err)
		}
		genesByType[gene.ElementType] = append(genesByType[gene.ElementType], *gene)
	}

	fragment := &Fragment{Variants: variants}
	for _, category := range []struct {
		analysis    AnalysisType
		elementType ElementType
	}{
		{AnalysisAmr, ElementAmr},
		{AnalysisStress, ElementStress},
		{AnalysisVirulence, ElementVirulence},
	} {
		result := ElementTypeResult{
			Phenotypes: SRProfile{Susceptible: []string{}, Resistant: []string{}},
			Genes:      genesByType[category.elementType],
			Variants:   []Variant{},
		}
		if result.Genes == nil {
			result.Genes = []Gene{}
		}
		if category.elementType == ElementAmr {
			result.Variants = variants
		}
		fragment.ElementTypeResult = append(fragment.ElementTypeResult, MethodIndex{
			Type:     category.analysis,
			Software: SoftwareAmrFinder,
			Result:   result,
		})
	}

	return fragment, nil
}

// amrfinderPhenotypes derives phenotype annotations from the Class and
// Subclass columns, only resistance hits carry them
func amrfinderPhenotypes(row map[string]string, elementType ElementType) []PhenotypeInfo {
	if elementType != ElementAmr || row["Subclass"] == "" {
		return nil
	}

	group := strings.ToLower(row["Class"])
	phenotypes := []PhenotypeInfo{}
	for _, name := range strings.Split(row["Subclass"], "/") {
		if name == "" {
			continue
		}
		phenotype := NewPhenotype(strings.ToLower(name), elementType, SoftwareAmrFinder)
		phenotype.Group = group
		phenotypes = append(phenotypes, phenotype)
	}
	return phenotypes
}

// amrfinderCategories maps the report columns onto the closed enumerations.
// An empty field defaults to a resistance hit, any other unknown value is
// rejected.
func amrfinderCategories(row map[string]string) (ElementType, ElementSubtype, error) {
	elementType := ElementAmr
	if raw := row["Element type"]; raw != "" {
		parsed, ok := amrfinderElementTypes[raw]
		if !ok {
			return "", "", &ValidationError{
				Field:   "Element type",
				Message: fmt.Sprintf("unknown category %q", raw),
			}
		}
		elementType = parsed
	}

	subtype := SubtypeAmr
	if raw := row["Element subtype"]; raw != "" {
		parsed := ElementSubtype(raw)
		if !parsed.IsValid() {
			return "", "", &ValidationError{
				Field:   "Element subtype",
				Message: fmt.Sprintf("unknown category %q", raw),
			}
		}
		subtype = parsed
	}

	return elementType, subtype, nil
}

func amrfinderGene(row map[string]string) (*Gene, error) {
	elementType, subtype, err := amrfinderCategories(row)
	if err != nil {
		return nil, err
	}

	gene := &Gene{
		GeneSymbol:     row["Gene symbol"],
		Accession:      row["Accession of closest sequence"],
		SequenceName:   row["Sequence name"],
		ElementType:    elementType,
		ElementSubtype: subtype,
		Method:         row["Method"],
		Phenotypes:     amrfinderPhenotypes(row, elementType),
	}

	if gene.RefGeneLength, err = safeInt(row["Reference sequence length"]); err != nil {
		return nil, err
	}
	if gene.AlignmentLength, err = safeInt(row["Alignment length"]); err != nil {
		return nil, err
	}
	if gene.Identity, err = safeFloat(row["% Identity to reference sequence"]); err != nil {
		return nil, err
	}
	if gene.Coverage, err = safeFloat(row["% Coverage of reference sequence"]); err != nil {
		return nil, err
	}

	return gene, nil
}

// amrfinderVariant parses a point mutation row. The gene symbol has the
// format gene_variant, like gyrA_S83L.
func amrfinderVariant(row map[string]string) (*Variant, error) {
	elementType, _, err := amrfinderCategories(row)
	if err != nil {
		return nil, err
	}

	geneSymbol := row["Gene symbol"]
	geneName, mutation, found := strings.Cut(geneSymbol, "_")
	if !found {
		return nil, fmt.Errorf("unrecognized gene symbol format for a mutation: %q", geneSymbol)
	}

	match := mutationPattern.FindStringSubmatch(mutation)
	if match == nil {
		return nil, fmt.Errorf("unrecognized mutation format: %q", mutation)
	}
	refAa, position, altAa := match[1], match[2], match[3]

	start, err := safeInt(position)
	if err != nil || start == nil {
		return nil, fmt.Errorf("invalid mutation position %q", position)
	}

	variantType, variantSubtype := classifyAaChange(refAa, altAa)
	passed := true
	variant := &Variant{
		Caller:            SoftwareAmrFinder,
		VariantType:       variantType,
		VariantSubtype:    variantSubtype,
		ReferenceSequence: geneName,
		Accession:         row["Accession of closest sequence"],
		RefAa:             refAa,
		AltAa:             altAa,
		Start:             *start,
		End:               *start + int64(len(altAa)) - 1,
		Method:            row["Method"],
		PassedQc:          &passed,
		Phenotypes:        amrfinderPhenotypes(row, elementType),
		Provenance:        []Software{SoftwareAmrFinder},
	}
	if variant.Depth, err = safeFloat(row["Depth"]); err != nil {
		return nil, err
	}

	return variant, nil
}

// classifyAaChange classifies a change on amino acid level, where the
// structural threshold is lower than on nucleotide level
func classifyAaChange(ref string, alt string) (VariantType, VariantSubType) {
	const aaSvThreshold = 18

	lengthDiff := len(ref) - len(alt)
	if lengthDiff < 0 {
		lengthDiff = -lengthDiff
	}

	variantType := TypeSnv
	switch {
	case lengthDiff >= aaSvThreshold:
		variantType = TypeSv
	case lengthDiff > 1:
		variantType = TypeIndel
	}

	switch {
	case len(ref) > len(alt):
		return variantType, SubTypeDeletion
	case len(ref) < len(alt):
		return variantType, SubTypeInsertion
	default:
		return variantType, SubTypeSubstitution
	}
}
