package samplify_api

import (
	"fmt"
	"sort"
	"strings"
)

// Allele length difference above which a call counts as structural
const svLengthThreshold = 50

// ClassifyVariant derives the variant type and subtype from the reference
// and alternative alleles
func ClassifyVariant(ref string, alt string) (VariantType, VariantSubType) {
	lengthDiff := len(ref) - len(alt)
	if lengthDiff < 0 {
		lengthDiff = -lengthDiff
	}

	var variantType VariantType
	switch {
	case lengthDiff >= svLengthThreshold:
		variantType = TypeSv
	case lengthDiff > 1:
		variantType = TypeIndel
	case lengthDiff == 0 && len(ref) > 1:
		variantType = TypeMnv
	default:
		variantType = TypeSnv
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

// NtChange reduces a codon change to the nucleotides that differ, so
// TCG to TTG yields C and T
func NtChange(refCodon string, altCodon string) (string, string) {
	refNt := ""
	altNt := ""
	for position := 0; position < len(refCodon) && position < len(altCodon); position++ {
		if refCodon[position] != altCodon[position] {
			refNt += string(refCodon[position])
			altNt += string(altCodon[position])
		}
	}
	return strings.ToUpper(refNt), strings.ToUpper(altNt)
}

// Reconcile merges the variant calls of all callers into one consistent,
// annotated and deterministically ordered call set
func Reconcile(variants []Variant, targets []GeneTarget) []Variant {
	merged := dedupeVariants(variants)
	annotateTargets(merged, targets)
	sortVariants(merged)
	for position := range merged {
		merged[position].ID = position + 1
	}
	return merged
}

// dedupeKey identifies one call independent of the caller that made it
func dedupeKey(variant *Variant) string {
	return strings.Join([]string{
		variant.ReferenceSequence,
		fmt.Sprint(variant.Start),
		fmt.Sprint(variant.End),
		variant.RefNt,
		variant.AltNt,
		variant.RefAa,
		variant.AltAa,
		string(variant.VariantType),
		string(variant.VariantSubtype),
	}, "|")
}

// dedupeVariants collapses identical calls made by different callers into one
// call that records every caller in its provenance. Calls that differ in any
// allele or coordinate stay separate.
func dedupeVariants(variants []Variant) []Variant {
	merged := []Variant{}
	position := map[string]int{}

	for _, variant := range variants {
		if len(variant.Provenance) == 0 {
			variant.Provenance = []Software{variant.Caller}
		}

		key := dedupeKey(&variant)
		existing, seen := position[key]
		if !seen {
			position[key] = len(merged)
			merged = append(merged, variant)
			continue
		}

		for _, caller := range variant.Provenance {
			if !containsSoftware(merged[existing].Provenance, caller) {
				merged[existing].Provenance = append(merged[existing].Provenance, caller)
			}
		}
	}

	return merged
}

func containsSoftware(callers []Software, candidate Software) bool {
	for _, caller := range callers {
		if caller == candidate {
			return true
		}
	}
	return false
}

// annotateTargets flags structural variants that overlap a resistance target.
// Intervals are inclusive on both ends and strand is ignored.
func annotateTargets(variants []Variant, targets []GeneTarget) {
	for position := range variants {
		variant := &variants[position]
		if variant.VariantType != TypeSv {
			continue
		}
		for _, target := range targets {
			if variant.ReferenceSequence != target.ReferenceSequence {
				continue
			}
			if variant.Start > target.End || variant.End < target.Start {
				continue
			}
			if !containsString(variant.TargetGenes, target.Gene) {
				variant.TargetGenes = append(variant.TargetGenes, target.Gene)
			}
			variant.ResistanceRelevant = true
		}
		sort.Strings(variant.TargetGenes)
	}
}

func containsString(values []string, candidate string) bool {
	for _, value := range values {
		if value == candidate {
			return true
		}
	}
	return false
}

// sortVariants orders calls by reference sequence, start position and caller
// name. Calls without a reference sequence sort last.
func sortVariants(variants []Variant) {
	sort.SliceStable(variants, func(left, right int) bool {
		a, b := &variants[left], &variants[right]
		if (a.ReferenceSequence == "") != (b.ReferenceSequence == "") {
			return b.ReferenceSequence == ""
		}
		if a.ReferenceSequence != b.ReferenceSequence {
			return a.ReferenceSequence < b.ReferenceSequence
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Caller < b.Caller
	})
}

// SplitByType groups the reconciled calls by their major type for the output
// schema
func SplitByType(variants []Variant) (snv []Variant, sv []Variant, indel []Variant) {
	for _, variant := range variants {
		switch variant.VariantType {
		case TypeSv:
			sv = append(sv, variant)
		case TypeIndel:
			indel = append(indel, variant)
		default:
			snv = append(snv, variant)
		}
	}
	return snv, sv, indel
}
