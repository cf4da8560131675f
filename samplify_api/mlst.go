package samplify_api

import (
	"fmt"
	"strconv"
	"strings"
)

type mlstDocument struct {
	Scheme       string            `json:"scheme"`
	SequenceType string            `json:"sequence_type"`
	Alleles      map[string]string `json:"alleles"`
}

// MlstParser reads the seven gene typing result, emitted as a single element
// json array
type MlstParser struct{}

func (parser *MlstParser) Parse(path string) (*Fragment, error) {
	var documents []mlstDocument
	if err := readJSON(path, &documents); err != nil {
		return nil, err
	}
	if len(documents) != 1 {
		return nil, fmt.Errorf("mlst report %s must contain exactly one prediction, got %d", path, len(documents))
	}
	document := documents[0]
	if document.Alleles == nil {
		return nil, fmt.Errorf("mlst report %s has no typing result", path)
	}

	result := TypingResultMlst{
		Scheme:  document.Scheme,
		Alleles: map[string]interface{}{},
	}

	var err error
	if result.SequenceType, err = safeInt(document.SequenceType); err != nil {
		result.SequenceType = nil
	}

	for gene, allele := range document.Alleles {
		call, err := normalizeAlleleCall(allele)
		if err != nil {
			return nil, fmt.Errorf("mlst report %s: %w", path, err)
		}
		result.Alleles[gene] = call
	}

	return &Fragment{
		TypingResult: []MethodIndex{{
			Type:     AnalysisMlst,
			Software: SoftwareMlst,
			Result:   result,
		}},
	}, nil
}

// normalizeAlleleCall maps the allele call notation onto a typed value.
// A plain number is the allele, "?" marks a partial match, "~" a novel
// allele and "-" a missing locus.
func normalizeAlleleCall(allele string) (interface{}, error) {
	switch {
	case isAllDigits(allele):
		return strconv.ParseInt(allele, 10, 64)
	case strings.Contains(allele, ","):
		return strings.Split(allele, ","), nil
	case strings.Contains(allele, "?"):
		return "partial", nil
	case strings.Contains(allele, "~"):
		return "novel", nil
	case allele == "-":
		return nil, nil
	default:
		return nil, fmt.Errorf("allele call %q has an unexpected format", allele)
	}
}

func isAllDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, letter := range value {
		if letter < '0' || letter > '9' {
			return false
		}
	}
	return true
}
