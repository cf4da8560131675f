package samplify_api

import (
	"fmt"
	"strconv"
	"strings"
)

// Allele calls the cgMLST caller emits instead of an allele number
var cgmlstErrorCodes = map[string]bool{
	"ALM":    true,
	"ASM":    true,
	"EXC":    true,
	"LNF":    true,
	"LOTSC":  true,
	"NIPH":   true,
	"NIPHEM": true,
	"PAMA":   true,
	"PLNF":   true,
	"PLOT3":  true,
	"PLOT5":  true,
}

// ChewbbacaParser reads the cgMLST allele calling matrix
type ChewbbacaParser struct{}

func (parser *ChewbbacaParser) Parse(path string) (*Fragment, error) {
	rows, err := readDelimited(path, '\t')
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("chewbbaca report %s is empty", path)
	}

	row := rows[0]
	if _, ok := row["FILE"]; !ok {
		return nil, fmt.Errorf("chewbbaca report %s is missing the FILE column", path)
	}
	delete(row, "FILE")

	result := TypingResultCgMlst{Alleles: map[string]interface{}{}}
	for locus, allele := range row {
		if strings.HasPrefix(allele, "INF") || strings.HasPrefix(allele, "*") {
			result.NNovel++
		}
		if cgmlstErrorCodes[allele] {
			result.NMissing++
		}
		result.Alleles[locus] = normalizeCgmlstAllele(allele)
	}

	return &Fragment{
		TypingResult: []MethodIndex{{
			Type:     AnalysisCgMlst,
			Software: SoftwareChewbbaca,
			Result:   result,
		}},
	}, nil
}

// normalizeCgmlstAllele maps an allele call onto a typed value. Novel calls
// like INF-4 yield the inferred allele number, error codes stay as strings.
func normalizeCgmlstAllele(allele string) interface{} {
	if strings.HasPrefix(allele, "INF") {
		if _, inferred, found := strings.Cut(allele, "-"); found {
			allele = inferred
		}
	}
	allele = strings.ReplaceAll(allele, "*", "")

	if number, err := strconv.ParseInt(allele, 10, 64); err == nil {
		return number
	}
	return allele
}
