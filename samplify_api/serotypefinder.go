package samplify_api

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

type serotypeHit struct {
	Gene           string   `json:"gene"`
	Serotype       string   `json:"serotype"`
	Accession      string   `json:"accession"`
	PositionInRef  string   `json:"position_in_ref"`
	TemplateLength *int64   `json:"template_length"`
	HspLength      *int64   `json:"HSP_length"`
	Identity       *float64 `json:"identity"`
	Coverage       *float64 `json:"coverage"`
}

type serotypeDocument struct {
	SerotypeFinder struct {
		// Either a map of hits or a bare string when nothing was found
		Results map[string]json.RawMessage `json:"results"`
	} `json:"serotypefinder"`
}

// SerotypeFinderParser reads the O and H antigen predictions. An empty or
// string valued result block means no antigen was detected, which is a valid
// negative prediction and not an error.
type SerotypeFinderParser struct{}

var serotypeAnalyses = map[AnalysisType]string{
	AnalysisOType: "O_type",
	AnalysisHType: "H_type",
}

func (parser *SerotypeFinderParser) Parse(path string) (*Fragment, error) {
	var document serotypeDocument
	if err := readJSON(path, &document); err != nil {
		return nil, err
	}
	if document.SerotypeFinder.Results == nil {
		return nil, fmt.Errorf("serotypefinder report %s is missing the results block", path)
	}

	indices := []MethodIndex{}
	for _, analysis := range []AnalysisType{AnalysisOType, AnalysisHType} {
		raw, ok := document.SerotypeFinder.Results[serotypeAnalyses[analysis]]
		if !ok {
			continue
		}

		var hits map[string]serotypeHit
		if err := json.Unmarshal(raw, &hits); err != nil || len(hits) == 0 {
			// no hit, report the absent prediction explicitly
			indices = append(indices, MethodIndex{
				Type:     analysis,
				Software: SoftwareSerotypeFinder,
				Result:   nil,
			})
			continue
		}

		best := pickBestHit(hits)
		gene, err := serotypeHitToGene(best)
		if err != nil {
			return nil, fmt.Errorf("serotypefinder report %s: %w", path, err)
		}
		indices = append(indices, MethodIndex{
			Type:     analysis,
			Software: SoftwareSerotypeFinder,
			Result:   gene,
		})
	}

	return &Fragment{TypingResult: indices}, nil
}

// pickBestHit ranks hits by identity, then coverage. Ties keep the first hit
// in key order so repeated parses resolve them the same way.
func pickBestHit(hits map[string]serotypeHit) serotypeHit {
	keys := make([]string, 0, len(hits))
	for key := range hits {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var best serotypeHit
	bestScore := [2]float64{-1, -1}
	for _, key := range keys {
		hit := hits[key]
		score := [2]float64{}
		if hit.Identity != nil {
			score[0] = *hit.Identity
		}
		if hit.Coverage != nil {
			score[1] = *hit.Coverage
		}
		if score[0] > bestScore[0] || (score[0] == bestScore[0] && score[1] > bestScore[1]) {
			best = hit
			bestScore = score
		}
	}
	return best
}

func serotypeHitToGene(hit serotypeHit) (*Gene, error) {
	gene := &Gene{
		GeneSymbol:      hit.Gene,
		SequenceName:    hit.Serotype,
		ElementType:     ElementAntigen,
		ElementSubtype:  SubtypeAntigen,
		RefGeneLength:   hit.TemplateLength,
		AlignmentLength: hit.HspLength,
		Identity:        hit.Identity,
		Coverage:        hit.Coverage,
	}
	if !isNullish(hit.Accession) {
		gene.Accession = hit.Accession
	}

	// the reference position is reported as "start..end"
	start, end, found := strings.Cut(hit.PositionInRef, "..")
	if !found {
		return nil, fmt.Errorf("invalid position_in_ref %q", hit.PositionInRef)
	}
	var err error
	if gene.RefStartPos, err = safeInt(start); err != nil {
		return nil, err
	}
	if gene.RefEndPos, err = safeInt(end); err != nil {
		return nil, err
	}

	return gene, nil
}
