package samplify_api

import "fmt"

// BrackenParser reads the re-estimated species abundances
type BrackenParser struct {
	// Predictions below this fraction of total reads are dropped, zero
	// keeps everything
	Cutoff float64
}

func (parser *BrackenParser) Parse(path string) (*Fragment, error) {
	rows, err := readDelimited(path, '\t')
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Fragment{
			SpeciesPrediction: []MethodIndex{{
				Type:     AnalysisSpecies,
				Software: SoftwareBracken,
				Result:   []SppPrediction{},
			}},
		}, nil
	}

	for _, required := range []string{"name", "taxonomy_id", "fraction_total_reads"} {
		if _, ok := rows[0][required]; !ok {
			return nil, fmt.Errorf("bracken report %s is missing column %q", path, required)
		}
	}

	predictions := []SppPrediction{}
	for _, row := range rows {
		fraction, err := safeFloat(row["fraction_total_reads"])
		if err != nil || fraction == nil {
			return nil, fmt.Errorf("bracken report %s has an invalid fraction_total_reads %q", path, row["fraction_total_reads"])
		}
		if parser.Cutoff > 0 && *fraction < parser.Cutoff {
			continue
		}

		prediction := SppPrediction{
			ScientificName:     row["name"],
			TaxonomyLevel:      row["taxonomy_lvl"],
			FractionTotalReads: fraction,
		}
		if prediction.TaxonomyID, err = safeInt(row["taxonomy_id"]); err != nil {
			return nil, err
		}
		if prediction.KrakenAssignedReads, err = safeInt(row["kraken_assigned_reads"]); err != nil {
			return nil, err
		}
		if prediction.AddedReads, err = safeInt(row["added_reads"]); err != nil {
			return nil, err
		}
		predictions = append(predictions, prediction)
	}

	return &Fragment{
		SpeciesPrediction: []MethodIndex{{
			Type:     AnalysisSpecies,
			Software: SoftwareBracken,
			Result:   predictions,
		}},
	}, nil
}
