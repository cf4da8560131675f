package samplify_api

import "fmt"

// QuastParser reads the transposed assembly QC report
type QuastParser struct{}

func (parser *QuastParser) Parse(path string) (*Fragment, error) {
	rows, err := readDelimited(path, '\t')
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Fragment{}, nil
	}

	row := rows[0]
	for _, required := range []string{"Total length", "Largest contig", "# contigs", "N50", "GC (%)"} {
		if _, ok := row[required]; !ok {
			return nil, fmt.Errorf("quast report %s is missing column %q", path, required)
		}
	}

	result := QuastResult{}
	if value, err := safeInt(row["Total length"]); err != nil {
		return nil, err
	} else if value != nil {
		result.TotalLength = *value
	}
	if result.ReferenceLength, err = safeInt(row["Reference length"]); err != nil {
		return nil, err
	}
	if value, err := safeInt(row["Largest contig"]); err != nil {
		return nil, err
	} else if value != nil {
		result.LargestContig = *value
	}
	if value, err := safeInt(row["# contigs"]); err != nil {
		return nil, err
	} else if value != nil {
		result.NContigs = *value
	}
	if value, err := safeInt(row["N50"]); err != nil {
		return nil, err
	} else if value != nil {
		result.N50 = *value
	}
	if value, err := safeFloat(row["GC (%)"]); err != nil {
		return nil, err
	} else if value != nil {
		result.AssemblyGc = *value
	}
	if result.ReferenceGc, err = safeFloat(row["Reference GC (%)"]); err != nil {
		return nil, err
	}
	if result.DuplicationRatio, err = safeFloat(row["Duplication ratio"]); err != nil {
		return nil, err
	}

	return &Fragment{
		Qc: []MethodIndex{{
			Type:     AnalysisQc,
			Software: SoftwareQuast,
			Result:   result,
		}},
	}, nil
}
