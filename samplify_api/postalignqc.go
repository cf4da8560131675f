package samplify_api

import (
	"encoding/json"
	"fmt"
	"os"
)

// The raw document carries the metric names of its own schema version, the
// first version wrote the median under "median"
type postAlignQcDocument struct {
	SchemaVersion int `json:"schema_version"`

	InsSize    *float64 `json:"ins_size"`
	InsSizeDev *float64 `json:"ins_size_dev"`

	NReads       int64 `json:"n_reads"`
	NMappedReads int64 `json:"n_mapped_reads"`
	NReadPairs   int64 `json:"n_read_pairs"`

	MeanCov   float64            `json:"mean_cov"`
	PctAboveX map[string]float64 `json:"pct_above_x"`

	Quartile1 float64  `json:"quartile1"`
	Median    *float64 `json:"median"`
	MedianCov *float64 `json:"median_cov"`
	Quartile3 float64  `json:"quartile3"`
}

// PostAlignQcParser reads the alignment QC metrics and computes the coverage
// uniformity. Documents of the previous schema version are migrated on read.
type PostAlignQcParser struct{}

func (parser *PostAlignQcParser) Parse(path string) (*Fragment, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	var document postAlignQcDocument
	if err := json.Unmarshal(content, &document); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// version 0 means the field predates versioning, treat it as version 1
	version := document.SchemaVersion
	if version == 0 {
		version = 1
	}

	var medianCov float64
	switch version {
	case 1:
		if document.Median == nil {
			return nil, fmt.Errorf("postalignqc %s: schema version 1 without a median field", path)
		}
		medianCov = *document.Median
	case 2:
		if document.MedianCov == nil {
			return nil, fmt.Errorf("postalignqc %s: schema version 2 without a median_cov field", path)
		}
		medianCov = *document.MedianCov
	default:
		return nil, fmt.Errorf("postalignqc %s: unsupported schema version %d", path, version)
	}

	result := PostAlignQcResult{
		InsSize:      document.InsSize,
		InsSizeDev:   document.InsSizeDev,
		NReads:       document.NReads,
		NMappedReads: document.NMappedReads,
		NReadPairs:   document.NReadPairs,
		MeanCov:      document.MeanCov,
		PctAboveX:    document.PctAboveX,
		Quartile1:    document.Quartile1,
		MedianCov:    medianCov,
		Quartile3:    document.Quartile3,
	}
	result.Aggregate()

	return &Fragment{
		Qc: []MethodIndex{{
			Type:     AnalysisQc,
			Software: SoftwarePostAlignQc,
			Result:   result,
		}},
	}, nil
}
