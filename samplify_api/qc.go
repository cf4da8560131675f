package samplify_api

// Alignment QC metrics aggregated from the post-alignment QC tool output
type PostAlignQcResult struct {
	InsSize    *float64 `json:"ins_size"`
	InsSizeDev *float64 `json:"ins_size_dev"`

	NReads       int64 `json:"n_reads"`
	NMappedReads int64 `json:"n_mapped_reads"`
	NReadPairs   int64 `json:"n_read_pairs"`

	MeanCov   float64            `json:"mean_cov"`
	PctAboveX map[string]float64 `json:"pct_above_x"`

	Quartile1 float64 `json:"quartile1"`
	MedianCov float64 `json:"median_cov"`
	Quartile3 float64 `json:"quartile3"`

	// (q3-q1)/median, absent when the quartile inputs are malformed or the
	// median is not positive. Absence means "not computed", never "zero
	// variance".
	CoverageUniformity *float64 `json:"coverage_uniformity"`
}

// Assembly QC metrics
type QuastResult struct {
	TotalLength      int64    `json:"total_length"`
	ReferenceLength  *int64   `json:"reference_length"`
	LargestContig    int64    `json:"largest_contig"`
	NContigs         int64    `json:"n_contigs"`
	N50              int64    `json:"n50"`
	AssemblyGc       float64  `json:"assembly_gc"`
	ReferenceGc      *float64 `json:"reference_gc"`
	DuplicationRatio *float64 `json:"duplication_ratio"`
}

// CoverageUniformity computes the interquartile dispersion (q3-q1)/median.
// The metric is defined only when the quartiles are well ordered
// (q1 <= median <= q3) and the median is positive, otherwise nil is
// returned and the metric is reported as not computed.
func CoverageUniformity(quartile1, median, quartile3 float64) *float64 {
	if median <= 0 {
		return nil
	}
	if quartile1 > median || median > quartile3 {
		return nil
	}
	uniformity := (quartile3 - quartile1) / median
	return &uniformity
}

// Aggregate folds the computed coverage uniformity into the QC result,
// replacing whatever the upstream tool may have pre-supplied.
func (qc *PostAlignQcResult) Aggregate() {
	qc.CoverageUniformity = CoverageUniformity(qc.Quartile1, qc.MedianCov, qc.Quartile3)
}
