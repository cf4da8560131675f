package samplify_api

// Phenotype information attached to a gene or variant prediction. The name is
// always populated, tools that omit it get the normalized default.
type PhenotypeInfo struct {
	Name             string         `json:"name"`
	Group            string         `json:"group,omitempty"`
	Type             ElementType    `json:"type"`
	ResistanceLevel  string         `json:"resistance_level,omitempty"`
	AnnotationType   AnnotationType `json:"annotation_type"`
	AnnotationAuthor string         `json:"annotation_author,omitempty"`
	Reference        []string       `json:"reference,omitempty"`
	Note             string         `json:"note,omitempty"`
	Source           string         `json:"source,omitempty"`
}

// The normalized default used when a tool reports a hit without naming the
// phenotype it confers.
const UnspecifiedPhenotype = "unspecified"

// NewPhenotype builds a tool-annotated phenotype, falling back to the
// normalized default name when the tool omitted it.
func NewPhenotype(name string, elementType ElementType, author Software) PhenotypeInfo {
	if name == "" {
		name = UnspecifiedPhenotype
	}
	return PhenotypeInfo{
		Name:             name,
		Type:             elementType,
		AnnotationType:   AnnotationTool,
		AnnotationAuthor: string(author),
	}
}

// A detected gene with its classification and alignment statistics. One
// struct covers resistance, virulence and serotype genes, the optional
// fields are nil when the tool does not report them.
type Gene struct {
	GeneSymbol   string `json:"gene_symbol"`
	Accession    string `json:"accession,omitempty"`
	SequenceName string `json:"sequence_name,omitempty"`

	// classification
	ElementType    ElementType    `json:"element_type"`
	ElementSubtype ElementSubtype `json:"element_subtype"`

	// position in the reference
	RefStartPos     *int64 `json:"ref_start_pos,omitempty"`
	RefEndPos       *int64 `json:"ref_end_pos,omitempty"`
	RefGeneLength   *int64 `json:"ref_gene_length,omitempty"`
	AlignmentLength *int64 `json:"alignment_length,omitempty"`

	// prediction
	Method   string   `json:"method,omitempty"`
	Depth    *float64 `json:"depth,omitempty"`
	Identity *float64 `json:"identity,omitempty"`
	Coverage *float64 `json:"coverage,omitempty"`

	Phenotypes []PhenotypeInfo `json:"phenotypes,omitempty"`
}

// Antibiotics the sample is predicted susceptible or resistant to
type SRProfile struct {
	Susceptible []string `json:"susceptible"`
	Resistant   []string `json:"resistant"`
}

// Result of one detection category from one tool. The calls are always
// present, a tool reporting zero findings yields empty collections.
type ElementTypeResult struct {
	Phenotypes SRProfile `json:"phenotypes"`
	Genes      []Gene    `json:"genes"`
	Variants   []Variant `json:"variants"`
}

// A variant call normalized onto the canonical shape. SNV and indel calls
// carry ref/alt alleles, structural calls carry a breakpoint pair through
// start/end and the mate fields.
type Variant struct {
	ID             int            `json:"id"`
	Caller         Software       `json:"caller"`
	VariantType    VariantType    `json:"variant_type"`
	VariantSubtype VariantSubType `json:"variant_subtype"`

	// location, the reference sequence may be absent
	ReferenceSequence string `json:"reference_sequence,omitempty"`
	Accession         string `json:"accession,omitempty"`
	Start             int64  `json:"start"`
	End               int64  `json:"end"`
	RefNt             string `json:"ref_nt,omitempty"`
	AltNt             string `json:"alt_nt,omitempty"`
	RefAa             string `json:"ref_aa,omitempty"`
	AltAa             string `json:"alt_aa,omitempty"`

	// breakpoint mate of a structural variant
	MateReference string `json:"mate_reference,omitempty"`
	MatePosition  int64  `json:"mate_position,omitempty"`

	// resistance-target annotation, computed by the reconciliation engine
	TargetGenes        []string `json:"target_genes,omitempty"`
	ResistanceRelevant bool     `json:"resistance_relevant"`

	Phenotypes []PhenotypeInfo `json:"phenotypes,omitempty"`

	// prediction info
	Depth      *float64 `json:"depth,omitempty"`
	Frequency  *float64 `json:"frequency,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Method     string   `json:"method,omitempty"`
	PassedQc   *bool    `json:"passed_qc"`

	// every caller that reported this identical call
	Provenance []Software `json:"provenance"`
}
