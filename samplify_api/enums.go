package samplify_api

// The schema version of the serialized PipelineResult
const SchemaVersion = 2

// The detection category of a gene or element prediction
type ElementType string

const (
	ElementAmr       ElementType = "AMR"
	ElementStress    ElementType = "STRESS"
	ElementVirulence ElementType = "VIRULENCE"
	ElementAntigen   ElementType = "ANTIGEN"
)

// IsValid reports if the element type is part of the closed enumeration
func (e ElementType) IsValid() bool {
	switch e {
	case ElementAmr, ElementStress, ElementVirulence, ElementAntigen:
		return true
	}
	return false
}

// Further functional categorization of an element prediction
type ElementSubtype string

const (
	SubtypeAmr     ElementSubtype = "AMR"
	SubtypePoint   ElementSubtype = "POINT"
	SubtypeAcid    ElementSubtype = "ACID"
	SubtypeBiocide ElementSubtype = "BIOCIDE"
	SubtypeMetal   ElementSubtype = "METAL"
	SubtypeHeat    ElementSubtype = "HEAT"
	SubtypeVir     ElementSubtype = "VIRULENCE"
	SubtypeToxin   ElementSubtype = "TOXIN"
	SubtypeAntigen ElementSubtype = "ANTIGEN"
)

// IsValid reports if the element subtype is part of the closed enumeration
func (e ElementSubtype) IsValid() bool {
	switch e {
	case SubtypeAmr, SubtypePoint, SubtypeAcid, SubtypeBiocide,
		SubtypeMetal, SubtypeHeat, SubtypeVir, SubtypeToxin, SubtypeAntigen:
		return true
	}
	return false
}

// The major category of a variant
type VariantType string

const (
	TypeSnv   VariantType = "SNV"
	TypeMnv   VariantType = "MNV"
	TypeSv    VariantType = "SV"
	TypeIndel VariantType = "INDEL"
	TypeStr   VariantType = "STR"
)

// IsValid reports if the variant type is part of the closed enumeration
func (t VariantType) IsValid() bool {
	switch t {
	case TypeSnv, TypeMnv, TypeSv, TypeIndel, TypeStr:
		return true
	}
	return false
}

// The subtype of a variant
type VariantSubType string

const (
	SubTypeInsertion     VariantSubType = "INS"
	SubTypeDeletion      VariantSubType = "DEL"
	SubTypeSubstitution  VariantSubType = "SUB"
	SubTypeTransition    VariantSubType = "TS"
	SubTypeTransversion  VariantSubType = "TV"
	SubTypeInversion     VariantSubType = "INV"
	SubTypeDuplication   VariantSubType = "DUP"
	SubTypeTranslocation VariantSubType = "BND"
)

// IsValid reports if the variant subtype is part of the closed enumeration
func (t VariantSubType) IsValid() bool {
	switch t {
	case SubTypeInsertion, SubTypeDeletion, SubTypeSubstitution,
		SubTypeTransition, SubTypeTransversion, SubTypeInversion,
		SubTypeDuplication, SubTypeTranslocation:
		return true
	}
	return false
}

// How an annotation was made
type AnnotationType string

const (
	AnnotationTool AnnotationType = "tool"
	AnnotationUser AnnotationType = "user"
)

// Type of software of unknown provenance
type SoupType string

const (
	SoupDatabase SoupType = "database"
	SoupSoftware SoupType = "software"
)

// The analysis category a parser fragment is reported under
type AnalysisType string

const (
	AnalysisQc        AnalysisType = "qc"
	AnalysisSpecies   AnalysisType = "species"
	AnalysisMlst      AnalysisType = "mlst"
	AnalysisCgMlst    AnalysisType = "cgmlst"
	AnalysisLineage   AnalysisType = "lineage"
	AnalysisAmr       AnalysisType = "AMR"
	AnalysisStress    AnalysisType = "STRESS"
	AnalysisVirulence AnalysisType = "VIRULENCE"
	AnalysisOType     AnalysisType = "O_type"
	AnalysisHType     AnalysisType = "H_type"
	AnalysisStx       AnalysisType = "stx"
	AnalysisVariants  AnalysisType = "variants"
)

// IsValid reports if the analysis type is part of the closed enumeration
func (t AnalysisType) IsValid() bool {
	switch t {
	case AnalysisQc, AnalysisSpecies, AnalysisMlst, AnalysisCgMlst,
		AnalysisLineage, AnalysisAmr, AnalysisStress, AnalysisVirulence,
		AnalysisOType, AnalysisHType, AnalysisStx, AnalysisVariants:
		return true
	}
	return false
}

// Names of the supported upstream tools
type Software string

const (
	SoftwareQuast           Software = "quast"
	SoftwarePostAlignQc     Software = "postalignqc"
	SoftwareBracken         Software = "bracken"
	SoftwareMlst            Software = "mlst"
	SoftwareChewbbaca       Software = "chewbbaca"
	SoftwareSerotypeFinder  Software = "serotypefinder"
	SoftwareResFinder       Software = "resfinder"
	SoftwareAmrFinder       Software = "amrfinderplus"
	SoftwareVirulenceFinder Software = "virulencefinder"
	SoftwareMykrobe         Software = "mykrobe"
	SoftwareTbProfiler      Software = "tbprofiler"
)
