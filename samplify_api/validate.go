package samplify_api

import "fmt"

// ValidationError describes a single schema violation found while checking a
// result before serialization.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

const (
	minSampleIDLength = 3
	maxSampleIDLength = 100
)

// Validate checks the assembled result against the output schema. The first
// violation found is returned, a nil error means the result is safe to
// serialize.
func (result *PipelineResult) Validate() error {
	if result.SchemaVersion != SchemaVersion {
		return &ValidationError{
			Field:   "schema_version",
			Message: fmt.Sprintf("expected %d, got %d", SchemaVersion, result.SchemaVersion),
		}
	}
	if len(result.SampleID) < minSampleIDLength || len(result.SampleID) > maxSampleIDLength {
		return &ValidationError{
			Field: "sample_id",
			Message: fmt.Sprintf(
				"length must be between %d and %d characters, got %d",
				minSampleIDLength, maxSampleIDLength, len(result.SampleID),
			),
		}
	}
	if result.Sequencing.RunID == "" {
		return &ValidationError{Field: "sequencing.run_id", Message: "must not be empty"}
	}
	if result.Pipeline.Pipeline == "" {
		return &ValidationError{Field: "pipeline.pipeline", Message: "must not be empty"}
	}
	for _, index := range [][]MethodIndex{
		result.Qc,
		result.SpeciesPrediction,
		result.TypingResult,
		result.ElementTypeResult,
	} {
		for _, method := range index {
			if method.Software == "" {
				return &ValidationError{Field: "software", Message: "result entry without a software name"}
			}
			if !method.Type.IsValid() {
				return &ValidationError{
					Field:   "type",
					Message: fmt.Sprintf("unknown analysis type %q", method.Type),
				}
			}
		}
	}
	for _, group := range [][]Variant{result.SnvVariants, result.SvVariants, result.IndelVariants} {
		for _, variant := range group {
			if err := variant.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Validate checks one variant call against the canonical shape
func (variant *Variant) Validate() error {
	if !variant.VariantType.IsValid() {
		return &ValidationError{
			Field:   fmt.Sprintf("variant %d", variant.ID),
			Message: fmt.Sprintf("unknown variant type %q", variant.VariantType),
		}
	}
	if !variant.VariantSubtype.IsValid() {
		return &ValidationError{
			Field:   fmt.Sprintf("variant %d", variant.ID),
			Message: fmt.Sprintf("unknown variant subtype %q", variant.VariantSubtype),
		}
	}
	if variant.Caller == "" {
		return &ValidationError{
			Field:   fmt.Sprintf("variant %d", variant.ID),
			Message: "caller must not be empty",
		}
	}
	if variant.Start < 0 || variant.End < variant.Start {
		return &ValidationError{
			Field:   fmt.Sprintf("variant %d", variant.ID),
			Message: fmt.Sprintf("invalid coordinates %d-%d", variant.Start, variant.End),
		}
	}
	// non-structural calls must report what changed, on nucleotide or
	// amino-acid level
	if variant.VariantType != TypeSv &&
		variant.RefNt == "" && variant.AltNt == "" &&
		variant.RefAa == "" && variant.AltAa == "" {
		return &ValidationError{
			Field:   fmt.Sprintf("variant %d", variant.ID),
			Message: "no reference or alternative allele reported",
		}
	}
	return nil
}
