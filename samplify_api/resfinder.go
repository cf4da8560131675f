package samplify_api

import (
	"fmt"
	"sort"
	"strings"
)

// Phenotypes that mark a hit as a stress factor rather than a resistance
// determinant, keyed by their subtype
var stressFactors = map[ElementSubtype][]string{
	SubtypeBiocide: {
		"formaldehyde",
		"benzylkonium chloride",
		"ethidium bromide",
		"chlorhexidine",
		"cetylpyridinium chloride",
		"hydrogen peroxide",
	},
	SubtypeHeat: {"temperature"},
}

// Antibiotic class per antibiotic name, sourced from the resistance database
var antibioticClasses = map[string]string{
	"spectinomycin":                "aminocyclitol",
	"gentamicin":                   "aminoglycoside",
	"tobramycin":                   "aminoglycoside",
	"streptomycin":                 "aminoglycoside",
	"amikacin":                     "aminoglycoside",
	"kanamycin":                    "aminoglycoside",
	"neomycin":                     "aminoglycoside",
	"capreomycin":                  "aminoglycoside",
	"netilmicin":                   "aminoglycoside",
	"apramycin":                    "aminoglycoside",
	"d-cycloserine":                "analog of d-alanine",
	"amoxicillin":                  "beta-lactam",
	"amoxicillin+clavulanic acid":  "beta-lactam",
	"ampicillin":                   "beta-lactam",
	"ampicillin+clavulanic acid":   "beta-lactam",
	"aztreonam":                    "beta-lactam",
	"cefazolin":                    "beta-lactam",
	"cefepime":                     "beta-lactam",
	"cefixime":                     "beta-lactam",
	"cefotaxime":                   "beta-lactam",
	"cefoxitin":                    "beta-lactam",
	"ceftazidime":                  "beta-lactam",
	"ceftriaxone":                  "beta-lactam",
	"cefuroxime":                   "beta-lactam",
	"ertapenem":                    "beta-lactam",
	"imipenem":                     "beta-lactam",
	"meropenem":                    "beta-lactam",
	"penicillin":                   "beta-lactam",
	"piperacillin":                 "beta-lactam",
	"piperacillin+tazobactam":      "beta-lactam",
	"temocillin":                   "beta-lactam",
	"ticarcillin":                  "beta-lactam",
	"bedaquiline":                  "diarylquinoline",
	"ciprofloxacin":                "quinolone",
	"nalidixic acid":               "quinolone",
	"fluoroquinolone":              "quinolone",
	"levofloxacin":                 "quinolone",
	"moxifloxacin":                 "quinolone",
	"ofloxacin":                    "quinolone",
	"sulfamethoxazole":             "folate pathway antagonist",
	"trimethoprim":                 "folate pathway antagonist",
	"fosfomycin":                   "fosfomycin",
	"vancomycin":                   "glycopeptide",
	"teicoplanin":                  "glycopeptide",
	"bleomycin":                    "glycopeptide",
	"clofazimine":                  "iminophenazine",
	"isoniazid":                    "isonicotinic acid hydrazide",
	"lincomycin":                   "lincosamide",
	"clindamycin":                  "lincosamide",
	"azithromycin":                 "macrolide",
	"erythromycin":                 "macrolide",
	"spiramycin":                   "macrolide",
	"telithromycin":                "macrolide",
	"metronidazole":                "nitroimidazole",
	"linezolid":                    "oxazolidinone",
	"chloramphenicol":              "amphenicol",
	"florfenicol":                  "amphenicol",
	"tiamulin":                     "pleuromutilin",
	"colistin":                     "polymyxin",
	"mupirocin":                    "pseudomonic acid",
	"rifampicin":                   "rifamycin",
	"para-aminosalicyclic acid":    "salicylic acid - anti-folate",
	"fusidic acid":                 "steroid antibacterial",
	"dalfopristin":                 "streptogramin a",
	"quinupristin+dalfopristin":    "streptogramin a",
	"quinupristin":                 "streptogramin b",
	"pyrazinamide":                 "synthetic derivative of nicotinamide",
	"tetracycline":                 "tetracycline",
	"doxycycline":                  "tetracycline",
	"minocycline":                  "tetracycline",
	"tigecycline":                  "tetracycline",
	"ethionamide":                  "thioamide",
	"ethambutol":                   "unspecified",
}

// LookupAntibioticClass resolves the antibiotic class for an antibiotic name
func LookupAntibioticClass(antibiotic string) string {
	if class, ok := antibioticClasses[strings.ToLower(antibiotic)]; ok {
		return class
	}
	return "unknown"
}

type resfinderSeqRegion struct {
	Name            string   `json:"name"`
	RefAcc          string   `json:"ref_acc"`
	RefDatabase     []string `json:"ref_database"`
	Phenotypes      []string `json:"phenotypes"`
	RefStartPos     *int64   `json:"ref_start_pos"`
	RefEndPos       *int64   `json:"ref_end_pos"`
	RefSeqLength    *int64   `json:"ref_seq_length"`
	AlignmentLength *int64   `json:"alignment_length"`
	Depth           *float64 `json:"depth"`
	Identity        *float64 `json:"identity"`
	Coverage        *float64 `json:"coverage"`
	Pmids           []string `json:"pmids"`
}

type resfinderPhenotype struct {
	Key           string `json:"key"`
	Category      string `json:"category"`
	AmrResistant  *bool  `json:"amr_resistant"`
	AmrResistance string `json:"amr_resistance"`
}

type resfinderVariation struct {
	SeqRegions   []string `json:"seq_regions"`
	Phenotypes   []string `json:"phenotypes"`
	RefCodon     string   `json:"ref_codon"`
	VarCodon     string   `json:"var_codon"`
	RefAa        string   `json:"ref_aa"`
	VarAa        string   `json:"var_aa"`
	RefStartPos  int64    `json:"ref_start_pos"`
	RefEndPos    int64    `json:"ref_end_pos"`
	Substitution bool     `json:"substitution"`
	Insertion    bool     `json:"insertion"`
	Deletion     bool     `json:"deletion"`
}

type resfinderExecution struct {
	Parameters struct {
		Method string `json:"method"`
	} `json:"parameters"`
}

type resfinderDatabase struct {
	DatabaseName    string `json:"database_name"`
	DatabaseVersion string `json:"database_version"`
}

type resfinderDocument struct {
	SeqRegions         map[string]resfinderSeqRegion `json:"seq_regions"`
	Phenotypes         map[string]resfinderPhenotype `json:"phenotypes"`
	SeqVariations      map[string]resfinderVariation `json:"seq_variations"`
	SoftwareExecutions map[string]resfinderExecution `json:"software_executions"`
	Databases          map[string]resfinderDatabase  `json:"databases"`
}

// ResFinderParser reads the resistance gene and mutation predictions. Hits
// are split into a resistance and a stress category based on the phenotypes
// they confer.
type ResFinderParser struct{}

func (parser *ResFinderParser) Parse(path string) (*Fragment, error) {
	var document resfinderDocument
	if err := readJSON(path, &document); err != nil {
		return nil, err
	}

	allStressFactors := []string{}
	for _, factors := range stressFactors {
		allStressFactors = append(allStressFactors, factors...)
	}
	allKeys := []string{}
	for key := range document.Phenotypes {
		allKeys = append(allKeys, key)
	}
	amrKeys := []string{}
	for _, key := range allKeys {
		if !containsString(allStressFactors, key) {
			amrKeys = append(amrKeys, key)
		}
	}

	fragment := &Fragment{}
	for _, category := range []struct {
		analysis    AnalysisType
		elementType ElementType
		limitTo     []string
	}{
		{AnalysisAmr, ElementAmr, amrKeys},
		{AnalysisStress, ElementStress, allStressFactors},
	} {
		variants, err := parser.parseVariants(&document, category.limitTo)
		if err != nil {
			return nil, fmt.Errorf("resfinder report %s: %w", path, err)
		}
		result := ElementTypeResult{
			Phenotypes: parser.srProfile(&document, category.limitTo),
			Genes:      parser.parseGenes(&document, category.elementType, category.limitTo),
			Variants:   variants,
		}
		fragment.ElementTypeResult = append(fragment.ElementTypeResult, MethodIndex{
			Type:     category.analysis,
			Software: SoftwareResFinder,
			Result:   result,
		})
		fragment.Variants = append(fragment.Variants, variants...)
	}

	databaseKeys := make([]string, 0, len(document.Databases))
	for key := range document.Databases {
		databaseKeys = append(databaseKeys, key)
	}
	sort.Strings(databaseKeys)
	for _, key := range databaseKeys {
		fragment.Softwares = append(fragment.Softwares, SoupVersion{
			Name:    document.Databases[key].DatabaseName,
			Version: document.Databases[key].DatabaseVersion,
			Type:    SoupDatabase,
		})
	}

	return fragment, nil
}

// srProfile lists the antibiotics the sample is susceptible or resistant to
func (parser *ResFinderParser) srProfile(document *resfinderDocument, limitTo []string) SRProfile {
	susceptible := map[string]bool{}
	resistant := map[string]bool{}

	for _, phenotype := range document.Phenotypes {
		if !containsString(limitTo, phenotype.Key) {
			continue
		}
		if phenotype.AmrResistant == nil || phenotype.AmrResistance == "" {
			continue
		}
		if *phenotype.AmrResistant {
			resistant[phenotype.AmrResistance] = true
		} else {
			susceptible[phenotype.AmrResistance] = true
		}
	}

	return SRProfile{
		Susceptible: sortedKeys(susceptible),
		Resistant:   sortedKeys(resistant),
	}
}

func sortedKeys(values map[string]bool) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (parser *ResFinderParser) parseGenes(document *resfinderDocument, elementType ElementType, limitTo []string) []Gene {
	genes := []Gene{}
	regionKeys := make([]string, 0, len(document.SeqRegions))
	for key := range document.SeqRegions {
		regionKeys = append(regionKeys, key)
	}
	sort.Strings(regionKeys)
	for _, key := range regionKeys {
		region := document.SeqRegions[key]
		// only hits against the resistance databases are gene predictions
		if len(region.RefDatabase) == 0 || !strings.HasPrefix(region.RefDatabase[0], "Res") {
			continue
		}
		if !anyIntersect(region.Phenotypes, limitTo) {
			continue
		}

		phenotypes := []PhenotypeInfo{}
		for _, name := range region.Phenotypes {
			phenotype := NewPhenotype(name, elementType, SoftwareResFinder)
			phenotype.Group = LookupAntibioticClass(name)
			phenotype.Reference = region.Pmids
			phenotypes = append(phenotypes, phenotype)
		}

		genes = append(genes, Gene{
			GeneSymbol:      region.Name,
			Accession:       region.RefAcc,
			ElementType:     elementType,
			ElementSubtype:  resfinderSubtype(region.Phenotypes, elementType),
			RefStartPos:     region.RefStartPos,
			RefEndPos:       region.RefEndPos,
			RefGeneLength:   region.RefSeqLength,
			AlignmentLength: region.AlignmentLength,
			Depth:           region.Depth,
			Identity:        region.Identity,
			Coverage:        region.Coverage,
			Phenotypes:      phenotypes,
		})
	}

	sort.SliceStable(genes, func(left, right int) bool {
		if genes[left].GeneSymbol != genes[right].GeneSymbol {
			return genes[left].GeneSymbol < genes[right].GeneSymbol
		}
		leftCov, rightCov := -1.0, -1.0
		if genes[left].Coverage != nil {
			leftCov = *genes[left].Coverage
		}
		if genes[right].Coverage != nil {
			rightCov = *genes[right].Coverage
		}
		return leftCov < rightCov
	})
	return genes
}

// resfinderSubtype assigns the stress subtype from the conferred phenotypes
func resfinderSubtype(phenotypes []string, elementType ElementType) ElementSubtype {
	if elementType == ElementStress {
		for subtype, factors := range stressFactors {
			if anyIntersect(phenotypes, factors) {
				return subtype
			}
		}
	}
	return SubtypeAmr
}

func (parser *ResFinderParser) parseVariants(document *resfinderDocument, limitTo []string) ([]Variant, error) {
	method := ""
	executionKeys := make([]string, 0, len(document.SoftwareExecutions))
	for key := range document.SoftwareExecutions {
		executionKeys = append(executionKeys, key)
	}
	sort.Strings(executionKeys)
	for _, key := range executionKeys {
		if candidate := document.SoftwareExecutions[key].Parameters.Method; candidate != "" {
			method = candidate
			break
		}
	}

	variants := []Variant{}
	variationKeys := make([]string, 0, len(document.SeqVariations))
	for key := range document.SeqVariations {
		variationKeys = append(variationKeys, key)
	}
	sort.Strings(variationKeys)
	for _, key := range variationKeys {
		variation := document.SeqVariations[key]
		if !anyIntersect(variation.Phenotypes, limitTo) {
			continue
		}
		if len(variation.SeqRegions) == 0 {
			continue
		}

		var subtype VariantSubType
		switch {
		case variation.Substitution:
			subtype = SubTypeSubstitution
		case variation.Insertion:
			subtype = SubTypeInsertion
		case variation.Deletion:
			subtype = SubTypeDeletion
		default:
			return nil, fmt.Errorf("seq variation without a known mutation type")
		}

		// region keys have the format gene;;variant;;accession
		regionKey := variation.SeqRegions[0]
		keyParts := strings.Split(regionKey, ";;")
		if len(keyParts) != 3 {
			return nil, fmt.Errorf("invalid seq region key %q", regionKey)
		}
		geneSymbol, accession := keyParts[0], keyParts[2]

		var depth *float64
		if region, ok := document.SeqRegions[regionKey]; ok {
			depth = region.Depth
		}

		phenotypes := []PhenotypeInfo{}
		for _, name := range variation.Phenotypes {
			phenotype := NewPhenotype(name, ElementAmr, SoftwareResFinder)
			phenotype.Group = LookupAntibioticClass(name)
			phenotypes = append(phenotypes, phenotype)
		}

		refNt, altNt := NtChange(variation.RefCodon, variation.VarCodon)
		passed := true
		variants = append(variants, Variant{
			Caller:            SoftwareResFinder,
			VariantType:       TypeSnv,
			VariantSubtype:    subtype,
			ReferenceSequence: geneSymbol,
			Accession:         accession,
			Start:             variation.RefStartPos,
			End:               variation.RefEndPos,
			RefNt:             refNt,
			AltNt:             altNt,
			RefAa:             variation.RefAa,
			AltAa:             variation.VarAa,
			Depth:             depth,
			Method:            method,
			PassedQc:          &passed,
			Phenotypes:        phenotypes,
			Provenance:        []Software{SoftwareResFinder},
		})
	}

	sort.SliceStable(variants, func(left, right int) bool {
		if variants[left].ReferenceSequence != variants[right].ReferenceSequence {
			return variants[left].ReferenceSequence < variants[right].ReferenceSequence
		}
		return variants[left].Start < variants[right].Start
	})
	return variants, nil
}

func anyIntersect(values []string, candidates []string) bool {
	for _, value := range values {
		if containsString(candidates, value) {
			return true
		}
	}
	return false
}
