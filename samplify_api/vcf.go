package samplify_api

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/biogo/hts/bgzf"
	log "github.com/sirupsen/logrus"
)

// One raw record of a variant call file
type VcfRecord struct {
	Chromosome string
	Pos        int64
	ID         string
	Ref        string
	Alt        string
	Qual       string
	Filter     string
	Info       map[string]string
}

// Minimal header state needed to interpret the records
type vcfHeader struct {
	Source  string
	Samples []string
}

var headerLineRegex = regexp.MustCompile(`^##(?P<headerType>[^=]*)=(?P<content>.*)$`)

// readVcf streams a variant call file, bgzipped or plain, and returns its
// records together with the header
func readVcf(path string) (*vcfHeader, []VcfRecord, error) {
	openFile, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer openFile.Close()

	header := &vcfHeader{}
	records := []VcfRecord{}

	handle := func(line string) error {
		record, err := parseVcfLine(header, strings.TrimSpace(line))
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if record != nil {
			records = append(records, *record)
		}
		return nil
	}

	if strings.HasSuffix(path, ".gz") {
		err = readBgzipLines(openFile, handle)
	} else {
		err = readPlainLines(openFile, handle)
	}
	if err != nil {
		return nil, nil, err
	}

	return header, records, nil
}

func readBgzipLines(input *os.File, handle func(string) error) error {
	bgReader, err := bgzf.NewReader(input, 1)
	if err != nil {
		return err
	}
	defer bgReader.Close()

	for {
		line, err := readBgzipLine(bgReader)
		if len(line) > 0 {
			if handleErr := handle(string(line)); handleErr != nil {
				return handleErr
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func readBgzipLine(r *bgzf.Reader) ([]byte, error) {
	tx := r.Begin()
	var (
		data []byte
		b    byte
		err  error
	)
	for {
		b, err = r.ReadByte()
		if err != nil {
			break
		}
		data = append(data, b)
		if b == '\n' {
			break
		}
	}
	tx.End()
	return bytes.TrimSpace(data), err
}

func readPlainLines(input *os.File, handle func(string) error) error {
	scanner := bufio.NewScanner(input)
	const maxCapacity = 8 * 1000000 // 8 MB
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)
	for scanner.Scan() {
		if err := handle(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// parseVcfLine updates the header for meta lines and returns a record for
// data lines
func parseVcfLine(header *vcfHeader, line string) (*VcfRecord, error) {
	if line == "" {
		return nil, nil
	}
	if strings.HasPrefix(line, "#CHROM") {
		fields := strings.Split(line, "\t")
		if len(fields) > 9 {
			header.Samples = fields[9:]
		}
		return nil, nil
	}
	if strings.HasPrefix(line, "##") {
		matches := headerLineRegex.FindStringSubmatch(line)
		if len(matches) > 0 && matches[1] == "source" {
			header.Source = matches[2]
		}
		return nil, nil
	}

	data := strings.Split(line, "\t")
	if len(data) < 8 {
		return nil, fmt.Errorf("malformed record with %d columns", len(data))
	}

	pos, err := strconv.ParseInt(data[1], 0, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid position %q: %w", data[1], err)
	}

	record := &VcfRecord{
		Chromosome: data[0],
		Pos:        pos,
		ID:         data[2],
		Ref:        data[3],
		Alt:        data[4],
		Qual:       data[5],
		Filter:     data[6],
		Info:       map[string]string{},
	}
	for _, entry := range strings.Split(data[7], ";") {
		split := strings.SplitN(entry, "=", 2)
		if len(split) == 1 {
			record.Info[split[0]] = ""
			continue
		}
		record.Info[split[0]] = split[1]
	}

	return record, nil
}

// passedFilter interprets the FILTER column, a missing value means the
// caller did not apply any filter
func passedFilter(filter string) *bool {
	if filter == "." || filter == "" {
		return nil
	}
	passed := filter == "PASS"
	return &passed
}

// resolveCaller names the tool that produced a variant call file, either
// configured explicitly or taken from the ##source meta line. A file whose
// caller cannot be identified is rejected up front.
func resolveCaller(configured Software, header *vcfHeader, path string) (Software, error) {
	if configured != "" {
		return configured, nil
	}
	if header.Source != "" {
		return Software(strings.Fields(header.Source)[0]), nil
	}
	return "", &ValidationError{
		Field:   "caller",
		Message: fmt.Sprintf("%s has no ##source meta line and no caller is set in the sample config", path),
	}
}

// SnvVcfParser normalizes small variant calls
type SnvVcfParser struct {
	Caller Software
}

func (parser *SnvVcfParser) Parse(path string) (*Fragment, error) {
	header, records, err := readVcf(path)
	if err != nil {
		return nil, err
	}

	caller, err := resolveCaller(parser.Caller, header, path)
	if err != nil {
		return nil, err
	}

	variants := []Variant{}
	for _, record := range records {
		for _, alt := range strings.Split(record.Alt, ",") {
			variant := Variant{
				Caller:            caller,
				ReferenceSequence: record.Chromosome,
				Start:             record.Pos,
				End:               record.Pos + int64(len(record.Ref)) - 1,
				RefNt:             record.Ref,
				AltNt:             alt,
				PassedQc:          passedFilter(record.Filter),
				Provenance:        []Software{caller},
			}
			variant.VariantType, variant.VariantSubtype = ClassifyVariant(record.Ref, alt)
			if depth, err := safeFloat(record.Info["DP"]); err == nil {
				variant.Depth = depth
			} else {
				log.WithField("record", record.ID).Warn("Dropping unparseable DP field")
			}
			if frequency, err := safeFloat(record.Info["AF"]); err == nil {
				variant.Frequency = frequency
			} else {
				log.WithField("record", record.ID).Warn("Dropping unparseable AF field")
			}
			variants = append(variants, variant)
		}
	}

	return &Fragment{Variants: variants}, nil
}

// SvVcfParser normalizes structural variant calls. Breakend mates are paired
// and collapsed to one breakpoint record before normalization.
type SvVcfParser struct {
	Caller Software
}

var breakendRegex = regexp.MustCompile(`(\[|\])(?P<chr>[^:]*):(?P<pos>[0-9]*)`)

func (parser *SvVcfParser) Parse(path string) (*Fragment, error) {
	header, records, err := readVcf(path)
	if err != nil {
		return nil, err
	}

	caller, err := resolveCaller(parser.Caller, header, path)
	if err != nil {
		return nil, err
	}

	byID := map[string]VcfRecord{}
	for _, record := range records {
		byID[record.ID] = record
	}

	variants := []Variant{}
	seenMates := map[string]bool{}
	for _, record := range records {
		if seenMates[record.ID] {
			continue
		}

		var variant *Variant
		if breakendRegex.MatchString(record.Alt) {
			if mateID, ok := record.Info["MATEID"]; ok {
				seenMates[mateID] = true
			}
			variant, err = breakendToVariant(&record, caller)
		} else {
			variant, err = symbolicToVariant(&record, caller)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to normalize %s: %w", record.ID, err)
		}
		variants = append(variants, *variant)
	}

	return &Fragment{Variants: variants}, nil
}

// symbolicToVariant handles records with a symbolic or sequence alt allele
func symbolicToVariant(record *VcfRecord, caller Software) (*Variant, error) {
	end := record.Pos
	if rawEnd, ok := record.Info["END"]; ok {
		parsed, err := strconv.ParseInt(rawEnd, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid END %q: %w", rawEnd, err)
		}
		end = parsed
	}

	variant := &Variant{
		Caller:            caller,
		VariantType:       TypeSv,
		ReferenceSequence: record.Chromosome,
		Start:             record.Pos,
		End:               end,
		PassedQc:          passedFilter(record.Filter),
		Provenance:        []Software{caller},
	}

	svtype := strings.Trim(record.Info["SVTYPE"], "<>")
	if svtype == "" {
		svtype = strings.Trim(record.Alt, "<>")
	}
	switch {
	case strings.HasPrefix(svtype, "DEL"):
		variant.VariantSubtype = SubTypeDeletion
	case strings.HasPrefix(svtype, "INS"):
		variant.VariantSubtype = SubTypeInsertion
	case strings.HasPrefix(svtype, "DUP"):
		variant.VariantSubtype = SubTypeDuplication
	case strings.HasPrefix(svtype, "INV"):
		variant.VariantSubtype = SubTypeInversion
	case strings.HasPrefix(svtype, "TRA"), strings.HasPrefix(svtype, "BND"):
		variant.VariantSubtype = SubTypeTranslocation
	default:
		// a plain sequence alt, classify on the allele lengths
		variant.VariantType, variant.VariantSubtype = ClassifyVariant(record.Ref, record.Alt)
		variant.RefNt = record.Ref
		variant.AltNt = record.Alt
	}

	if depth, err := safeFloat(record.Info["DP"]); err == nil {
		variant.Depth = depth
	}

	return variant, nil
}

// breakendToVariant collapses a breakend record to one breakpoint call. The
// bracket notation encodes the strands of both ends, the strand pair and the
// mate distance decide the resolved type.
func breakendToVariant(record *VcfRecord, caller Software) (*Variant, error) {
	altGroups := breakendRegex.FindStringSubmatch(record.Alt)
	bracket := altGroups[1]
	mateChr := altGroups[2]
	matePos, err := strconv.ParseInt(altGroups[3], 0, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid mate position in %q: %w", record.Alt, err)
	}

	strand1 := "+"
	if strings.HasSuffix(record.Alt, "[") || strings.HasSuffix(record.Alt, "]") {
		strand1 = "-"
	}
	strand2 := "+"
	if bracket == "[" {
		strand2 = "-"
	}

	variant := &Variant{
		Caller:            caller,
		VariantType:       TypeSv,
		ReferenceSequence: record.Chromosome,
		Start:             record.Pos,
		End:               matePos,
		MateReference:     mateChr,
		MatePosition:      matePos,
		PassedQc:          passedFilter(record.Filter),
		Provenance:        []Software{caller},
	}

	mateDistance := math.Abs(float64(matePos - record.Pos))
	switch {
	case record.Chromosome != mateChr:
		variant.VariantSubtype = SubTypeTranslocation
		variant.End = record.Pos
	case strand1 == strand2:
		variant.VariantSubtype = SubTypeInversion
	case float64(insertedLength(record.Alt, strand1, bracket)) > mateDistance*0.5:
		variant.VariantSubtype = SubTypeInsertion
	case record.Pos < matePos && strand1 == "-" && strand2 == "+":
		variant.VariantSubtype = SubTypeDuplication
	case record.Pos > matePos && strand1 == "+" && strand2 == "-":
		variant.VariantSubtype = SubTypeDuplication
	default:
		variant.VariantSubtype = SubTypeDeletion
	}

	if variant.End < variant.Start {
		variant.Start, variant.End = variant.End, variant.Start
	}

	if depth, err := safeFloat(record.Info["DP"]); err == nil {
		variant.Depth = depth
	}

	return variant, nil
}

// insertedLength measures the inserted sequence carried in a breakend alt
func insertedLength(alt string, strand string, bracket string) int {
	if strand == "-" {
		return len(alt[strings.LastIndex(alt, bracket):])
	}
	return len(alt[:strings.LastIndex(alt, bracket)])
}
