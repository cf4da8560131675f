package samplify_api

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

// Platform names are written inconsistently by the run folder generators,
// normalize them to their vendor capitalization
func normalizePlatform(platform string) string {
	return cases.Title(language.English).String(strings.ToLower(platform))
}

// Raw shape of the run information file emitted by the workflow engine.
// analysis_profile is kept raw because older runs wrote a bare string where
// newer ones write a list.
type runInfoDocument struct {
	Pipeline           string          `json:"pipeline"`
	Version            string          `json:"version"`
	Commit             string          `json:"commit"`
	AnalysisProfile    json.RawMessage `json:"analysis_profile"`
	Assay              string          `json:"assay"`
	ReleaseLifeCycle   string          `json:"release_life_cycle"`
	WorkflowName       string          `json:"workflow_name"`
	Command            string          `json:"command"`
	ConfigurationFiles []string        `json:"configuration_files"`
	Date               string          `json:"date"`

	SequencingRun      string `json:"sequencing_run"`
	SequencingPlatform string `json:"sequencing_platform"`
	SequencingType     string `json:"sequencing_type"`
	Instrument         string `json:"instrument"`
}

// ParseRunInfo reads the run information file and maps it onto the
// sequencing and pipeline metadata of the result
func ParseRunInfo(path string) (*SequencingInfo, *PipelineInfo, error) {
	var document runInfoDocument
	if err := readJSON(path, &document); err != nil {
		return nil, nil, err
	}

	profile, err := normalizeAnalysisProfile(document.AnalysisProfile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	sequencing := &SequencingInfo{
		RunID:      document.SequencingRun,
		Platform:   normalizePlatform(document.SequencingPlatform),
		Instrument: document.Instrument,
		Method:     document.SequencingType,
		Date:       parseDateFromRunID(document.SequencingRun),
	}

	pipeline := &PipelineInfo{
		Pipeline:           document.Pipeline,
		Version:            document.Version,
		Commit:             document.Commit,
		AnalysisProfile:    profile,
		Assay:              document.Assay,
		ReleaseLifeCycle:   document.ReleaseLifeCycle,
		WorkflowName:       document.WorkflowName,
		Command:            document.Command,
		ConfigurationFiles: document.ConfigurationFiles,
		Softwares:          []SoupVersion{},
	}
	if pipeline.ConfigurationFiles == nil {
		pipeline.ConfigurationFiles = []string{}
	}
	if document.Date != "" {
		parsed, err := time.Parse(time.RFC3339, document.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid pipeline date %q: %w", document.Date, err)
		}
		pipeline.Date = &parsed
	}

	return sequencing, pipeline, nil
}

// normalizeAnalysisProfile promotes a bare scalar profile to a list
func normalizeAnalysisProfile(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}

	var profiles []string
	if err := json.Unmarshal(raw, &profiles); err == nil {
		return profiles, nil
	}

	var profile string
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("invalid analysis_profile %s", string(raw))
	}
	return []string{profile}, nil
}

// parseDateFromRunID extracts the sequencing date from the run id, which by
// convention starts with the date as YYMMDD followed by an underscore. Run
// ids without the convention yield no date.
func parseDateFromRunID(runID string) *time.Time {
	prefix, _, found := strings.Cut(runID, "_")
	if !found {
		return nil
	}
	date, err := time.Parse("060102", prefix)
	if err != nil {
		return nil
	}
	return &date
}

// ReadSoftwareVersions flattens the per-process version files of the
// workflow engine into one sorted tool version list
func ReadSoftwareVersions(paths []string) ([]SoupVersion, error) {
	seen := map[string]bool{}
	versions := []SoupVersion{}

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}

		var document map[string]map[string]string
		if err := yaml.Unmarshal(content, &document); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		for _, tools := range document {
			for name, version := range tools {
				key := name + "=" + version
				if seen[key] {
					continue
				}
				seen[key] = true
				versions = append(versions, SoupVersion{
					Name:    name,
					Version: version,
					Type:    SoupSoftware,
				})
			}
		}
	}

	sort.Slice(versions, func(left, right int) bool {
		if versions[left].Name != versions[right].Name {
			return versions[left].Name < versions[right].Name
		}
		return versions[left].Version < versions[right].Version
	})

	return versions, nil
}
