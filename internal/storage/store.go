package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/san-kum/mdsim/internal/ensemble"
	"github.com/san-kum/mdsim/internal/md"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	thermoFile   = "thermo.csv"
)

var thermoHeader = []string{"step", "time", "kinetic", "potential", "temperature"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Species    string             `json:"species"`
	Particles  int                `json:"particles"`
	Ensemble   string             `json:"ensemble"`
	Integrator string             `json:"integrator"`
	Thermostat string             `json:"thermostat"`
	Target     float64            `json:"target_temperature"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	StepsTaken int                `json:"steps_taken"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a new run directory named by a time-ordered UUID and returns
// the id. A failed save leaves no run directory behind.
func (s *Store) Save(meta RunMetadata, result *ensemble.Result) (runID string, err error) {
	uid, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	meta.ID = uid.String()
	meta.Timestamp = time.Now()
	meta.StepsTaken = result.StepsTaken
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), data, 0644); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, thermoFile), result.Samples); err != nil {
		return "", err
	}
	logrus.Debugf("saved run %s to %s", meta.ID, runDir)
	return meta.ID, nil
}

func writeSamples(path string, samples []md.Sample) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return ExportCSV(f, samples)
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			logrus.Debugf("skipping %s: %v", entry.Name(), err)
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

// Resolve expands a unique id prefix to the full run id.
func (s *Store) Resolve(prefix string) (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	match := ""
	for _, r := range runs {
		if r.ID == prefix {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("run prefix %q is ambiguous", prefix)
			}
			match = r.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	}
	return match, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]md.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, thermoFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}

// ExportCSV writes samples with the thermo.csv header.
func ExportCSV(w io.Writer, samples []md.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(thermoHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Step),
			formatFloat(s.Time),
			formatFloat(s.Kinetic),
			formatFloat(s.Potential),
			formatFloat(s.Temperature),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the output of ExportCSV.
func ReadCSV(r io.Reader) ([]md.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(thermoHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []md.Sample{}, nil
	}

	samples := make([]md.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		step, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		vals := make([]float64, 4)
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(record[j+1], 64); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
		}
		samples = append(samples, md.Sample{
			Step:        step,
			Time:        vals[0],
			Kinetic:     vals[1],
			Potential:   vals[2],
			Temperature: vals[3],
		})
	}
	return samples, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
