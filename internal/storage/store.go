package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

// ErrRowSize is returned when a state buffer does not have len(Species)+2
// entries.
var ErrRowSize = errors.New("storage: state buffer length does not match species count")

// ErrSpeciesTable is returned when weights or charges do not match the
// species list.
var ErrSpeciesTable = errors.New("storage: species table length mismatch")

// ErrInvalidMixture is returned when a mixture name cannot be used as a
// checkpoint directory name.
var ErrInvalidMixture = errors.New("storage: mixture name is not a valid directory name")

// Store keeps checkpoints as one directory each under baseDir.
type Store struct {
	baseDir string
	log     logr.Logger
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, log: logr.Discard()}
}

func (s *Store) WithLogger(log logr.Logger) *Store {
	s.log = log
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Checkpoint is a series of state buffers for one mixture, each laid out
// as [T, rho, Y_0, ..., Y_{N-1}] in Species order.
type Checkpoint struct {
	Mixture          string
	Species          []string
	MolecularWeights []float64
	Charges          []float64
	States           [][]float64
}

type Metadata struct {
	ID               string    `json:"id"`
	Mixture          string    `json:"mixture"`
	Species          []string  `json:"species"`
	MolecularWeights []float64 `json:"molecular_weights"`
	Charges          []float64 `json:"charges,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
	Snapshots        int       `json:"snapshots"`
	StateSize        int       `json:"state_size"`
}

func (s *Store) Save(cp Checkpoint) (string, error) {
	if strings.ContainsAny(cp.Mixture, `/\`) || cp.Mixture == "." || cp.Mixture == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidMixture, cp.Mixture)
	}
	n := len(cp.Species)
	if len(cp.MolecularWeights) != n || (cp.Charges != nil && len(cp.Charges) != n) {
		return "", fmt.Errorf("%w: %d species, %d weights, %d charges",
			ErrSpeciesTable, n, len(cp.MolecularWeights), len(cp.Charges))
	}
	width := n + 2
	for i, row := range cp.States {
		if len(row) != width {
			return "", fmt.Errorf("%w: row %d has %d values, want %d", ErrRowSize, i, len(row), width)
		}
	}

	now := time.Now()
	id := fmt.Sprintf("%s_%d", cp.Mixture, now.UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := Metadata{
		ID:               id,
		Mixture:          cp.Mixture,
		Species:          cp.Species,
		MolecularWeights: cp.MolecularWeights,
		Charges:          cp.Charges,
		Timestamp:        now,
		Snapshots:        len(cp.States),
		StateSize:        width,
	}
	if err := writeJSON(filepath.Join(dir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(dir, statesFile), cp.Species, cp.States); err != nil {
		return "", err
	}

	s.log.V(1).Info("saved checkpoint", "id", id, "snapshots", len(cp.States))
	return id, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Header returns the CSV column names for a species list.
func Header(species []string) []string {
	header := make([]string, 0, len(species)+2)
	header = append(header, "T", "rho")
	for _, name := range species {
		header = append(header, "Y_"+name)
	}
	return header
}

func writeStates(path string, species []string, states [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header(species)); err != nil {
		return err
	}
	for _, row := range states {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns all readable checkpoints, oldest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	out := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.V(1).Info("skipping unreadable checkpoint", "dir", entry.Name(), "error", err.Error())
			continue
		}
		out = append(out, *meta)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (s *Store) Load(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", id, err)
	}
	return &meta, nil
}

// LoadStates returns the stored buffers in save order. Values are written
// with full precision, so they restore bit for bit.
func (s *Store) LoadStates(id string) ([][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, statesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, nil
	}

	states := make([][]float64, 0, len(records)-1)
	for i, rec := range records[1:] {
		row := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s row %d col %d: %w", id, i+1, j, err)
			}
			row[j] = v
		}
		states = append(states, row)
	}
	return states, nil
}
