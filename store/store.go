// Package store keeps fitted models so that they can be used to predict after the run that fit
// them has finished.
package store

import (
	"bytes"
	"encoding/gob"
	"sort"
	"sync"
	"time"

	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when no model is stored under a run id.
var ErrNotFound = errors.New("model not found")

// Model is everything needed to rebuild a fitted pipeline model.
type Model struct {
	RunID     string
	CreatedAt time.Time

	StripHTML         bool
	Transliterate     bool
	StopWordsLanguage string
	Stem              bool
	MinTokenLength    int

	NumFeatures int
	Binary      bool
	NormP       float64
	IDF         []float64
	Documents   int

	RegParam        float64
	ElasticNetParam float64
	Coefficients    []float64
	Intercept       float64
	Iterations      int
	Converged       bool
}

// ModelStore saves and loads models by run id. Implementations are safe for concurrent use.
type ModelStore interface {
	Get(runID string) (Model, error)
	Put(runID string, model Model) error
	Keys() ([]string, error)
}

// BlockTransform determines how diskv should partition folders.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// Encode encodes a model to bytes.
func Encode(model Model) ([]byte, error) {
	var buff bytes.Buffer
	enc := gob.NewEncoder(&buff)
	err := enc.Encode(model)
	if err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// Decode decodes a model from bytes.
func Decode(b []byte) (Model, error) {
	var m Model
	err := gob.NewDecoder(bytes.NewReader(b)).Decode(&m)
	return m, err
}

type mapModelStore struct {
	mu sync.RWMutex
	m  map[string]Model
}

func (s *mapModelStore) Get(runID string) (Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.m[runID]; ok {
		return m, nil
	}
	return Model{}, errors.Wrap(ErrNotFound, runID)
}

func (s *mapModelStore) Put(runID string, model Model) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[runID] = model
	return nil
}

func (s *mapModelStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// NewMapModelStore creates a model store out of a regular go map.
func NewMapModelStore() ModelStore {
	return &mapModelStore{m: make(map[string]Model)}
}

type diskvModelStore struct {
	*diskv.Diskv
}

func (d diskvModelStore) Get(runID string) (Model, error) {
	if !d.Has(runID) {
		return Model{}, errors.Wrap(ErrNotFound, runID)
	}
	b, err := d.Read(runID)
	if err != nil {
		return Model{}, errors.Wrapf(err, "reading model %s", runID)
	}
	m, err := Decode(b)
	if err != nil {
		return Model{}, errors.Wrapf(err, "decoding model %s", runID)
	}
	return m, nil
}

func (d diskvModelStore) Put(runID string, model Model) error {
	b, err := Encode(model)
	if err != nil {
		return errors.Wrapf(err, "encoding model %s", runID)
	}
	return d.Write(runID, b)
}

func (d diskvModelStore) Keys() ([]string, error) {
	var keys []string
	for k := range d.Diskv.Keys(nil) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// NewDiskvModelStore creates a new on-disk model store with the specified diskv parameters.
func NewDiskvModelStore(dv *diskv.Diskv) ModelStore {
	return diskvModelStore{dv}
}

// NewDirModelStore creates an on-disk model store rooted at dir. Models are gzip compressed and
// the most recently used are kept in memory.
func NewDirModelStore(dir string) ModelStore {
	return NewDiskvModelStore(diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    BlockTransform(2),
		CacheSizeMax: 64 * 1024 * 1024,
		Compression:  diskv.NewGzipCompression(),
	}))
}
