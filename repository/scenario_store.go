package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"invest-sim/domain"
)

const (
	DefaultScenariosKey = "invest-sim:scenarios"
	corruptSuffix       = ".corrupt"
)

// ScenarioStore owns the ordered scenario collection and mirrors all of it
// to a KeyValueStore under a single key after every mutation.
type ScenarioStore struct {
	mu        sync.Mutex
	kv        KeyValueStore
	key       string
	logger    *zap.Logger
	scenarios []domain.Scenario

	now   func() time.Time
	newID func() string
}

// NewScenarioStore creates an empty store. Call LoadAll to read the
// persisted collection.
func NewScenarioStore(kv KeyValueStore, key string, logger *zap.Logger) *ScenarioStore {
	if key == "" {
		key = DefaultScenariosKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScenarioStore{
		kv:        kv,
		key:       key,
		logger:    logger,
		scenarios: []domain.Scenario{},
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// LoadAll replaces the in-memory collection with the persisted one.
//
// A missing key yields an empty collection. If the stored blob cannot be
// read or decoded the store falls back to an empty collection and returns
// the error; a corrupt blob is first copied to "<key>.corrupt".
func (s *ScenarioStore) LoadAll() ([]domain.Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scenarios = []domain.Scenario{}

	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return s.snapshot(), fmt.Errorf("read %s: %w", s.key, err)
	}
	if !ok {
		return s.snapshot(), nil
	}

	var loaded []domain.Scenario
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		backupKey := s.key + corruptSuffix
		if backupErr := s.kv.Set(backupKey, raw); backupErr != nil {
			s.logger.Error("backup corrupt scenarios failed",
				zap.String("key", backupKey), zap.Error(backupErr))
		} else {
			s.logger.Warn("corrupt scenarios moved aside",
				zap.String("key", s.key), zap.String("backup_key", backupKey))
		}
		return s.snapshot(), fmt.Errorf("%w: %v", domain.ErrCorruptData, err)
	}
	if loaded != nil {
		s.scenarios = loaded
	}

	s.logger.Debug("scenarios loaded", zap.Int("count", len(s.scenarios)))
	return s.snapshot(), nil
}

// Save appends the scenario or replaces the one at the target index, then
// persists the whole collection. It returns the scenario's index.
func (s *ScenarioStore) Save(scenario domain.Scenario, target domain.SaveTarget) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scenario.SavedAt = s.now().UTC()

	next := make([]domain.Scenario, len(s.scenarios), len(s.scenarios)+1)
	copy(next, s.scenarios)

	index, update := target.Update()
	if update {
		current, err := s.at(index, target.ExpectedID)
		if err != nil {
			return 0, err
		}
		scenario.ID = current.ID
		next[index] = scenario
	} else {
		if scenario.ID == "" {
			scenario.ID = s.newID()
		}
		index = len(next)
		next = append(next, scenario)
	}

	if err := s.persist(next); err != nil {
		return 0, err
	}
	s.scenarios = next
	return index, nil
}

// DeleteAt removes the scenario at index; later scenarios shift down by one.
// A non-empty expectedID must match the scenario being removed.
func (s *ScenarioStore) DeleteAt(index int, expectedID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.at(index, expectedID); err != nil {
		return err
	}

	next := make([]domain.Scenario, 0, len(s.scenarios)-1)
	next = append(next, s.scenarios[:index]...)
	next = append(next, s.scenarios[index+1:]...)

	if err := s.persist(next); err != nil {
		return err
	}
	s.scenarios = next
	return nil
}

// Get returns the scenario at index.
func (s *ScenarioStore) Get(index int) (domain.Scenario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.at(index, "")
}

// List returns a copy of the collection in insertion order.
func (s *ScenarioStore) List() []domain.Scenario {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *ScenarioStore) at(index int, expectedID string) (domain.Scenario, error) {
	if index < 0 || index >= len(s.scenarios) {
		return domain.Scenario{}, fmt.Errorf("%w: %d (have %d)", domain.ErrIndexOutOfRange, index, len(s.scenarios))
	}
	current := s.scenarios[index]
	if expectedID != "" && current.ID != expectedID {
		return domain.Scenario{}, fmt.Errorf("%w: %d", domain.ErrStaleIndex, index)
	}
	return current, nil
}

func (s *ScenarioStore) persist(scenarios []domain.Scenario) error {
	data, err := json.Marshal(scenarios)
	if err != nil {
		return errors.Join(domain.ErrPersistence, err)
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		s.logger.Error("persist scenarios failed", zap.String("key", s.key), zap.Error(err))
		return errors.Join(domain.ErrPersistence, err)
	}
	return nil
}

func (s *ScenarioStore) snapshot() []domain.Scenario {
	out := make([]domain.Scenario, len(s.scenarios))
	copy(out, s.scenarios)
	return out
}
