package repository

import "invest-sim/domain"

type ScenarioRepository interface {
	LoadAll() ([]domain.Scenario, error)
	Save(scenario domain.Scenario, target domain.SaveTarget) (int, error)
	DeleteAt(index int, expectedID string) error
	Get(index int) (domain.Scenario, error)
	List() []domain.Scenario
}
