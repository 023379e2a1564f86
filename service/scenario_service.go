package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"invest-sim/domain"
	"invest-sim/repository"
)

type SubmitResult struct {
	Result domain.ScenarioResult `json:"result"`
	Index  int                   `json:"index"`
}

type ScenarioService struct {
	repo      repository.ScenarioRepository
	formatter *MoneyFormatter
	logger    *zap.Logger
}

// NewScenarioService creates a ScenarioService over a loaded repository.
func NewScenarioService(
	repo repository.ScenarioRepository,
	formatter *MoneyFormatter,
	logger *zap.Logger,
) *ScenarioService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScenarioService{repo: repo, formatter: formatter, logger: logger}
}

// Calculate projects the input without saving it.
func (s *ScenarioService) Calculate(input domain.ScenarioInput) domain.ScenarioResult {
	return ComputeInput(input)
}

// Submit computes the projection for input and saves it as a new scenario
// or over an existing one. Only the name is validated.
func (s *ScenarioService) Submit(
	input domain.ScenarioInput,
	target domain.SaveTarget,
) (SubmitResult, error) {

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return SubmitResult{}, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrValidation)
	}

	result := ComputeInput(input)
	if result.FinalNetValue.Overflow {
		s.logger.Info("projection overflowed", zap.String("name", input.Name))
	}

	index, err := s.repo.Save(domain.Scenario{Input: input, Result: result}, target)
	if err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			s.logger.Warn("scenario not saved", zap.String("name", input.Name), zap.Error(err))
		}
		return SubmitResult{}, err
	}

	s.logger.Info("scenario saved",
		zap.String("name", input.Name),
		zap.Int("index", index),
		zap.Stringer("final_net_value", result.FinalNetValue),
	)
	return SubmitResult{Result: result, Index: index}, nil
}

// RequestEdit returns the stored input at index for pre-filling a form.
func (s *ScenarioService) RequestEdit(index int) (domain.ScenarioInput, error) {
	scenario, err := s.repo.Get(index)
	if err != nil {
		return domain.ScenarioInput{}, err
	}
	return scenario.Input, nil
}

// Scenario returns the whole scenario at index.
func (s *ScenarioService) Scenario(index int) (domain.Scenario, error) {
	return s.repo.Get(index)
}

// RequestDelete removes the scenario at index. Confirmation is the
// caller's job.
func (s *ScenarioService) RequestDelete(index int, expectedID string) error {
	if err := s.repo.DeleteAt(index, expectedID); err != nil {
		return err
	}
	s.logger.Info("scenario deleted", zap.Int("index", index))
	return nil
}

// ListForDisplay returns the saved scenarios with formatted amounts.
func (s *ScenarioService) ListForDisplay() []domain.ScenarioView {
	scenarios := s.repo.List()
	views := make([]domain.ScenarioView, 0, len(scenarios))
	for i, sc := range scenarios {
		views = append(views, domain.ScenarioView{
			Index:                 i,
			ID:                    sc.ID,
			Name:                  sc.Input.Name,
			FormattedFinalValue:   s.formatter.Format(sc.Result.FinalNetValue),
			FormattedContribution: s.formatter.FormatAmount(sc.Input.RecurringContribution),
			TermValue:             sc.Input.TermValue,
			TermUnit:              sc.Input.TermUnit,
			RateValue:             sc.Input.RateValue,
			RateUnit:              sc.Input.RateUnit,
		})
	}
	return views
}

// Scenarios returns the saved scenarios as stored.
func (s *ScenarioService) Scenarios() []domain.Scenario {
	return s.repo.List()
}

// Formatter returns the formatter used for display values.
func (s *ScenarioService) Formatter() *MoneyFormatter {
	return s.formatter
}
