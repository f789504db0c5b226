package calculator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iwvelando/finance-tools/internal/usage"
	"github.com/iwvelando/finance-tools/pkg/constants"
	"github.com/iwvelando/finance-tools/pkg/loans"
	"go.uber.org/zap"
)

// Outcome is the result of one calculator run.
type Outcome struct {
	Calculator string      `json:"calculator" yaml:"calculator"`
	OK         bool        `json:"ok" yaml:"ok"`
	Result     interface{} `json:"result,omitempty" yaml:"result,omitempty"`
}

// Service runs calculators and reports successful runs to a usage recorder.
// Reports are sent in the background and their failures are only logged.
type Service struct {
	logger   *zap.Logger
	recorder usage.Recorder
	timeout  time.Duration
	pending  sync.WaitGroup
}

// NewService creates a service. A nil recorder disables reporting and a
// non-positive timeout uses the default.
func NewService(logger *zap.Logger, recorder usage.Recorder, timeout time.Duration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = usage.Nop{}
	}
	if timeout <= 0 {
		timeout = constants.DefaultUsageTimeoutSeconds * time.Second
	}
	return &Service{logger: logger, recorder: recorder, timeout: timeout}
}

// Run computes the named calculator from raw text inputs.
func (s *Service) Run(ctx context.Context, name string, raw map[string]string) (Outcome, error) {
	calc, err := Lookup(name)
	if err != nil {
		return Outcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	result, ok := calc.Compute(raw)
	outcome := Outcome{Calculator: calc.Name, OK: ok}
	if !ok {
		s.logger.Debug("calculator declined inputs",
			zap.String("op", "calculator.Run"),
			zap.String("calculator", calc.Name),
		)
		return outcome, nil
	}
	outcome.Result = result

	s.report(calc.Name, raw, result)
	return outcome, nil
}

func (s *Service) report(name string, raw map[string]string, result interface{}) {
	event, err := usage.NewEvent(name, raw, result)
	if err != nil {
		s.logger.Warn("failed to build usage event",
			zap.String("op", "calculator.report"),
			zap.String("calculator", name),
			zap.Error(err),
		)
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.recorder.Record(ctx, event); err != nil {
			s.logger.Warn("failed to record calculator usage",
				zap.String("op", "calculator.report"),
				zap.String("calculator", name),
				zap.String("eventID", event.ID),
				zap.Error(err),
			)
		}
	}()
}

// TransferSchedule returns the month-by-month repayment of the loan proposed
// by balance-transfer inputs. Schedules are not reported as usage.
func (s *Service) TransferSchedule(raw map[string]string) ([]loans.Payment, error) {
	calc, err := Lookup(constants.CalculatorBalanceTransfer)
	if err != nil {
		return nil, err
	}
	schedule, err := loans.NewAmortizationScheduleGenerator(s.logger).TransferSchedule(transferInputs(calc.withDefaults(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to build transfer schedule: %w", err)
	}
	return schedule, nil
}

// Wait blocks until every background report has finished.
func (s *Service) Wait() {
	s.pending.Wait()
}
