// Package fees implements the fee engine: parsing fee specifications into
// ranked rules, matching transactions against the stored rule set and
// computing the resulting charge breakdown.
package fees

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	apperrors "lannisterpay/internal/errors"
	"lannisterpay/internal/models"
	"lannisterpay/internal/repositories"
	"lannisterpay/internal/validation"
)

// SubmissionPolicy decides what a new specification does to the stored set.
type SubmissionPolicy string

const (
	// PolicyReplace discards the previous rule set. This is the default and
	// the simpler, safer choice.
	PolicyReplace SubmissionPolicy = "replace"
	// PolicyMerge appends the new rules to the stored set.
	PolicyMerge SubmissionPolicy = "merge"
)

type Service struct {
	store    repositories.RuleStore
	policy   SubmissionPolicy
	logger   *slog.Logger
	recorder Recorder
}

func NewService(store repositories.RuleStore, policy SubmissionPolicy, logger *slog.Logger, recorder Recorder) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	if policy != PolicyMerge {
		policy = PolicyReplace
	}
	return &Service{store: store, policy: policy, logger: logger, recorder: recorder}
}

// SubmitSpecification parses, ranks and persists a fee specification.
// Nothing is persisted when any line fails validation.
func (s *Service) SubmitSpecification(ctx context.Context, spec string) error {
	submissionID := uuid.NewString()

	rules, err := ParseSpecification(spec)
	if err != nil {
		s.recorder.RecordSubmission(0, false)
		s.logger.InfoContext(ctx, "specification rejected",
			slog.String("submission_id", submissionID),
			slog.String("error", err.Error()))
		return err
	}

	if s.policy == PolicyMerge {
		existing, err := s.store.FetchAll(ctx)
		if err != nil {
			s.recorder.RecordSubmission(0, false)
			s.logger.ErrorContext(ctx, "failed to fetch rule set for merge",
				slog.String("submission_id", submissionID),
				slog.String("error", err.Error()))
			return apperrors.Internal("failed to fetch stored rule set: %v", err)
		}
		rules = append(existing, rules...)
		sort.SliceStable(rules, func(i, j int) bool {
			return rules[i].Rank > rules[j].Rank
		})
	}

	if err := s.store.StoreAll(ctx, rules); err != nil {
		s.recorder.RecordSubmission(0, false)
		s.logger.ErrorContext(ctx, "failed to store rule set",
			slog.String("submission_id", submissionID),
			slog.String("error", err.Error()))
		return apperrors.Internal("failed to store rule set: %v", err)
	}

	s.recorder.RecordSubmission(len(rules), true)
	s.logger.InfoContext(ctx, "specification accepted",
		slog.String("submission_id", submissionID),
		slog.String("policy", string(s.policy)),
		slog.Int("rules", len(rules)))
	return nil
}

// ComputeTransactionFee validates the transaction, fetches an immutable
// snapshot of the rule set, finds the best match and applies its formula.
func (s *Service) ComputeTransactionFee(ctx context.Context, tx *models.Transaction) (models.FeeResult, error) {
	start := time.Now()

	if err := validation.ValidateTransaction(tx); err != nil {
		s.recorder.RecordEvaluation(outcomeInvalid, time.Since(start))
		return models.FeeResult{}, err
	}

	rules, err := s.store.FetchAll(ctx)
	if err != nil {
		s.recorder.RecordEvaluation(outcomeFault, time.Since(start))
		s.logger.ErrorContext(ctx, "failed to fetch rule set",
			slog.String("error", err.Error()))
		return models.FeeResult{}, apperrors.Internal("failed to fetch stored rule set: %v", err)
	}
	// Rank is a pure function of the matchable fields; never trust a stored
	// value over a recomputed one.
	for i := range rules {
		rules[i].Rank = rules[i].SpecificityRank()
	}

	rule, err := Match(tx, rules)
	if err != nil {
		s.recorder.RecordEvaluation(outcomeNoMatch, time.Since(start))
		return models.FeeResult{}, err
	}

	result, err := Compute(rule, tx)
	if err != nil {
		s.recorder.RecordEvaluation(outcomeFault, time.Since(start))
		s.logger.ErrorContext(ctx, "invariant violation during fee computation",
			slog.String("rule_id", rule.ID),
			slog.String("error", err.Error()))
		return models.FeeResult{}, err
	}

	s.recorder.RecordEvaluation(outcomeMatched, time.Since(start))
	return result, nil
}
