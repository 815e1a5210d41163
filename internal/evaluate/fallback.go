package evaluate

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/abhisek/dugout/internal/llm"
)

// FallbackEvaluator uses Fallback only when Primary fails with an
// *llm.ExternalServiceError. The fallback result carries that failure in
// Degraded. Any other error is returned as-is.
type FallbackEvaluator struct {
	Primary  Evaluator
	Fallback Evaluator
	Log      *zap.Logger
}

var _ Evaluator = (*FallbackEvaluator)(nil)

func (f *FallbackEvaluator) Evaluate(ctx context.Context, in Input) (Result, error) {
	res, err := f.Primary.Evaluate(ctx, in)
	if err == nil || f.Fallback == nil {
		return res, err
	}

	var ext *llm.ExternalServiceError
	if !errors.As(err, &ext) || ctx.Err() != nil {
		return Result{}, err
	}

	if f.Log != nil {
		f.Log.Warn("primary evaluator failed, using fallback", zap.Error(err))
	}
	res, ferr := f.Fallback.Evaluate(ctx, in)
	if ferr != nil {
		return Result{}, errors.Join(err, ferr)
	}
	res.Degraded = err
	return res, nil
}
