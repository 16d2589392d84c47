package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// isExprDefined reports whether an optional attribute was written in the
// source. The decoder fills omitted hcl.Expression fields with zero-width
// placeholders, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Expression is nil, considering it undefined.", "attribute", attrName)
		return false
	}

	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	logger.Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// decodeOptionalInt evaluates a numeric attribute. It returns ok=false when
// the attribute is absent or null.
func decodeOptionalInt(ctx context.Context, expr hcl.Expression, attrName string) (value int, ok bool, err error) {
	if !isExprDefined(ctx, expr, attrName) {
		return 0, false, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, false, fmt.Errorf("failed to evaluate %s: %w", attrName, diags)
	}
	if val.IsNull() {
		return 0, false, nil
	}

	val, err = convert.Convert(val, cty.Number)
	if err != nil {
		return 0, false, fmt.Errorf("attribute %s must be a number: %w", attrName, err)
	}
	if err := gocty.FromCtyValue(val, &value); err != nil {
		return 0, false, fmt.Errorf("attribute %s must be a whole number: %w", attrName, err)
	}
	return value, true, nil
}
