package dynamodb

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

const conditionalCheckFailed = "ConditionalCheckFailed"

// cancellationCodes returns the per item reason codes of a cancelled
// transaction, in request order.
func cancellationCodes(err error) ([]string, bool) {
	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) {
		return nil, false
	}
	codes := make([]string, len(canceled.CancellationReasons))
	for i, reason := range canceled.CancellationReasons {
		codes[i] = aws.ToString(reason.Code)
	}
	return codes, true
}

// conditionFailedAt reports whether the item at index failed its condition
func conditionFailedAt(codes []string, index int) bool {
	return index < len(codes) && codes[index] == conditionalCheckFailed
}

// IsConditionalFailure reports whether err only reflects a failed condition
// expression. Those are business outcomes, not infrastructure failures.
func IsConditionalFailure(err error) bool {
	if err == nil {
		return false
	}

	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}

	if codes, ok := cancellationCodes(err); ok {
		conditional := false
		for _, code := range codes {
			switch code {
			case conditionalCheckFailed:
				conditional = true
			case "None", "":
			default:
				return false
			}
		}
		return conditional
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ConditionalCheckFailedException"
	}
	return false
}

// isTableNotFound reports whether err is a missing table error
func isTableNotFound(err error) bool {
	var rnf *types.ResourceNotFoundException
	if errors.As(err, &rnf) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException"
}
