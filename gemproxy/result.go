package gemproxy

import (
	"errors"
	"net/http"
)

// EmptyResultText is returned with status 200 when the upstream produced nothing.
const EmptyResultText = "ไม่พบผลลัพธ์ หรือถูกบล็อกโดยนโยบายความปลอดภัย"

const (
	safetyBlockedError   = "Safety Blocked"
	safetyBlockedDetails = "The query was blocked by content safety filters."
	internalError        = "Internal Server Error"
)

// NormalizeOutcome maps an upstream outcome, or the error that replaced it, to
// the response sent back to the caller. A non-nil err always wins.
func NormalizeOutcome(outcome CallOutcome, err error) APIResult {
	if err != nil {
		return ResultForError(err)
	}
	switch outcome.Kind {
	case OutcomeSuccess:
		return textResult(outcome.Text)
	case OutcomeEmpty:
		return textResult(EmptyResultText)
	case OutcomeSafetyBlocked:
		return errorResult(http.StatusForbidden, safetyBlockedError, safetyBlockedDetails)
	default:
		return errorResult(http.StatusInternalServerError, internalError, outcome.Message)
	}
}

// ResultForError converts any failure into a response. Validation errors keep
// their own status; everything else is a 500 carrying the error message.
func ResultForError(err error) APIResult {
	var rerr *RequestError
	if errors.As(err, &rerr) {
		details := ""
		if rerr.Kind == MalformedBody {
			details = rerr.Detail
		}
		return errorResult(rerr.StatusCode(), rerr.Label(), details)
	}
	return errorResult(http.StatusInternalServerError, internalError, err.Error())
}

func textResult(text string) APIResult {
	return APIResult{
		StatusCode: http.StatusOK,
		Headers:    baseHeaders(),
		Body:       ResponseBody{Text: &text},
	}
}

func errorResult(status int, label, details string) APIResult {
	return APIResult{
		StatusCode: status,
		Headers:    baseHeaders(),
		Body:       ResponseBody{Error: label, Details: details},
	}
}

// baseHeaders are set on every terminal response, errors included.
func baseHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}
