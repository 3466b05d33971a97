package ingest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// FailureCode classifies a failed send. Codes are stable strings so relays
// and UIs can switch on them.
type FailureCode string

const (
	CodeSettingsMissing FailureCode = "SETTINGS_MISSING"
	CodeInvalidPayload  FailureCode = "INVALID_PAYLOAD"
	CodeUnauthorized    FailureCode = "UNAUTHORIZED"
	CodeNetworkTimeout  FailureCode = "NETWORK_TIMEOUT"
	CodeNetworkError    FailureCode = "NETWORK_ERROR"
)

// HTTPCode builds the generic bucket code for an unclassified status,
// e.g. HTTP_503.
func HTTPCode(status int) FailureCode {
	return FailureCode(fmt.Sprintf("HTTP_%d", status))
}

// Failure is a typed send failure. Every failed path returns one of these;
// nothing past the client boundary panics or leaks raw transport errors.
type Failure struct {
	Code    FailureCode `json:"code"`
	Message string      `json:"message"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

func mapHTTPFailure(status int, body map[string]any) *Failure {
	remote := remoteMessage(body)

	switch status {
	case 400:
		msg := remote
		if msg == "" {
			msg = "Requête rejetée par le serveur LiveChat."
		}
		return &Failure{Code: CodeInvalidPayload, Message: msg}
	case 401:
		return &Failure{Code: CodeUnauthorized, Message: "Token invalide ou expiré. Refais l'appairage LiveChat."}
	default:
		msg := remote
		if msg == "" {
			msg = fmt.Sprintf("Erreur serveur LiveChat (HTTP %d).", status)
		}
		return &Failure{Code: HTTPCode(status), Message: msg}
	}
}

func mapNetworkFailure(err error) *Failure {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Failure{Code: CodeNetworkTimeout, Message: "Délai dépassé lors de l'envoi vers LiveChat."}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Failure{Code: CodeNetworkTimeout, Message: "Délai dépassé lors de l'envoi vers LiveChat."}
	}
	return &Failure{Code: CodeNetworkError, Message: "Erreur réseau lors de l'envoi vers LiveChat."}
}

func remoteMessage(body map[string]any) string {
	if body == nil {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if v, ok := body[key].(string); ok {
			if msg := strings.TrimSpace(v); msg != "" {
				return msg
			}
		}
	}
	return ""
}
