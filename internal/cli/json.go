package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/rileyhilliard/sysdash/internal/api"
	"github.com/rileyhilliard/sysdash/internal/errors"
)

// Machine mode flag - when true, errors are written as a JSON envelope on stdout
var machineMode bool

// MachineMode returns true if machine-readable output is enabled
func MachineMode() bool {
	return machineMode
}

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound     = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid      = "CONFIG_INVALID"
	ErrCodeSSHHostKey         = "SSH_HOST_KEY"
	ErrCodeSSHConnectionFail  = "SSH_CONNECTION_FAILED"
	ErrCodeBackendUnreachable = "BACKEND_UNREACHABLE"
	ErrCodeFetchSystemInfo    = "FETCH_SYSTEM_INFO_FAILED"
	ErrCodeFetchProcesses     = "FETCH_PROCESSES_FAILED"
	ErrCodeKillProcess        = "KILL_PROCESS_FAILED"
	ErrCodeUnknown            = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: true,
		Data:    data,
	})
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	})
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var sdErr *errors.Error
	if !stderrors.As(err, &sdErr) {
		return &JSONError{
			Code:    ErrCodeUnknown,
			Message: err.Error(),
		}
	}

	jsonErr := &JSONError{
		Code:       mapErrorCode(sdErr.Code, sdErr.Message),
		Message:    sdErr.Message,
		Suggestion: sdErr.Suggestion,
	}

	// Backend status codes are useful to automation even though the
	// human-facing message stays fixed.
	var statusErr *api.StatusError
	if stderrors.As(err, &statusErr) {
		jsonErr.Details = map[string]interface{}{
			"status": statusErr.StatusCode,
			"path":   statusErr.Path,
		}
	} else if sdErr.Cause != nil {
		jsonErr.Details = map[string]interface{}{
			"cause": sdErr.Cause.Error(),
		}
	}

	return jsonErr
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode, message string) string {
	msgLower := strings.ToLower(message)

	switch internalCode {
	case errors.ErrConfig:
		if strings.Contains(msgLower, "not found") || strings.Contains(msgLower, "couldn't find") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrSSH:
		if strings.Contains(msgLower, "host key") {
			return ErrCodeSSHHostKey
		}
		return ErrCodeSSHConnectionFail
	case errors.ErrAPI:
		return ErrCodeBackendUnreachable
	case errors.ErrFetchSystemInfo:
		return ErrCodeFetchSystemInfo
	case errors.ErrFetchProcesses:
		return ErrCodeFetchProcesses
	case errors.ErrKillProcess:
		return ErrCodeKillProcess
	}

	return ErrCodeUnknown
}
